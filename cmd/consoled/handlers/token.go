package handlers

import (
	"errors"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/api/types/response"
	apitokens "github.com/kubeconsole/console/pkg/api/types/tokens"
	"github.com/kubeconsole/console/pkg/domain"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	kdbtoken "github.com/kubeconsole/console/pkg/domain/token/db"
	"github.com/labstack/echo/v4"
)

func ComposeToken(t domain.Token) apitokens.Detail {
	return apitokens.Detail{
		ID:        t.ID,
		Name:      t.Name,
		Status:    t.Status.String(),
		CreatedAt: t.CreatedAt,
	}
}

// DeleteTokenHandler deletes a token of the session user.
func DeleteTokenHandler(tokens kdbtoken.TokenInterface, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, uid, err := userOf(c)
		if err != nil {
			return err
		}
		id := c.Param(param)
		if id == "" {
			return apierr.BadRequest("token id is required", nil)
		}

		if err := tokens.Delete(c.Request().Context(), uid, id); err != nil {
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.NotFound(apierr.WithError(err))
			}
			return apierr.InternalServerError(err)
		}
		return response.Ok(c, struct{}{})
	}
}

// ToggleTokenHandler changes status of a token of the session user.
func ToggleTokenHandler(tokens kdbtoken.TokenInterface, param string) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, uid, err := userOf(c)
		if err != nil {
			return err
		}
		id := c.Param(param)
		if id == "" {
			return apierr.BadRequest("token id is required", nil)
		}

		body := apitokens.StatusChange{}
		if err := c.Bind(&body); err != nil {
			return apierr.BadRequest(`body should be {"status": "active" | "inactive"}`, err)
		}
		status, err := domain.AsTokenStatus(body.Status)
		if err != nil {
			return apierr.BadRequest(`"status" should be "active" or "inactive"`, err)
		}

		token, err := tokens.SetStatus(c.Request().Context(), uid, id, status)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}
		return response.Ok(c, ComposeToken(token))
	}
}
