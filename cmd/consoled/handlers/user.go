package handlers

import (
	"errors"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/api/types/response"
	apiusers "github.com/kubeconsole/console/pkg/api/types/users"
	"github.com/kubeconsole/console/pkg/domain"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	kdbuser "github.com/kubeconsole/console/pkg/domain/user/db"
	"github.com/labstack/echo/v4"
)

func ComposeTransaction(tx domain.PrecommitTransaction) apiusers.Transaction {
	details := make([]apiusers.Detail, 0, len(tx.Details))
	for _, d := range tx.Details {
		details = append(details, apiusers.Detail{
			UID:       d.UID.String(),
			RegionUID: d.RegionUID.String(),
			Status:    d.Status.String(),
		})
	}
	return apiusers.Transaction{
		UID:       tx.UID.String(),
		Status:    tx.Status.String(),
		Type:      string(tx.Type),
		InfoUID:   tx.InfoUID.String(),
		CreatedAt: tx.CreatedAt,
		Details:   details,
	}
}

// DeleteUserHandler records the intent of deleting the session user.
//
// Regions delete the user asynchronously.
func DeleteUserHandler(users kdbuser.UserInterface) echo.HandlerFunc {
	return func(c echo.Context) error {
		_, uid, err := userOf(c)
		if err != nil {
			return err
		}

		tx, err := users.DeleteUser(c.Request().Context(), uid)
		switch {
		case errors.Is(err, domerr.ErrMissing):
			return apierr.NotFound(apierr.WithError(err))
		case errors.Is(err, domerr.ErrConflict):
			return apierr.Conflict("deleting the user is in progress", apierr.WithError(err))
		case err != nil:
			return apierr.InternalServerError(err)
		}
		return response.Ok(c, ComposeTransaction(tx))
	}
}
