package handlers

import (
	"errors"

	"github.com/google/uuid"
	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	apirealname "github.com/kubeconsole/console/pkg/api/types/realname"
	"github.com/kubeconsole/console/pkg/api/types/response"
	"github.com/kubeconsole/console/pkg/auth"
	"github.com/kubeconsole/console/pkg/realname"
	"github.com/labstack/echo/v4"
)

// CallbackHandler is where the face verification page redirects to.
//
// The session token is given as "token" query, and the session of verification as "bizToken".
// When svc is nil, it responds 503.
func CallbackHandler(svc *realname.Service, secret []byte) echo.HandlerFunc {
	return func(c echo.Context) error {
		if svc == nil {
			return apierr.ServiceUnavailable("face verification is not configured", nil)
		}
		claims, err := auth.Verify(secret, c.QueryParam("token"))
		if err != nil {
			return apierr.Unauthorized("login and retry verification", err)
		}
		uid, err := uuid.Parse(claims.UserUid)
		if err != nil {
			return apierr.Unauthorized("session token has malformed userUid", err)
		}
		bizToken := c.QueryParam("bizToken")
		if bizToken == "" {
			return apierr.BadRequest(`"bizToken" is required`, nil)
		}

		info, err := svc.Callback(c.Request().Context(), uid, bizToken)
		if err != nil {
			vf := new(realname.VerificationFailed)
			if errors.As(err, &vf) {
				return apierr.BadRequest(vf.ErrMsg, err)
			}
			return apierr.InternalServerError(err)
		}
		return response.Ok(c, apirealname.Result{
			UserUID:    info.UserUID.String(),
			RealName:   info.RealName,
			IsVerified: info.IsVerified,
		})
	}
}
