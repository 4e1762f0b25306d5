package handlers

import (
	"github.com/google/uuid"
	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/auth"
	"github.com/labstack/echo/v4"
)

// userOf returns the user of the session set by auth.Verifier.
func userOf(c echo.Context) (*auth.AccessClaims, uuid.UUID, error) {
	claims, ok := auth.Session(c)
	if !ok {
		return nil, uuid.Nil, apierr.Unauthorized("login and retry with a session token", nil)
	}
	uid, err := uuid.Parse(claims.UserUid)
	if err != nil {
		return nil, uuid.Nil, apierr.Unauthorized("session token has malformed userUid", err)
	}
	return claims, uid, nil
}
