// Package auth verifies who is calling the console API.
//
// Two kinds of credentials are accepted:
// a session JWT issued by the console (Authorization: Bearer ...),
// and a URL-encoded kubeconfig sent by providers in the Authorization header.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/labstack/echo/v4"
)

var ErrInvalidToken = errors.New("invalid token")

// AccessClaims is the payload of a session token.
type AccessClaims struct {
	UserUid      string `json:"userUid"`
	UserCrName   string `json:"userCrName"`
	UserId       string `json:"userId"`
	RegionUid    string `json:"regionUid"`
	WorkspaceUid string `json:"workspaceUid"`
	WorkspaceId  string `json:"workspaceId"`

	jwt.RegisteredClaims
}

// Issue signs claims with HS256.
//
// When claims have no expiry, it expires after ttl. ttl <= 0 means no expiry.
func Issue(secret []byte, claims AccessClaims, ttl time.Duration) (string, error) {
	now := time.Now()
	if claims.IssuedAt == nil {
		claims.IssuedAt = jwt.NewNumericDate(now)
	}
	if claims.ExpiresAt == nil && 0 < ttl {
		claims.ExpiresAt = jwt.NewNumericDate(now.Add(ttl))
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, &claims).SignedString(secret)
}

// Verify parses token and checks its signature and expiry.
//
// # Returns
//
// - *AccessClaims: claims in the token.
//
// - error: ErrInvalidToken joined with the cause, when the token is not acceptable.
func Verify(secret []byte, token string) (*AccessClaims, error) {
	claims := new(AccessClaims)
	tok, err := jwt.ParseWithClaims(
		token, claims,
		func(*jwt.Token) (any, error) { return secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
	)
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}
	if !tok.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserUid == "" {
		return nil, fmt.Errorf("%w: userUid is missing", ErrInvalidToken)
	}
	return claims, nil
}

const sessionKey = "console/session"

// Verifier is a middleware accepting only requests with a valid session token.
//
// Others are rejected with 401.
func Verifier(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				return apierr.Unauthorized("login and retry with a session token", nil)
			}
			claims, err := Verify(secret, token)
			if err != nil {
				return apierr.Unauthorized("session token is invalid or expired. login again", err)
			}
			c.Set(sessionKey, claims)
			return next(c)
		}
	}
}

// Session returns claims verified by Verifier.
func Session(c echo.Context) (*AccessClaims, bool) {
	claims, ok := c.Get(sessionKey).(*AccessClaims)
	return claims, ok && claims != nil
}

// WithSession sets claims into c, as Verifier does.
func WithSession(c echo.Context, claims *AccessClaims) echo.Context {
	c.Set(sessionKey, claims)
	return c
}
