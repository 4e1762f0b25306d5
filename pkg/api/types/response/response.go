// Package response defines the envelope of console API responses.
package response

import (
	"net/http"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/labstack/echo/v4"
)

// Envelope is the body shape shared by every console API route.
//
// Exactly one of Data or Error is set.
type Envelope[T any] struct {
	Code    int                  `json:"code"`
	Message string               `json:"message"`
	Data    *T                   `json:"data,omitempty"`
	Error   *apierr.ErrorMessage `json:"error,omitempty"`
}

// Ok writes 200 with data.
func Ok[T any](c echo.Context, data T) error {
	return c.JSON(http.StatusOK, Envelope[T]{
		Code:    http.StatusOK,
		Message: "ok",
		Data:    &data,
	})
}

// Failure writes the error envelope of herr.
func Failure(c echo.Context, herr *echo.HTTPError) error {
	msg := apierr.MessageOf(herr)
	return c.JSON(herr.Code, Envelope[struct{}]{
		Code:    herr.Code,
		Message: msg.Reason,
		Error:   &msg,
	})
}
