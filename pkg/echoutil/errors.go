package echoutil

import (
	"errors"
	"net/http"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/api/types/response"
	"github.com/labstack/echo/v4"
)

// HTTPErrorHandler renders errors as the response envelope.
//
// Errors other than *echo.HTTPError are reported as 500 without details.
// 5xx errors are logged with their causes.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	herr := new(echo.HTTPError)
	if !errors.As(err, &herr) {
		herr = apierr.InternalServerError(err)
	}

	if http.StatusInternalServerError <= herr.Code {
		c.Logger().Errorf("[%s %s] %+v", c.Request().Method, c.Request().URL, err)
	} else {
		c.Logger().Debugf("[%s %s] %+v", c.Request().Method, c.Request().URL, err)
	}

	var rerr error
	if c.Request().Method == http.MethodHead {
		rerr = c.NoContent(herr.Code)
	} else {
		rerr = response.Failure(c, herr)
	}
	if rerr != nil {
		c.Logger().Error(rerr)
	}
}
