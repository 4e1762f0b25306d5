package auth

import (
	"net/url"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/labstack/echo/v4"
)

const clientsKey = "console/kubeclients"

// KubeconfigOf decodes the kubeconfig in the Authorization header.
//
// Providers send it URL-encoded. An empty string means it is missing.
func KubeconfigOf(c echo.Context) (string, error) {
	raw := c.Request().Header.Get(echo.HeaderAuthorization)
	if raw == "" {
		return "", nil
	}
	return url.QueryUnescape(raw)
}

// Kubeconfig is a middleware building Kubernetes clients from the kubeconfig in the request.
//
// Requests without a usable kubeconfig are rejected with 401.
func Kubeconfig(factory kubeutil.ClientFactory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			kc, err := KubeconfigOf(c)
			if err != nil {
				return apierr.Unauthorized("Authorization header should be URL-encoded kubeconfig", err)
			}
			if kc == "" {
				return apierr.Unauthorized("kubeconfig is required in Authorization header", nil)
			}
			clients, err := factory.ForKubeconfig(kc)
			if err != nil {
				return apierr.Unauthorized("kubeconfig is not acceptable", err)
			}
			c.Set(clientsKey, clients)
			return next(c)
		}
	}
}

// Clients returns clients built by the Kubeconfig middleware.
func Clients(c echo.Context) (kubeutil.Clients, bool) {
	clients, ok := c.Get(clientsKey).(kubeutil.Clients)
	return clients, ok
}

// WithClients sets clients into c, as Kubeconfig does.
func WithClients(c echo.Context, clients kubeutil.Clients) echo.Context {
	c.Set(clientsKey, clients)
	return c
}
