package main

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/kubeconsole/console/cmd/consoled/handlers"
	"github.com/kubeconsole/console/pkg/auth"
	"github.com/kubeconsole/console/pkg/billing"
	"github.com/kubeconsole/console/pkg/domain/console"
	"github.com/kubeconsole/console/pkg/echoutil"
	"github.com/kubeconsole/console/pkg/guard"
	"github.com/kubeconsole/console/pkg/instance"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/kubeconsole/console/pkg/metrics"
	"github.com/kubeconsole/console/pkg/realname"
	"github.com/labstack/echo/v4"
)

var API_ROOT = "/api"

func api(subpath string) string {
	return fmt.Sprintf("%s/%s", API_ROOT, strings.TrimPrefix(subpath, "/"))
}

// Dependencies of the server. Optional ones are nil when not configured.
type Server struct {
	Console console.Console

	// clients of the console itself.
	Admin kubeutil.Clients

	// builds clients from kubeconfig sent by providers.
	ClientFactory kubeutil.ClientFactory

	SessionSecret []byte
	InstanceLabel string
	Metrics       *metrics.Metrics
	Devbox        handlers.DevboxFactory

	// optional
	RealName  *realname.Service
	Billing   *billing.Client
	Endpoints billing.Endpoints
	Notifier  handlers.InvoiceNotifier
}

func BuildServer(s Server, loglevel string) *echo.Echo {
	e := echo.New()
	echoutil.SetLevel(e, loglevel)
	e.HTTPErrorHandler = echoutil.HTTPErrorHandler
	e.Use(echoutil.LogHandlerFunc)

	session := auth.Verifier(s.SessionSecret)
	kubeconfig := auth.Kubeconfig(s.ClientFactory)
	balance := guard.AccountBalanceGuard(s.Console.Accounts())
	workspace := guard.ResourceGuard(s.Admin)

	instanceOpts := []instance.Option{}
	if s.Metrics != nil {
		instanceOpts = append(instanceOpts, instance.WithObserver(s.Metrics))
	}

	e.GET(api("v1/instance/:name"), handlers.GetInstanceHandler(s.InstanceLabel, "name", instanceOpts...), kubeconfig)
	e.DELETE(api("v1/instance/:name"), handlers.DeleteInstanceHandler(s.InstanceLabel, "name", instanceOpts...), kubeconfig)

	e.DELETE(api("user/token/:id"), handlers.DeleteTokenHandler(s.Console.Tokens(), "id"), session)
	e.POST(api("user/token/:id"), handlers.ToggleTokenHandler(s.Console.Tokens(), "id"), session)

	e.POST(api("releaseAndDeployDevbox"), handlers.ReleaseHandler(s.Devbox), kubeconfig)
	e.POST(api("uploadAndExtractFile"), handlers.UploadHandler(s.Devbox), kubeconfig)

	e.GET(api("account/faceIdRealNameAuthCallback"), handlers.CallbackHandler(s.RealName, s.SessionSecret))

	e.POST(api("auth/delete"), handlers.DeleteUserHandler(s.Console.Users()), session, balance, workspace)
	e.GET(
		api("account/balance"),
		handlers.BalanceHandler(s.Console.Accounts(), s.Console.Users(), s.Billing, s.Endpoints),
		session, balance,
	)
	e.POST(api("account/invoice/apply"), handlers.ApplyInvoiceHandler(s.Console.Invoices(), s.Notifier), session)

	if s.Metrics != nil {
		e.GET("/metrics", echo.WrapHandler(s.Metrics.Handler()))
	}
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	return e
}
