package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	apiinstances "github.com/kubeconsole/console/pkg/api/types/instances"
	"github.com/kubeconsole/console/pkg/api/types/response"
	"github.com/kubeconsole/console/pkg/auth"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	"github.com/kubeconsole/console/pkg/instance"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/labstack/echo/v4"
)

func clientsOf(c echo.Context) (kubeutil.Clients, error) {
	clients, ok := auth.Clients(c)
	if !ok {
		return kubeutil.Clients{}, apierr.InternalServerError(errors.New("kubernetes clients are not set up for the route"))
	}
	return clients, nil
}

func ComposeInstance(inst instance.Instance) (apiinstances.Detail, error) {
	detail := apiinstances.Detail{
		Name:      inst.Name,
		Instance:  json.RawMessage("null"),
		Resources: []apiinstances.Resources{},
	}
	if inst.Resource != nil {
		raw, err := inst.Resource.MarshalJSON()
		if err != nil {
			return apiinstances.Detail{}, err
		}
		detail.Instance = raw
	}
	for _, kind := range inst.Kinds {
		objs := inst.Resources[kind]
		names := make([]string, 0, len(objs))
		for _, o := range objs {
			names = append(names, o.Name())
		}
		detail.Resources = append(detail.Resources, apiinstances.Resources{Kind: kind, Names: names})
	}
	return detail, nil
}

// GetInstanceHandler responds the Instance custom resource and resources labelled with it.
//
// It needs clients set by auth.Kubeconfig.
func GetInstanceHandler(label string, param string, options ...instance.Option) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(param)
		if name == "" {
			return apierr.BadRequest("instance name is required", nil)
		}
		clients, err := clientsOf(c)
		if err != nil {
			return err
		}

		inst, err := instance.New(clients.Dynamic, label, options...).Get(c.Request().Context(), clients.Namespace, name)
		if errors.Is(err, domerr.ErrMissing) {
			return apierr.NotFound(apierr.WithError(err))
		} else if err != nil {
			return apierr.InternalServerError(err)
		}

		detail, err := ComposeInstance(inst)
		if err != nil {
			return apierr.InternalServerError(err)
		}
		return response.Ok(c, detail)
	}
}

// DeleteInstanceHandler deletes resources of the instance in the namespace of the kubeconfig.
//
// It responds 200 with empty body.
// When deletion of some kind fails, it responds 500 with the message of the kind.
func DeleteInstanceHandler(label string, param string, options ...instance.Option) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.Param(param)
		if name == "" {
			return apierr.BadRequest("instance name is required", nil)
		}
		clients, err := clientsOf(c)
		if err != nil {
			return err
		}

		if err := instance.New(clients.Dynamic, label, options...).Delete(c.Request().Context(), clients.Namespace, name); err != nil {
			if dke, ok := instance.AsDeleteKindError(err); ok {
				return apierr.InternalServerErrorWithReason(dke.Message, err)
			}
			return apierr.InternalServerError(err)
		}
		return c.NoContent(http.StatusOK)
	}
}
