package handlers

import (
	"context"
	"errors"

	apidevbox "github.com/kubeconsole/console/pkg/api/types/devbox"
	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/api/types/response"
	"github.com/kubeconsole/console/pkg/devbox"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/labstack/echo/v4"
)

// DevboxFactory builds devbox operations acting as the owner of clients.
type DevboxFactory func(clients kubeutil.Clients) *devbox.Devbox

func devboxError(err error) error {
	switch {
	case errors.Is(err, devbox.ErrInvalidRequest):
		return apierr.BadRequest(err.Error(), err)
	case errors.Is(err, domerr.ErrMissing):
		return apierr.NotFound(apierr.WithError(err))
	case errors.Is(err, domerr.ErrConflict):
		return apierr.Conflict("release already exists", apierr.WithAdvice("use other tag"), apierr.WithError(err))
	case errors.Is(err, devbox.ErrReleaseFailed):
		return apierr.InternalServerErrorWithReason("release failed", err)
	case errors.Is(err, context.DeadlineExceeded):
		return apierr.InternalServerErrorWithReason("release is not finished in time", err)
	default:
		return apierr.InternalServerError(err)
	}
}

// ReleaseHandler releases a devbox and deploys the image.
//
// It needs clients set by auth.Kubeconfig.
func ReleaseHandler(factory DevboxFactory) echo.HandlerFunc {
	return func(c echo.Context) error {
		clients, err := clientsOf(c)
		if err != nil {
			return err
		}
		req := devbox.ReleaseRequest{}
		if err := c.Bind(&req); err != nil {
			return apierr.BadRequest("body should be JSON with devboxName and tag", err)
		}

		release, err := factory(clients).ReleaseAndDeploy(c.Request().Context(), req)
		if err != nil {
			return devboxError(err)
		}
		return response.Ok(c, apidevbox.Release{
			Name:       release.Name,
			Image:      release.Image,
			Deployment: release.Deployment,
			Service:    release.Service,
		})
	}
}

// UploadHandler extracts an uploaded tar.gz into the devbox.
//
// The body is multipart/form-data with fields "devboxName", "path" and "file".
func UploadHandler(factory DevboxFactory) echo.HandlerFunc {
	return func(c echo.Context) error {
		clients, err := clientsOf(c)
		if err != nil {
			return err
		}
		devboxName := c.FormValue("devboxName")
		dest := c.FormValue("path")
		if devboxName == "" || dest == "" {
			return apierr.BadRequest(`"devboxName" and "path" are required`, nil)
		}
		fh, err := c.FormFile("file")
		if err != nil {
			return apierr.BadRequest(`"file" is required`, err)
		}
		f, err := fh.Open()
		if err != nil {
			return apierr.InternalServerError(err)
		}
		defer f.Close()

		if err := factory(clients).UploadAndExtract(c.Request().Context(), devboxName, dest, f); err != nil {
			return devboxError(err)
		}
		return response.Ok(c, apidevbox.Upload{DevboxName: devboxName, Destination: dest, Size: fh.Size})
	}
}
