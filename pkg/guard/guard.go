// Package guard provides echo middlewares rejecting requests by the state of the user.
//
// Guards need a session set by auth.Verifier.
// Every check is synchronous and is not retried.
package guard

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/kubeconsole/console/pkg/auth"
	kdbaccount "github.com/kubeconsole/console/pkg/domain/account/db"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	"github.com/kubeconsole/console/pkg/kube/labels"
	"github.com/kubeconsole/console/pkg/kube/resources"
	"github.com/kubeconsole/console/pkg/kube/store"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/labstack/echo/v4"
	kubeerr "k8s.io/apimachinery/pkg/api/errors"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

func session(c echo.Context) (*auth.AccessClaims, uuid.UUID, error) {
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

// AccountBalanceGuard rejects users whose balance is overdrawn with 409.
//
// Users without an account are rejected with 404.
func AccountBalanceGuard(accounts kdbaccount.AccountInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			_, uid, err := session(c)
			if err != nil {
				return err
			}

			account, err := accounts.Get(c.Request().Context(), uid)
			if errors.Is(err, domerr.ErrMissing) {
				return apierr.NotFound(apierr.WithAdvice("the user has no account"), apierr.WithError(err))
			} else if err != nil {
				return apierr.InternalServerError(err)
			}

			if account.Overdue() {
				return apierr.Conflict(
					"account balance is insufficient",
					apierr.WithAdvice("recharge the account, then retry"),
					apierr.WithError(fmt.Errorf(
						"%w: balance=%d, deduction=%d",
						domerr.ErrInsufficientBalance, account.Balance, account.DeductionBalance,
					)),
				)
			}
			return next(c)
		}
	}
}

// ResourceGuard rejects users whose workspace still has resources, with 409.
//
// Resources checked are resources.WorkspaceBlockers.
// When the workspace of the session is not found, it responds 404.
func ResourceGuard(clients kubeutil.Clients) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, _, err := session(c)
			if err != nil {
				return err
			}
			namespace := claims.WorkspaceId
			if namespace == "" {
				return apierr.NotFound(apierr.WithAdvice("the session has no workspace"))
			}

			ctx := c.Request().Context()
			if _, err := clients.Kube.CoreV1().Namespaces().Get(ctx, namespace, metav1.GetOptions{}); err != nil {
				if kubeerr.IsNotFound(err) {
					return apierr.NotFound(apierr.WithAdvice("workspace is not found"), apierr.WithError(err))
				}
				return apierr.InternalServerError(err)
			}

			for _, kind := range resources.WorkspaceBlockers() {
				objs, err := store.New(clients.Dynamic, kind, namespace, labels.Everything()).Fetch(ctx)
				if err != nil {
					if kubeerr.IsNotFound(err) {
						continue
					}
					return apierr.InternalServerError(err)
				}
				if len(objs) != 0 {
					return apierr.Conflict(
						"resources remain in the workspace",
						apierr.WithAdvice(fmt.Sprintf("delete every %s in %s, then retry", kind.Name, namespace)),
					)
				}
			}
			return next(c)
		}
	}
}
