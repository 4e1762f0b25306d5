package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/cmd/consoled/handlers"
	httptestutil "github.com/kubeconsole/console/internal/testutils/http"
	apiusers "github.com/kubeconsole/console/pkg/api/types/users"
	"github.com/kubeconsole/console/pkg/domain"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	usermock "github.com/kubeconsole/console/pkg/domain/user/db/mock"
	"github.com/labstack/echo/v4"
)

func TestDeleteUserHandler(t *testing.T) {
	txUID := uuid.MustParse("0b0e7f2a-8d8f-4b8e-9c55-1f7c2f0f6e01")
	regionUID := uuid.MustParse("0b0e7f2a-8d8f-4b8e-9c55-1f7c2f0f6e02")
	createdAt := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	t.Run("it responds the precommit transaction", func(t *testing.T) {
		users := usermock.NewUserInterface()
		users.Impl.DeleteUser = func(_ context.Context, uid uuid.UUID) (domain.PrecommitTransaction, error) {
			return domain.PrecommitTransaction{
				UID:       txUID,
				Status:    domain.TransactionReady,
				Type:      domain.DeleteUserTransaction,
				InfoUID:   uid,
				CreatedAt: createdAt,
				Details: []domain.TransactionDetail{
					{UID: uuid.New(), TransactionUID: txUID, RegionUID: regionUID, Status: domain.TransactionReady},
				},
			}, nil
		}

		c, resp := httptestutil.Post(echo.New(), "/api/auth/delete", nil)
		if err := handlers.DeleteUserHandler(users)(withUser(c)); err != nil {
			t.Fatal(err)
		}

		tx := decode[apiusers.Transaction](t, resp.Body.Bytes())
		if tx.UID != txUID.String() || tx.Status != "READY" || tx.Type != "DELETE_USER" || tx.InfoUID != userUID.String() {
			t.Errorf("unexpected transaction: %+v", tx)
		}
		if len(tx.Details) != 1 || tx.Details[0].RegionUID != regionUID.String() {
			t.Errorf("unexpected details: %+v", tx.Details)
		}
		if users.Calls.DeleteUser.Times() != 1 || users.Calls.DeleteUser.Last() != userUID {
			t.Errorf("unexpected calls: %v", users.Calls.DeleteUser)
		}
	})

	for name, testcase := range map[string]struct {
		when error
		then int
	}{
		"missing user":        {when: fmt.Errorf("%w: user", domerr.ErrMissing), then: http.StatusNotFound},
		"deletion in progress": {when: fmt.Errorf("%w: transaction", domerr.ErrConflict), then: http.StatusConflict},
		"broken db":           {when: fmt.Errorf("fake error"), then: http.StatusInternalServerError},
	} {
		t.Run(name, func(t *testing.T) {
			users := usermock.NewUserInterface()
			users.Impl.DeleteUser = func(context.Context, uuid.UUID) (domain.PrecommitTransaction, error) {
				return domain.PrecommitTransaction{}, testcase.when
			}
			c, _ := httptestutil.Post(echo.New(), "/api/auth/delete", nil)

			err := handlers.DeleteUserHandler(users)(withUser(c))
			if actual := codeOf(t, err); actual != testcase.then {
				t.Errorf("status: actual = %d, expected = %d (%v)", actual, testcase.then, err)
			}
		})
	}
}
