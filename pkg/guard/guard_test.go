package guard_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/google/uuid"
	httptestutil "github.com/kubeconsole/console/internal/testutils/http"
	kubetest "github.com/kubeconsole/console/internal/testutils/kube"
	"github.com/kubeconsole/console/pkg/auth"
	"github.com/kubeconsole/console/pkg/domain"
	accountmock "github.com/kubeconsole/console/pkg/domain/account/db/mock"
	domerr "github.com/kubeconsole/console/pkg/domain/errors"
	"github.com/kubeconsole/console/pkg/guard"
	"github.com/kubeconsole/console/pkg/kube/resources"
	"github.com/kubeconsole/console/pkg/kubeutil"
	"github.com/labstack/echo/v4"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	kubefake "k8s.io/client-go/kubernetes/fake"
)

var userUID = uuid.MustParse("6f1d6f2e-3f6c-4c1a-9d6f-2b1f0b6a6a01")

func withSession(workspace string) echo.Context {
	c, _ := httptestutil.Post(echo.New(), "/api/auth/delete", nil)
	return auth.WithSession(c, &auth.AccessClaims{UserUid: userUID.String(), WorkspaceId: workspace})
}

func codeOf(t *testing.T, err error) int {
	t.Helper()
	if err == nil {
		return http.StatusOK
	}
	herr := new(echo.HTTPError)
	if !errors.As(err, &herr) {
		t.Fatalf("unexpected error: %v", err)
	}
	return herr.Code
}

func next(called *bool) echo.HandlerFunc {
	return func(echo.Context) error {
		*called = true
		return nil
	}
}

func TestAccountBalanceGuard(t *testing.T) {
	type when struct {
		account domain.Account
		err     error
	}
	for name, testcase := range map[string]struct {
		when when
		then int
	}{
		"positive available balance": {
			when: when{account: domain.Account{Balance: 100, DeductionBalance: 40}},
			then: http.StatusOK,
		},
		"zero available balance": {
			when: when{account: domain.Account{Balance: 100, DeductionBalance: 100}},
			then: http.StatusOK,
		},
		"negative available balance": {
			when: when{account: domain.Account{Balance: 100, DeductionBalance: 101}},
			then: http.StatusConflict,
		},
		"missing account": {
			when: when{err: fmt.Errorf("%w: account", domerr.ErrMissing)},
			then: http.StatusNotFound,
		},
		"broken database": {
			when: when{err: errors.New("fake error")},
			then: http.StatusInternalServerError,
		},
	} {
		t.Run(name, func(t *testing.T) {
			accounts := accountmock.NewAccountInterface()
			accounts.Impl.Get = func(_ context.Context, uid uuid.UUID) (domain.Account, error) {
				a := testcase.when.account
				a.UserUID = uid
				return a, testcase.when.err
			}

			called := false
			err := guard.AccountBalanceGuard(accounts)(next(&called))(withSession("ns-alice"))

			if actual := codeOf(t, err); actual != testcase.then {
				t.Errorf("status: actual = %d, expected = %d (%v)", actual, testcase.then, err)
			}
			if called != (testcase.then == http.StatusOK) {
				t.Errorf("next is called = %v", called)
			}
			if accounts.Calls.Get.Times() != 1 || accounts.Calls.Get.Last() != userUID {
				t.Errorf("unexpected calls: %v", accounts.Calls.Get)
			}
		})
	}

	t.Run("without session, it responds 401", func(t *testing.T) {
		c, _ := httptestutil.Post(echo.New(), "/api/auth/delete", nil)
		called := false
		err := guard.AccountBalanceGuard(accountmock.NewAccountInterface())(next(&called))(c)
		if codeOf(t, err) != http.StatusUnauthorized || called {
			t.Errorf("unexpected: %v", err)
		}
	})
}

func TestResourceGuard(t *testing.T) {
	workspace := &corev1.Namespace{ObjectMeta: metav1.ObjectMeta{Name: "ns-alice"}}

	for name, testcase := range map[string]struct {
		namespace string
		objs      []runtime.Object
		then      int
	}{
		"empty workspace": {
			namespace: "ns-alice",
			objs: []runtime.Object{
				// not a blocker
				kubetest.Object(resources.ConfigMap, "ns-alice", "conf", nil),
				// other workspace
				kubetest.Object(resources.App, "ns-bob", "app", nil),
			},
			then: http.StatusOK,
		},
		"workspace with an instance": {
			namespace: "ns-alice",
			objs:      []runtime.Object{kubetest.Object(resources.Instance, "ns-alice", "demo", nil)},
			then:      http.StatusConflict,
		},
		"workspace with a bucket": {
			namespace: "ns-alice",
			objs:      []runtime.Object{kubetest.Object(resources.ObjectStorageBucket, "ns-alice", "bucket", nil)},
			then:      http.StatusConflict,
		},
		"workspace with a database": {
			namespace: "ns-alice",
			objs:      []runtime.Object{kubetest.Object(resources.Database, "ns-alice", "pg", nil)},
			then:      http.StatusConflict,
		},
		"missing workspace": {
			namespace: "ns-ghost",
			then:      http.StatusNotFound,
		},
		"no workspace in session": {
			namespace: "",
			then:      http.StatusNotFound,
		},
	} {
		t.Run(name, func(t *testing.T) {
			clients := kubeutil.Clients{
				Kube:    kubefake.NewSimpleClientset(workspace),
				Dynamic: kubetest.NewDynamic(testcase.objs...),
			}
			called := false
			err := guard.ResourceGuard(clients)(next(&called))(withSession(testcase.namespace))

			if actual := codeOf(t, err); actual != testcase.then {
				t.Errorf("status: actual = %d, expected = %d (%v)", actual, testcase.then, err)
			}
			if called != (testcase.then == http.StatusOK) {
				t.Errorf("next is called = %v", called)
			}
		})
	}
}
