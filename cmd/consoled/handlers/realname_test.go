package handlers_test

import (
	"context"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/kubeconsole/console/cmd/consoled/handlers"
	httptestutil "github.com/kubeconsole/console/internal/testutils/http"
	apirealname "github.com/kubeconsole/console/pkg/api/types/realname"
	"github.com/kubeconsole/console/pkg/auth"
	"github.com/kubeconsole/console/pkg/domain"
	realnamemock "github.com/kubeconsole/console/pkg/domain/realname/db/mock"
	"github.com/kubeconsole/console/pkg/realname"
	"github.com/kubeconsole/console/pkg/utils/try"
	"github.com/labstack/echo/v4"
)

var secret = []byte("0123456789abcdef0123456789abcdef")

type faceID struct {
	result realname.Verification
}

func (f faceID) Result(context.Context, string) (realname.Verification, error) {
	return f.result, nil
}

func (faceID) RuleID() string { return "rule-1" }

func callbackTarget(token, bizToken string) string {
	q := url.Values{}
	if token != "" {
		q.Set("token", token)
	}
	if bizToken != "" {
		q.Set("bizToken", bizToken)
	}
	return "/api/account/faceIdRealNameAuthCallback?" + q.Encode()
}

func TestCallbackHandler(t *testing.T) {
	token := try.To(auth.Issue(secret, auth.AccessClaims{UserUid: userUID.String()}, time.Hour)).OrFatal(t)

	t.Run("it verifies the user", func(t *testing.T) {
		realnames := realnamemock.NewRealNameInterface()
		realnames.Impl.Upsert = func(context.Context, domain.RealNameInfo) error { return nil }
		svc := realname.New(faceID{result: realname.Verification{Name: "Alice", IDCard: "110101199001011234"}}, nil, realnames)

		c, resp := httptestutil.Get(echo.New(), callbackTarget(token, "biz-1"))
		if err := handlers.CallbackHandler(svc, secret)(c); err != nil {
			t.Fatal(err)
		}
		actual := decode[apirealname.Result](t, resp.Body.Bytes())
		expected := apirealname.Result{UserUID: userUID.String(), RealName: "Alice", IsVerified: true}
		if actual != expected {
			t.Errorf("actual = %+v, expected = %+v", actual, expected)
		}
	})

	t.Run("it responds 400 when verification failed", func(t *testing.T) {
		realnames := realnamemock.NewRealNameInterface()
		realnames.Impl.RecordFailure = func(context.Context, uuid.UUID, domain.AdditionalInfo) (int, error) { return 2, nil }
		svc := realname.New(faceID{result: realname.Verification{ErrCode: 1001, ErrMsg: "face mismatch"}}, nil, realnames)

		c, _ := httptestutil.Get(echo.New(), callbackTarget(token, "biz-1"))
		err := handlers.CallbackHandler(svc, secret)(c)
		if codeOf(t, err) != http.StatusBadRequest {
			t.Errorf("unexpected: %v", err)
		}
		if realnames.Calls.RecordFailure.Times() != 1 {
			t.Errorf("failure is not recorded")
		}
	})

	for name, testcase := range map[string]struct {
		target string
		then   int
	}{
		"without token":     {target: callbackTarget("", "biz-1"), then: http.StatusUnauthorized},
		"with broken token": {target: callbackTarget("not-a-jwt", "biz-1"), then: http.StatusUnauthorized},
		"without bizToken":  {target: callbackTarget(token, ""), then: http.StatusBadRequest},
	} {
		t.Run(name, func(t *testing.T) {
			svc := realname.New(faceID{}, nil, realnamemock.NewRealNameInterface())
			c, _ := httptestutil.Get(echo.New(), testcase.target)
			err := handlers.CallbackHandler(svc, secret)(c)
			if actual := codeOf(t, err); actual != testcase.then {
				t.Errorf("status: actual = %d, expected = %d (%v)", actual, testcase.then, err)
			}
		})
	}

	t.Run("it responds 503 when face verification is not configured", func(t *testing.T) {
		c, _ := httptestutil.Get(echo.New(), callbackTarget(token, "biz-1"))
		err := handlers.CallbackHandler(nil, secret)(c)
		if codeOf(t, err) != http.StatusServiceUnavailable {
			t.Errorf("unexpected: %v", err)
		}
	})
}
