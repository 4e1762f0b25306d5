package errors_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	apierr "github.com/kubeconsole/console/pkg/api/types/errors"
	"github.com/labstack/echo/v4"
)

func TestNewErrorMessage(t *testing.T) {
	cause := errors.New("fake cause")
	herr := apierr.BadRequest("check your input", cause)

	if herr.Code != http.StatusBadRequest {
		t.Errorf("unexpected code: %d", herr.Code)
	}

	msg := apierr.MessageOf(herr)
	if msg.Reason != "bad request" || msg.Advice != "check your input" {
		t.Errorf("unexpected message: %+v", msg)
	}
	if !errors.Is(herr, cause) {
		t.Errorf("cause is lost: %v", herr)
	}
}

func TestMessageOf(t *testing.T) {
	for name, testcase := range map[string]struct {
		when *echo.HTTPError
		then string
	}{
		"string message": {
			when: echo.NewHTTPError(http.StatusForbidden, "forbidden!"),
			then: "forbidden!",
		},
		"no message": {
			when: &echo.HTTPError{Code: http.StatusTeapot},
			then: http.StatusText(http.StatusTeapot),
		},
		"ErrorMessage": {
			when: apierr.Conflict("already exists"),
			then: "already exists",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := apierr.MessageOf(testcase.when).Reason; actual != testcase.then {
				t.Errorf("unmatch reason: (actual, expected) = (%s, %s)", actual, testcase.then)
			}
		})
	}
}

func TestErrorMessage_UnmarshalJSON(t *testing.T) {
	t.Run("reason is required", func(t *testing.T) {
		var m apierr.ErrorMessage
		if err := json.Unmarshal([]byte(`{"advice": "x"}`), &m); err == nil {
			t.Error("expected error is not returned")
		}
	})

	t.Run("it reads all fields", func(t *testing.T) {
		var m apierr.ErrorMessage
		if err := json.Unmarshal([]byte(`{"reason": "r", "advice": "a", "see": "s"}`), &m); err != nil {
			t.Fatal(err)
		}
		if m.Reason != "r" || m.Advice != "a" || m.See != "s" {
			t.Errorf("unexpected: %+v", m)
		}
	})
}
