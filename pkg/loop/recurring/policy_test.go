package recurring_test

import (
	"errors"
	"testing"
	"time"

	"github.com/kubeconsole/console/pkg/loop"
	"github.com/kubeconsole/console/pkg/loop/recurring"
)

func TestParsePolicy(t *testing.T) {
	for name, testcase := range map[string]struct {
		when        string
		then        recurring.Policy
		expectError bool
	}{
		"forever means forever": {
			when: "forever",
			then: recurring.Forever(0),
		},
		"forever:3s means forever with interval 3 seconds": {
			when: "forever:3s",
			then: recurring.Forever(3 * time.Second),
		},
		"forever:someday can not be parsed (someday is not time.Duration)": {
			when:        "forever:someday",
			expectError: true,
		},
		"until-error:1m means forever with interval 1 minute, until error": {
			when: "until-error:1m",
			then: recurring.UntilError(recurring.Forever(time.Minute)),
		},
		"empty string can not be parsed (it is not policy)": {
			when:        "",
			expectError: true,
		},
		"unknown policy can not be parsed": {
			when:        "???????unknown??????",
			expectError: true,
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual, err := recurring.ParsePolicy(testcase.when)

			if testcase.expectError {
				if err == nil {
					t.Fatal("expected error does not occured")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if actual.String() != testcase.then.String() {
				t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, testcase.then)
			}
		})
	}
}

func TestPolicy_Next(t *testing.T) {
	someErr := errors.New("fake error")

	for name, testcase := range map[string]struct {
		policy recurring.Policy
		err    error
		then   loop.Next
	}{
		"forever continues without error": {
			policy: recurring.Forever(time.Second),
			then:   loop.Continue(time.Second),
		},
		"forever continues even if error": {
			policy: recurring.Forever(time.Second),
			err:    someErr,
			then:   loop.Continue(time.Second),
		},
		"until-error continues without error": {
			policy: recurring.UntilError(recurring.Forever(time.Second)),
			then:   loop.Continue(time.Second),
		},
		"until-error breaks with error": {
			policy: recurring.UntilError(recurring.Forever(time.Second)),
			err:    someErr,
			then:   loop.Break(someErr),
		},
	} {
		t.Run(name, func(t *testing.T) {
			actual := testcase.policy.Next(testcase.err)
			if actual.String() != testcase.then.String() {
				t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, testcase.then)
			}
		})
	}
}
