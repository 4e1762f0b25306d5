package labels_test

import (
	"testing"

	"github.com/kubeconsole/console/pkg/kube/labels"
)

func TestSelector_QueryString(t *testing.T) {
	for name, testcase := range map[string]struct {
		when labels.Selector
		then string
	}{
		"empty": {
			when: labels.Everything(),
			then: "",
		},
		"single": {
			when: labels.Of(map[string]string{"cloud.console.io/instance": "demo"}),
			then: "cloud.console.io/instance=demo",
		},
		"multiple requirements are sorted": {
			when: labels.Selector{
				"b": labels.NotEq("x"),
				"a": labels.Eq("y"),
			},
			then: "a=y,b!=x",
		},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := testcase.when.QueryString(); actual != testcase.then {
				t.Errorf("unmatch: (actual, expected) = (%s, %s)", actual, testcase.then)
			}
		})
	}
}

func TestSelector_Matches(t *testing.T) {
	selector := labels.Selector{
		"app":  labels.Eq("demo"),
		"tier": labels.NotEq("db"),
	}

	for name, testcase := range map[string]struct {
		when map[string]string
		then bool
	}{
		"all satisfied":             {when: map[string]string{"app": "demo", "tier": "web"}, then: true},
		"missing label for NotEq":   {when: map[string]string{"app": "demo"}, then: true},
		"NotEq is violated":         {when: map[string]string{"app": "demo", "tier": "db"}, then: false},
		"Eq is violated":            {when: map[string]string{"app": "other"}, then: false},
		"missing label for Eq":      {when: map[string]string{"tier": "web"}, then: false},
		"nil labels":                {when: nil, then: false},
	} {
		t.Run(name, func(t *testing.T) {
			if actual := selector.Matches(testcase.when); actual != testcase.then {
				t.Errorf("unmatch: (actual, expected) = (%v, %v)", actual, testcase.then)
			}
		})
	}

	if !labels.Everything().Matches(nil) {
		t.Error("Everything should match anything")
	}
}
