// Package labels builds equality-based label selectors.
//
// See: https://kubernetes.io/docs/concepts/overview/working-with-objects/labels/#equality-based-requirement
package labels

import (
	"sort"
	"strings"
)

// one requirement on a label value.
type Requirement struct {
	negate bool
	value  string
}

func Eq(value string) Requirement {
	return Requirement{value: value}
}

func NotEq(value string) Requirement {
	return Requirement{negate: true, value: value}
}

func (r Requirement) operator() string {
	if r.negate {
		return "!="
	}
	return "="
}

func (r Requirement) QueryString(label string) string {
	return label + r.operator() + r.value
}

// Matches reports whether a label value satisfies the requirement.
//
// A missing label satisfies NotEq, and does not satisfy Eq.
func (r Requirement) Matches(value string, found bool) bool {
	if r.negate {
		return !found || value != r.value
	}
	return found && value == r.value
}

type Selector map[string]Requirement

// Everything selects all objects.
func Everything() Selector {
	return Selector{}
}

// selector requiring all of labels.
func Of(ls map[string]string) Selector {
	new := Selector{}
	for k, v := range ls {
		new[k] = Eq(v)
	}
	return new
}

// convert to string value in form of query string.
//
// Requirements are sorted by label key.
func (s Selector) QueryString() string {
	if len(s) == 0 {
		return ""
	}

	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	exprs := make([]string, 0, len(keys))
	for _, k := range keys {
		exprs = append(exprs, s[k].QueryString(k))
	}
	return strings.Join(exprs, ",")
}

func (s Selector) String() string {
	return s.QueryString()
}

// Matches reports whether labels satisfy all requirements.
func (s Selector) Matches(ls map[string]string) bool {
	for k, req := range s {
		v, found := ls[k]
		if !req.Matches(v, found) {
			return false
		}
	}
	return true
}
