package recurring

import (
	"fmt"
	"strings"
	"time"

	"github.com/kubeconsole/console/pkg/loop"
)

// ParsePolicy parses "forever[:INTERVAL]" or "until-error[:INTERVAL]".
func ParsePolicy(s string) (Policy, error) {
	typ, param, ok := strings.Cut(s, ":")

	interval := time.Duration(0)
	if ok && param != "" {
		d, err := time.ParseDuration(param)
		if err != nil {
			return nil, fmt.Errorf(`failed to parse: %s as "%s:INTERVAL": %w`, s, typ, err)
		}
		interval = d
	}

	switch typ {
	case "forever":
		return Forever(interval), nil
	case "until-error":
		return UntilError(Forever(interval)), nil
	}
	return nil, fmt.Errorf("unknown policy name: %s (should be one of -- forever|until-error)", typ)
}

// Policy decides what a recurring task does after each run.
type Policy interface {
	Next(err error) loop.Next
	String() string
}

// Restart after interval, regardless of errors.
func Forever(interval time.Duration) Policy {
	return forever(interval)
}

type forever time.Duration

func (f forever) String() string {
	return fmt.Sprintf("forever:%s", time.Duration(f).String())
}

func (f forever) Next(error) loop.Next {
	return loop.Continue(time.Duration(f))
}

// add a provisory clause: In case of error, Break with that error.
func UntilError(p Policy) Policy {
	return untilError{base: p}
}

type untilError struct {
	base Policy
}

func (u untilError) String() string {
	return fmt.Sprintf("%s (until error)", u.base.String())
}

func (u untilError) Next(err error) loop.Next {
	if err != nil {
		return loop.Break(err)
	}
	return u.base.Next(err)
}
