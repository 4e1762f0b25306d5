package mocks

import "errors"

type CallLog[T any] []T

func (l CallLog[T]) Times() uint {
	return uint(len(l))
}

// the latest call. It panics when no calls are recorded.
func (l CallLog[T]) Last() T {
	if len(l) == 0 {
		panic(errors.New("no calls are recorded"))
	}
	return l[len(l)-1]
}

// panics in mocks of which Impl is not given.
var ErrUnexpectedCall = errors.New("it should not be called")
