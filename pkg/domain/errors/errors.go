package errors

import "errors"

var (
	// requested entity is not found.
	ErrMissing = errors.New("missing")

	// requested entity conflicts with existing one.
	ErrConflict = errors.New("conflict")

	// account balance is not enough to continue.
	ErrInsufficientBalance = errors.New("insufficient balance")

	// entity is found more than expected.
	ErrTooMuch = errors.New("too much")
)
