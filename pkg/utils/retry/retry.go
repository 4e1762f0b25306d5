package retry

import (
	"context"
	"errors"
	"time"
)

// ErrRetry is returned by a polled function to request one more attempt.
var ErrRetry = errors.New("retry")

// Backoff is a (blocking) function returns when to retry.
//
// # Args
//
// - context: context. If context is canceled, Backoff should return ctx.Err().
//
// # Returns
//
// - error: nil if retry, non-nil if not.
type Backoff func(context.Context) error

// StaticBackoff returns a Backoff function that waits for a fixed interval.
func StaticBackoff(interval time.Duration) Backoff {
	return ExponentialBackoff(interval, 1)
}

// ExponentialBackoff returns a Backoff function that waits with exponential backoff.
//
// For N-th call, it waits for `initialInterval * r^N` or context to be done.
func ExponentialBackoff(initialInterval time.Duration, r float64) Backoff {
	interval := initialInterval
	return func(ctx context.Context) error {
		timer := time.NewTimer(interval)
		defer func() {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			interval = time.Duration(int64(float64(interval) * r))
			return nil
		}
	}
}

// Limited wraps b so that it gives up with ErrAttemptsExhausted after n waits.
func Limited(n int, b Backoff) Backoff {
	count := 0
	return func(ctx context.Context) error {
		if n <= count {
			return ErrAttemptsExhausted
		}
		count += 1
		return b(ctx)
	}
}

var ErrAttemptsExhausted = errors.New("retry: attempts exhausted")

// Blocking calls f until it returns nil or non-retry error.
//
// f is called once immediately; backoff is waited before each following attempt.
//
// # Returns
//
// - T: last return value of f
//
// - error: error returned by f, or by backoff (context error or ErrAttemptsExhausted)
func Blocking[T any](ctx context.Context, b Backoff, f func(context.Context) (T, error)) (T, error) {
	for {
		last, err := f(ctx)
		if err == nil {
			return last, nil
		}
		if !errors.Is(err, ErrRetry) {
			return last, err
		}
		if err := b(ctx); err != nil {
			return last, err
		}
	}
}
