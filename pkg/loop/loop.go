// Package loop runs a task repeatedly with an interval chosen by the task itself.
//
// It is the scheduled-task primitive of consoled: cache refreshers and
// status pollers are built on Start, and stop when their context is done.
package loop

import (
	"context"
	"fmt"
	"time"
)

// Next tells Start what to do after a run of a task.
type Next struct {
	stop     bool
	err      error
	interval time.Duration
}

func (n Next) String() string {
	switch {
	case n.err != nil:
		return fmt.Sprintf("[break] with error: %v", n.err)
	case n.stop:
		return "[break] without error"
	default:
		return fmt.Sprintf("[continue] interval: %s", n.interval)
	}
}

// Continue runs the task again after interval.
func Continue(interval time.Duration) Next {
	return Next{interval: interval}
}

// Break stops the loop. A non-nil err is returned from Start.
func Break(err error) Next {
	return Next{stop: true, err: err}
}

// Task takes the value returned by its previous run (init, for the first run).
//
// Next{} equals Continue(0).
type Task[T any] func(context.Context, T) (T, Next)

// Start runs task until it breaks or ctx is done.
//
// It returns the last value of task, with the error passed to Break or ctx.Err().
// When ctx is done already, task is never run.
func Start[T any](ctx context.Context, init T, task Task[T], options ...LoopOption) (T, error) {
	if err := ctx.Err(); err != nil {
		return init, err
	}

	value := init
	for {
		next, v := runOnce(ctx, value, task, options)
		if next.stop {
			return v, next.err
		}
		value = v

		if err := sleep(ctx, next.interval); err != nil {
			return value, err
		}
	}
}

func runOnce[T any](ctx context.Context, value T, task Task[T], options []LoopOption) (Next, T) {
	lc := &loopConfig{ctx: ctx}
	for _, opt := range options {
		lc = opt(lc)
	}
	if lc.release != nil {
		defer lc.release()
	}
	v, next := task(lc.ctx, value)
	return next, v
}

// sleep returns ctx.Err() when ctx is done before d passes.
func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

type loopConfig struct {
	ctx     context.Context
	release func()
}

// LoopOption modifies the context passed to each run of a task.
type LoopOption func(*loopConfig) *loopConfig

// WithTimeout bounds each run of a task by d.
func WithTimeout(d time.Duration) LoopOption {
	return func(lc *loopConfig) *loopConfig {
		ctx, cancel := context.WithTimeout(lc.ctx, d)
		outer := lc.release
		return &loopConfig{
			ctx: ctx,
			release: func() {
				cancel()
				if outer != nil {
					outer()
				}
			},
		}
	}
}
