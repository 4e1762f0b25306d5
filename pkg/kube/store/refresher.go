package store

import (
	"context"
	"time"

	"github.com/kubeconsole/console/pkg/kube/object"
	"github.com/kubeconsole/console/pkg/loop"
	"github.com/kubeconsole/console/pkg/loop/recurring"
)

// Logger is the subset of echo.Logger used by refreshers.
type Logger interface {
	Debugf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Refresher fetches stores periodically.
type Refresher struct {
	stores  []*KubeStore
	policy  recurring.Policy
	timeout time.Duration
	logger  Logger

	// called after each fetch. It may be nil.
	OnFetch func(s *KubeStore, objs []object.KubeObject, err error)
}

func NewRefresher(policy recurring.Policy, timeout time.Duration, logger Logger, stores ...*KubeStore) *Refresher {
	return &Refresher{stores: stores, policy: policy, timeout: timeout, logger: logger}
}

// Run fetches all stores, then repeats as the policy says until ctx is done.
//
// A failed fetch of a store does not prevent fetches of the others.
// It returns the error of the policy breaking the loop, or ctx.Err().
func (r *Refresher) Run(ctx context.Context) error {
	opts := []loop.LoopOption{}
	if 0 < r.timeout {
		opts = append(opts, loop.WithTimeout(r.timeout))
	}

	_, err := loop.Start(
		ctx, struct{}{},
		func(ctx context.Context, v struct{}) (struct{}, loop.Next) {
			var firstErr error
			for _, s := range r.stores {
				objs, err := s.Fetch(ctx)
				if r.OnFetch != nil {
					r.OnFetch(s, objs, err)
				}
				if err != nil {
					r.logger.Warnf("refresh %s: %+v", s.Kind().Name, err)
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				r.logger.Debugf("refresh %s: %d objects", s.Kind().Name, len(objs))
			}
			return v, r.policy.Next(firstErr)
		},
		opts...,
	)
	return err
}
