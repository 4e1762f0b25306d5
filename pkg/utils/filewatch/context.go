package filewatch

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"
)

// ErrModified is the cause of contexts canceled by file modification.
type ErrModified struct {
	Path string
	Op   fsnotify.Op
}

func (e *ErrModified) Error() string {
	return fmt.Sprintf("%s is updated (%s)", e.Path, e.Op.String())
}

// UntilModifyContext returns a context that is canceled
// when one of target paths is written, created, removed or renamed.
// Permission changes are ignored.
//
// Cause of the canceled context (context.Cause) is *ErrModified.
//
// If error is not nil, both of the the context and the cancel function are nil.
func UntilModifyContext(ctx context.Context, targetPath ...string) (context.Context, func(), error) {
	cctx, cancel := context.WithCancelCause(ctx)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		cancel(err)
		return nil, nil, err
	}

	const interest = fsnotify.Write | fsnotify.Create | fsnotify.Remove | fsnotify.Rename

	go func() {
		defer w.Close()

		for {
			select {
			case <-cctx.Done():
				return
			case event, ok := <-w.Events:
				if !ok {
					return
				}
				if event.Op&interest == 0 {
					continue
				}
				cancel(&ErrModified{Path: event.Name, Op: event.Op})
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				cancel(err)
			}
		}
	}()

	for _, f := range targetPath {
		if err = w.Add(f); err != nil {
			cancel(err)
			return nil, nil, err
		}
	}
	return cctx, func() { cancel(nil) }, nil
}
