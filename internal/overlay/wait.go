package overlay

import (
	"context"
	"time"

	"github.com/pkg/errors"
)

// ErrWaitTimeout is the terminal state of WaitFor: the page never mounted
// within the allowed window.
var ErrWaitTimeout = errors.New("timed out waiting for condition")

// WaitFor polls ready until it reports true, the timeout elapses, or the
// context is done. Jumping to a page depends on the rendering surface
// finishing layout; polling an explicit mount predicate replaces the fixed
// sleeps that made large documents racy.
func WaitFor(ctx context.Context, interval, timeout time.Duration, ready func() bool) error {
	if ready() {
		return nil
	}

	deadline := time.NewTimer(timeout)
	defer deadline.Stop()
	tick := time.NewTicker(interval)
	defer tick.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-deadline.C:
			return ErrWaitTimeout
		case <-tick.C:
			if ready() {
				return nil
			}
		}
	}
}
