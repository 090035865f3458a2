// Package clock provides helpers for time-related operations.
package clock

import (
	"context"
	"time"
)

// Sleeper waits for d unless ctx ends first. Components take one so tests can
// replace real waiting.
type Sleeper func(ctx context.Context, d time.Duration) error

// SleepWithContext waits for the duration or returns early if the context is canceled.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Poll sleeps for interval and then calls fn, repeating until fn reports done or
// fails, or ctx ends.
func Poll(ctx context.Context, sleep Sleeper, interval time.Duration, fn func(ctx context.Context) (bool, error)) error {
	for {
		if err := sleep(ctx, interval); err != nil {
			return err
		}
		done, err := fn(ctx)
		if err != nil || done {
			return err
		}
	}
}
