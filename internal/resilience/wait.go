package resilience

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrWaitTimeout is returned when WaitUntil gives up before the
// condition succeeds.
var ErrWaitTimeout = errors.New("condition not met before timeout")

// WaitUntil polls fn at a fixed interval until it returns nil, the
// timeout elapses, or the context is canceled. The dev stack supervisor
// uses it to wait for service health endpoints to come up.
func WaitUntil(ctx context.Context, timeout, interval time.Duration, fn func(context.Context) error) error {
	if interval <= 0 {
		interval = time.Second
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	parent := ctx
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var lastErr error
	for {
		if err := fn(ctx); err == nil {
			return nil
		} else if !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded) {
			lastErr = err
		}

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			if parent.Err() != nil {
				return parent.Err()
			}
			if lastErr != nil {
				return fmt.Errorf("%w: %v", ErrWaitTimeout, lastErr)
			}
			return ErrWaitTimeout
		case <-timer.C:
		}
	}
}
