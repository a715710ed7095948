package backoff

import (
	"context"
	"time"
)

// SleepContext sleeps for duration but returns early with the context error
// if ctx is cancelled first. Zero and negative durations return immediately.
func SleepContext(ctx context.Context, duration time.Duration) error {
	if duration <= 0 {
		return nil
	}

	timer := time.NewTimer(duration)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
