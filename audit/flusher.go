package audit

import (
	"context"
	"time"
)

// StartStatsFlusher starts a background loop that logs claim and collision
// totals every FlushInterval until StopStatsFlusher is called.
func (r *Recorder) StartStatsFlusher() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.running = true

	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		ticker := time.NewTicker(r.cfg.FlushInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				r.logger.Info("audit totals",
					"claims", r.Claims(),
					"collisions", r.Collisions())
			case <-ctx.Done():
				return
			}
		}
	}()
}

// StopStatsFlusher stops the background loop and waits for it to exit.
func (r *Recorder) StopStatsFlusher() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.running {
		return
	}

	r.cancel()
	r.wg.Wait()
	r.running = false
}

// IsFlusherRunning reports whether the stats loop is active.
func (r *Recorder) IsFlusherRunning() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}
