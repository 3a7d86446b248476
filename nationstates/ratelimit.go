package nationstates

import (
	"context"
	"sync"
	"time"
)

// Rate-limit defaults. The API allows DefaultWindow requests per DefaultPause.
const (
	DefaultWindow = 50
	DefaultMargin = 10
	DefaultPause  = 30 * time.Second
)

// RateTracker remembers when the client last came within margin requests of
// the API's limit. The next request consumes that state and waits out the
// rest of the rate-limit window.
type RateTracker struct {
	mu      sync.Mutex
	armedAt time.Time
	armed   bool

	window int
	margin int
	pause  time.Duration
	now    func() time.Time
}

// NewRateTracker creates a tracker for window requests per pause, backing off
// when fewer than margin requests remain.
func NewRateTracker(window, margin int, pause time.Duration) *RateTracker {
	return &RateTracker{
		window: window,
		margin: margin,
		pause:  pause,
		now:    time.Now,
	}
}

// Threshold is the requests-seen count at which the tracker arms.
func (t *RateTracker) Threshold() int {
	return min(max(1, t.window-t.margin), t.window)
}

// Observe records the requests-seen counter from a response and reports
// whether the tracker armed.
func (t *RateTracker) Observe(requestsSeen int) bool {
	if requestsSeen < t.Threshold() {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	t.armedAt = t.now()
	t.armed = true
	return true
}

// Armed reports whether a backoff is pending.
func (t *RateTracker) Armed() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.armed
}

// Consume returns how long to wait before the next request and clears the
// pending state, whether or not any wait remains.
func (t *RateTracker) Consume() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.armed {
		return 0
	}
	remaining := t.pause - t.now().Sub(t.armedAt)
	t.armed = false
	t.armedAt = time.Time{}

	if remaining < 0 {
		return 0
	}
	return remaining
}

// Wait consumes the pending state and sleeps for whatever is left of the window.
func (t *RateTracker) Wait(ctx context.Context) (time.Duration, error) {
	d := t.Consume()
	if d <= 0 {
		return 0, nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return d, nil
	case <-ctx.Done():
		return d, ctx.Err()
	}
}
