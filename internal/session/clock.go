package session

import (
	"fmt"
	"time"
)

// Clock accumulates elapsed play time across start/stop cycles. It is
// started on the first tile reveal, stopped on completion, and never reset
// within a session. Repeated Start or Stop calls are no-ops, so a completion
// check racing the last match cannot double-count time.
type Clock struct {
	now         func() time.Time
	accumulated time.Duration
	startedAt   time.Time
	running     bool
}

// NewClock creates a stopped clock. A nil now falls back to time.Now;
// tests inject a fake.
func NewClock(now func() time.Time) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now}
}

// Start begins measuring. No-op while already running.
func (c *Clock) Start() {
	if c.running {
		return
	}
	c.startedAt = c.now()
	c.running = true
}

// Stop folds the delta since the last Start into the running total.
// No-op while already stopped.
func (c *Clock) Stop() {
	if !c.running {
		return
	}
	c.accumulated += c.now().Sub(c.startedAt)
	c.running = false
}

// Running reports whether the clock is measuring.
func (c *Clock) Running() bool {
	return c.running
}

// Elapsed returns the total measured play time.
func (c *Clock) Elapsed() time.Duration {
	if c.running {
		return c.accumulated + c.now().Sub(c.startedAt)
	}
	return c.accumulated
}

// Seconds returns the whole-second elapsed time.
func (c *Clock) Seconds() int {
	return int(c.Elapsed() / time.Second)
}

// FormatElapsed renders a duration as zero-padded MM:SS.
func FormatElapsed(d time.Duration) string {
	secs := int(d / time.Second)
	if secs < 0 {
		secs = 0
	}
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}
