package session

import (
	"testing"
	"time"
)

func TestClockAccumulatesAcrossStartStop(t *testing.T) {
	fc := &fakeClock{t: time.Unix(0, 0)}
	c := NewClock(fc.now)

	c.Start()
	fc.advance(5 * time.Second)
	c.Stop()

	fc.advance(60 * time.Second) // stopped time does not count

	c.Start()
	fc.advance(7 * time.Second)
	c.Stop()

	if got := c.Seconds(); got != 12 {
		t.Errorf("Seconds() = %d, want 12", got)
	}
}

func TestClockDoubleStartDoesNotDoubleCount(t *testing.T) {
	fc := &fakeClock{t: time.Unix(0, 0)}
	c := NewClock(fc.now)

	c.Start()
	fc.advance(3 * time.Second)
	c.Start() // must not reset the running measurement
	fc.advance(3 * time.Second)
	c.Stop()
	c.Stop() // must not add anything

	if got := c.Seconds(); got != 6 {
		t.Errorf("Seconds() = %d, want 6", got)
	}
}

func TestClockElapsedWhileRunning(t *testing.T) {
	fc := &fakeClock{t: time.Unix(0, 0)}
	c := NewClock(fc.now)

	c.Start()
	fc.advance(90 * time.Second)

	if got := c.Elapsed(); got != 90*time.Second {
		t.Errorf("Elapsed() = %v, want 90s", got)
	}
	if !c.Running() {
		t.Error("Running() = false while started")
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "00:00"},
		{7 * time.Second, "00:07"},
		{59 * time.Second, "00:59"},
		{60 * time.Second, "01:00"},
		{90 * time.Second, "01:30"},
		{61 * time.Minute, "61:00"},
		{-3 * time.Second, "00:00"},
	}

	for _, tt := range tests {
		if got := FormatElapsed(tt.d); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}
