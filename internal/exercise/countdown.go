package exercise

import "time"

// Countdown is a cancellable timer driven by explicit clock readings
// rather than goroutines. The owning variant stops it on phase exit.
type Countdown struct {
	duration time.Duration
	deadline time.Time
	armed    bool
}

// NewCountdown returns a stopped countdown of duration d.
func NewCountdown(d time.Duration) *Countdown {
	return &Countdown{duration: d}
}

// Start arms the countdown from now, replacing any earlier deadline.
func (c *Countdown) Start(now time.Time) {
	c.deadline = now.Add(c.duration)
	c.armed = true
}

// StartWith arms the countdown with a one-off duration.
func (c *Countdown) StartWith(now time.Time, d time.Duration) {
	c.duration = d
	c.Start(now)
}

// Stop disarms the countdown.
func (c *Countdown) Stop() { c.armed = false }

// Armed reports whether the countdown is running.
func (c *Countdown) Armed() bool { return c.armed }

// Duration returns the length of the current run.
func (c *Countdown) Duration() time.Duration { return c.duration }

// Deadline returns when the current run ends.
func (c *Countdown) Deadline() time.Time { return c.deadline }

// Remaining returns the time left, or zero if stopped or past due.
func (c *Countdown) Remaining(now time.Time) time.Duration {
	if !c.armed {
		return 0
	}
	return max(0, c.deadline.Sub(now))
}

// Expired reports whether an armed countdown has reached its deadline.
func (c *Countdown) Expired(now time.Time) bool {
	return c.armed && !now.Before(c.deadline)
}

// SecondsLeft rounds the remaining time up to whole seconds for display.
func (c *Countdown) SecondsLeft(now time.Time) int {
	r := c.Remaining(now)
	return int((r + time.Second - 1) / time.Second)
}
