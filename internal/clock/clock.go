// Package clock keeps the game time of a session.
//
// Game time is wall time since the start, minus the lead-in and minus
// all time spent paused. It is not derived from the audio position, so a
// stalled playback drifts away from it.
package clock

import "time"

type Clock struct {
	now    func() time.Time
	leadIn time.Duration

	start       time.Time
	pausedAt    time.Time
	pausedTotal time.Duration
	paused      bool
	resume      Deadline
}

// New creates a clock reading wall time from now, time.Now when nil.
func New(now func() time.Time, leadIn time.Duration) *Clock {
	if now == nil {
		now = time.Now
	}
	return &Clock{now: now, leadIn: leadIn}
}

func (c *Clock) LeadIn() time.Duration { return c.leadIn }

// Wall returns the current wall time.
func (c *Clock) Wall() time.Time { return c.now() }

// Start begins a session. Game time zero is one lead-in from now.
func (c *Clock) Start() {
	c.start = c.now().Add(c.leadIn)
	c.pausedAt = time.Time{}
	c.pausedTotal = 0
	c.paused = false
	c.resume.Cancel()
}

// Elapsed is the game time. It stands still while paused.
func (c *Clock) Elapsed() time.Duration {
	at := c.now()
	if c.paused {
		at = c.pausedAt
	}
	return at.Sub(c.start) - c.pausedTotal
}

func (c *Clock) Paused() bool { return c.paused }

// Resuming reports whether a resume is scheduled.
func (c *Clock) Resuming() bool { return c.resume.Pending() }

// Pause stops game time. If a resume is scheduled it is cancelled instead
// and the clock stays paused from the original moment. It reports whether
// the clock was running.
func (c *Clock) Pause() bool {
	if c.resume.Pending() {
		c.resume.Cancel()
		return false
	}
	if c.paused {
		return false
	}
	c.paused = true
	c.pausedAt = c.now()
	return true
}

// Resume schedules game time to continue one lead-in from now.
func (c *Clock) Resume() {
	if !c.paused || c.resume.Pending() {
		return
	}
	c.resume.Set(c.now().Add(c.leadIn))
}

// Tick completes a scheduled resume once it is due, reporting whether it did.
func (c *Clock) Tick() bool {
	now := c.now()
	if !c.resume.Due(now) {
		return false
	}
	c.pausedTotal += now.Sub(c.pausedAt)
	c.paused = false
	return true
}
