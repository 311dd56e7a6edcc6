package clock

import "time"

// Deadline is a scheduled moment that can be cancelled before it passes.
// The zero value is unset.
type Deadline struct {
	at  time.Time
	set bool
}

func (d *Deadline) Set(at time.Time) {
	d.at, d.set = at, true
}

func (d *Deadline) Cancel() {
	d.set = false
}

func (d *Deadline) Pending() bool {
	return d.set
}

// Due reports whether the deadline has passed at now, clearing it if so.
func (d *Deadline) Due(now time.Time) bool {
	if !d.set || now.Before(d.at) {
		return false
	}
	d.set = false
	return true
}
