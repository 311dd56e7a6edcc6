package game

import (
	"errors"
	"time"
)

// Columns is the number of playable columns.
const Columns = 4

type Kind uint8

const (
	Tap Kind = iota
	Hold
)

func (k Kind) String() string {
	if k == Hold {
		return "hold"
	}
	return "tap"
}

var (
	ErrInvalidColumn = errors.New("column out of range")
	ErrInvalidHold   = errors.New("hold tail must be after its head")
)

type Note struct {
	Column  uint8         // The chart column
	Kind    Kind          //
	Time    time.Duration // The time the note should be hit
	TimeEnd time.Duration // The time a hold should be released, equal to Time for taps
	Denom   int           // The beat length, as a denominator, 4 = 1/4 beat, 0 when unknown

	// This is state
	judged    bool
	judgement Judgement
	held      bool
	broken    bool

	hitTime    time.Duration
	hasHit     bool
	releaseAt  time.Duration
	hasRelease bool

	score  float64
	bonus  float64
	scored bool
}

func NewTap(column uint8, at time.Duration) (*Note, error) {
	if column >= Columns {
		return nil, ErrInvalidColumn
	}
	return &Note{Column: column, Kind: Tap, Time: at, TimeEnd: at}, nil
}

func NewHold(column uint8, head, tail time.Duration) (*Note, error) {
	if column >= Columns {
		return nil, ErrInvalidColumn
	}
	if tail <= head {
		return nil, ErrInvalidHold
	}
	return &Note{Column: column, Kind: Hold, Time: head, TimeEnd: tail}, nil
}

func (n *Note) Judged() bool { return n.judged }
func (n *Note) Held() bool   { return n.held }

// Broken is the combo-breaking marker of a hold note. It is independent
// of the final judgement.
func (n *Note) Broken() bool { return n.broken }

func (n *Note) Judgement() (Judgement, bool) {
	return n.judgement, n.judged
}

func (n *Note) HitTime() (time.Duration, bool) {
	return n.hitTime, n.hasHit
}

func (n *Note) ReleaseTime() (time.Duration, bool) {
	return n.releaseAt, n.hasRelease
}

// Score returns the cached score contribution and the bonus meter
// snapshot taken when it was computed.
func (n *Note) Score() (score, bonus float64, ok bool) {
	return n.score, n.bonus, n.scored
}

// Hit records a tap hit or the head press of a hold.
func (n *Note) Hit(at time.Duration) {
	if n.judged {
		return
	}
	n.hitTime, n.hasHit = at, true
	if n.Kind == Hold {
		n.held = true
	}
}

// Release lets go of a held note without judging it.
func (n *Note) Release(at time.Duration) {
	if n.judged || !n.held {
		return
	}
	n.held = false
	n.releaseAt, n.hasRelease = at, true
}

// Drop forgets the head press of a hold that was let go too early.
func (n *Note) Drop() {
	if n.judged {
		return
	}
	n.held = false
	n.hasHit = false
	n.hasRelease = false
	n.broken = true
}

// Break marks the note as broken. It returns false if it already was.
func (n *Note) Break() bool {
	if n.broken {
		return false
	}
	n.broken = true
	return true
}

// Finalize attaches the judgement. Only the first call has any effect.
func (n *Note) Finalize(j Judgement) bool {
	if n.judged {
		return false
	}
	n.judged = true
	n.judgement = j
	n.held = false
	return true
}

// SetScore caches the score contribution. Only the first call has any effect.
func (n *Note) SetScore(score, bonus float64) bool {
	if n.scored || !n.judged {
		return false
	}
	n.score, n.bonus, n.scored = score, bonus, true
	return true
}

// Reset clears all state, keeping the note identity.
func (n *Note) Reset() {
	*n = Note{
		Column:  n.Column,
		Kind:    n.Kind,
		Time:    n.Time,
		TimeEnd: n.TimeEnd,
		Denom:   n.Denom,
	}
}
