package game

import (
	"math"
	"time"
)

// Tier is a judgement grade. Its numeric value is the raw hit value.
type Tier int

const (
	Miss    Tier = 0
	Meh     Tier = 50
	Ok      Tier = 100
	Good    Tier = 200
	Great   Tier = 300
	Perfect Tier = 320
)

// Tiers in the order they are tested, tightest window first.
var Tiers = [...]Tier{Perfect, Great, Good, Ok, Meh, Miss}

func (t Tier) String() string {
	switch t {
	case Perfect:
		return "Perfect"
	case Great:
		return "Great"
	case Good:
		return "Good"
	case Ok:
		return "Ok"
	case Meh:
		return "Meh"
	case Miss:
		return "Miss"
	}
	return "Unknown"
}

// Value is the raw hit value used by the base score.
func (t Tier) Value() float64 {
	return float64(t)
}

// BonusMagnitude scales the bonus score of a note.
func (t Tier) BonusMagnitude() float64 {
	switch t {
	case Perfect, Great:
		return 32
	case Good:
		return 16
	case Ok:
		return 8
	case Meh:
		return 4
	}
	return 0
}

// BonusGain is added to the bonus meter.
func (t Tier) BonusGain() float64 {
	return math.Floor(t.BonusMagnitude() / 16)
}

// BonusPenalty is removed from the bonus meter. A miss drains it.
func (t Tier) BonusPenalty() float64 {
	switch t {
	case Perfect, Great:
		return 0
	case Good:
		return 8
	case Ok:
		return 24
	case Meh:
		return 44
	}
	return math.Inf(1)
}

// Accuracy is the weight of the tier in the accuracy ratio.
func (t Tier) Accuracy() float64 {
	switch t {
	case Perfect, Great:
		return 1.0
	case Good:
		return 0.6667
	case Ok:
		return 0.3333
	case Meh:
		return 0.1667
	}
	return 0
}

// BreaksCombo reports whether the tier resets the combo.
func (t Tier) BreaksCombo() bool {
	return t == Meh || t == Miss
}

// Judgement is attached to a note exactly once and never changes.
type Judgement struct {
	Tier Tier
	Hit  time.Duration

	release    time.Duration
	hasRelease bool
}

func NewJudgement(tier Tier, hit time.Duration) Judgement {
	return Judgement{Tier: tier, Hit: hit}
}

func NewHoldJudgement(tier Tier, hit, release time.Duration) Judgement {
	return Judgement{Tier: tier, Hit: hit, release: release, hasRelease: true}
}

// Release is only present for judgements of hold notes.
func (j Judgement) Release() (time.Duration, bool) {
	return j.release, j.hasRelease
}

// At is the moment the judgement was decided.
func (j Judgement) At() time.Duration {
	if j.hasRelease {
		return j.release
	}
	return j.Hit
}

// Record counts finalized notes per tier.
type Record map[Tier]int

func NewRecord() Record {
	r := make(Record, len(Tiers))
	for _, t := range Tiers {
		r[t] = 0
	}
	return r
}

func (r Record) Total() int {
	total := 0
	for _, c := range r {
		total += c
	}
	return total
}
