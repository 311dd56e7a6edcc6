package score

import (
	"math"

	"git.lost.host/meutraa/fourk/internal/game"
)

// DefaultBudget is the score of a run where every note is Perfect and
// the bonus meter never drops.
const DefaultBudget = 1_000_000

const (
	maxBonus = 100
	minBonus = 0
)

func clamp(v float64) float64 {
	if v < minBonus {
		return minBonus
	}
	if v > maxBonus {
		return maxBonus
	}
	return v
}

// Scorer turns judgements into score through a bonus meter carried from
// one finalized note to the next.
type Scorer struct {
	budget  float64
	perNote float64
	bonus   float64
	total   float64
}

func NewScorer(budget float64, noteCount int) *Scorer {
	s := &Scorer{budget: budget}
	if noteCount > 0 {
		s.perNote = budget * 0.5 / float64(noteCount)
	}
	s.Reset()
	return s
}

func (s *Scorer) Reset() {
	s.bonus = maxBonus
	s.total = 0
}

// Bonus is the current meter value.
func (s *Scorer) Bonus() float64 { return s.bonus }

func (s *Scorer) Budget() float64 { return s.budget }

// Score is the total of every note scored so far.
func (s *Scorer) Score() float64 { return s.total }

// Add computes and caches the contribution of a judged note. A note that
// already carries a score is left alone.
func (s *Scorer) Add(n *game.Note) {
	if _, _, ok := n.Score(); ok {
		return
	}
	j, ok := n.Judgement()
	if !ok {
		return
	}

	t := j.Tier
	base := s.perNote * (t.Value() / game.Perfect.Value())
	bonus := clamp(s.bonus + t.BonusGain() - t.BonusPenalty())
	bonusScore := s.perNote * (t.BonusMagnitude() * math.Sqrt(bonus) / game.Perfect.Value())

	if n.SetScore(base+bonusScore, bonus) {
		s.bonus = bonus
	}
}

// Calc scores any judged note not yet scored, in chart order, and sums
// the cached contributions.
func (s *Scorer) Calc(notes []*game.Note) float64 {
	total := 0.0
	for _, n := range notes {
		s.Add(n)
		if score, _, ok := n.Score(); ok {
			total += score
		}
	}
	s.total = math.Min(total, s.budget)
	return s.total
}
