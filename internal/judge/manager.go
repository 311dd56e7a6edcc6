// Package judge grades player input against the notes of a chart.
//
// A Manager is not safe for concurrent use. Update, Hit and Release are
// expected to be called from the single goroutine driving the stage.
package judge

import (
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"github.com/charmbracelet/log"
)

// Deviation is a signed timing error, negative when early.
type Deviation struct {
	At     time.Duration
	Offset time.Duration
	Tier   game.Tier
}

type Observer func(note *game.Note, j game.Judgement)

type Manager struct {
	notes      []*game.Note
	difficulty game.Difficulty
	logger     *log.Logger
	observers  []Observer

	combo      int
	maxCombo   int
	record     game.Record
	deviations []Deviation
}

type Option func(*Manager)

func WithLogger(logger *log.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// OnJudgement registers a callback run once for every finalized note.
func OnJudgement(fn Observer) Option {
	return func(m *Manager) {
		m.observers = append(m.observers, fn)
	}
}

// NewManager expects notes in time order.
func NewManager(notes []*game.Note, d game.Difficulty, opts ...Option) *Manager {
	m := &Manager{
		notes:      notes,
		difficulty: d,
		logger:     log.Default(),
		record:     game.NewRecord(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if !d.Valid() {
		m.logger.Warn("difficulty gives overlapping windows, using default",
			"difficulty", float64(d), "default", float64(game.DefaultDifficulty))
		m.difficulty = game.DefaultDifficulty
	}
	return m
}

func (m *Manager) Notes() []*game.Note         { return m.notes }
func (m *Manager) Difficulty() game.Difficulty { return m.difficulty }
func (m *Manager) Combo() int                  { return m.combo }
func (m *Manager) MaxCombo() int               { return m.maxCombo }
func (m *Manager) Deviations() []Deviation     { return m.deviations }

func (m *Manager) Record() game.Record {
	r := make(game.Record, len(m.record))
	for t, c := range m.record {
		r[t] = c
	}
	return r
}

// Reset clears combo, record and deviations. Notes are reset by their chart.
func (m *Manager) Reset() {
	m.combo = 0
	m.maxCombo = 0
	m.record = game.NewRecord()
	m.deviations = nil
}

func (m *Manager) window(t game.Tier) time.Duration {
	return m.difficulty.Window(t)
}

func (m *Manager) breakCombo() {
	m.combo = 0
}

func (m *Manager) deviate(at, target time.Duration, tier game.Tier) {
	m.deviations = append(m.deviations, Deviation{At: at, Offset: at - target, Tier: tier})
}

// Update applies the timeouts for every note still unjudged at now.
func (m *Manager) Update(now time.Duration) {
	ok := m.window(game.Ok)
	meh := m.window(game.Meh)

	for _, n := range m.notes {
		if n.Judged() {
			continue
		}

		switch n.Kind {
		case game.Tap:
			if now-n.Time > meh {
				m.finalize(n, game.NewJudgement(game.Miss, now))
			}
		case game.Hold:
			switch {
			case n.Held() && now-n.TimeEnd > meh:
				head, _ := n.HitTime()
				release := n.TimeEnd + meh
				n.Release(release)
				// held past the tail window breaks the combo whatever the grade
				n.Break()
				m.judgeHold(n, head, release)
			case !n.Held() && now-n.TimeEnd > meh:
				n.Break()
				m.finalize(n, game.NewJudgement(game.Miss, now))
			case !n.Held() && now-n.Time > ok:
				// never struck, the hold goes gray but waits for its tail
				if n.Break() {
					m.breakCombo()
				}
			}
		}
	}
}

// Hit applies a press in column to the first note it can grade.
// It reports whether a note took the press.
func (m *Manager) Hit(now time.Duration, column int) bool {
	for _, n := range m.notes {
		if n.Judged() || n.Held() || int(n.Column) != column {
			continue
		}
		tier, ok := ByHit(n.Time, now, m.difficulty)
		if !ok {
			continue
		}

		m.deviate(now, n.Time, tier)
		n.Hit(now)

		switch n.Kind {
		case game.Tap:
			m.finalize(n, game.NewJudgement(tier, now))
		case game.Hold:
			if abs(n.Time-now) > m.window(game.Ok) {
				n.Break()
				m.breakCombo()
			}
		}
		m.logger.Debug("hit", "column", column, "time", now, "target", n.Time, "tier", tier)
		return true
	}
	return false
}

// Release applies a key release in column to the first held note.
// It reports whether a note took the release.
func (m *Manager) Release(now time.Duration, column int) bool {
	meh := m.window(game.Meh)

	for _, n := range m.notes {
		if n.Judged() || n.Kind != game.Hold || !n.Held() || int(n.Column) != column {
			continue
		}
		head, ok := n.HitTime()
		if !ok {
			m.logger.Warn("held note without a head press", "column", column, "time", now)
			continue
		}

		if !n.Broken() {
			tier, ok := ByHit(n.TimeEnd, now, m.difficulty)
			if !ok {
				tier = game.Miss
			}
			m.deviate(now, n.TimeEnd, tier)
		}

		if n.TimeEnd-now > meh {
			// let go before the tail window, no judgement yet
			n.Drop()
			m.breakCombo()
			m.logger.Debug("early release", "column", column, "time", now, "tail", n.TimeEnd)
			return true
		}

		release := now
		if release-n.TimeEnd > meh {
			release = n.TimeEnd + meh
		}
		n.Release(release)
		m.judgeHold(n, head, release)
		return true
	}
	return false
}

func (m *Manager) judgeHold(n *game.Note, head, release time.Duration) {
	tier, ok := ByRelease(n.Time, head, n.TimeEnd, release, m.difficulty)
	if !ok {
		m.logger.Warn("release outside the tail window, grading as meh",
			"column", n.Column, "head", head, "release", release, "tail", n.TimeEnd)
		tier = game.Meh
	}
	m.finalize(n, game.NewHoldJudgement(tier, head, release))
}

func (m *Manager) finalize(n *game.Note, j game.Judgement) {
	if !n.Finalize(j) {
		return
	}
	m.record[j.Tier]++

	if j.Tier.BreaksCombo() {
		if n.Kind == game.Hold {
			n.Break()
		}
		m.breakCombo()
	} else if n.Broken() {
		m.breakCombo()
	} else {
		m.combo++
		if m.combo > m.maxCombo {
			m.maxCombo = m.combo
		}
	}

	for _, fn := range m.observers {
		fn(n, j)
	}
}
