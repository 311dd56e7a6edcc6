package stage

import (
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/score"
	"github.com/google/uuid"
)

// Snapshot is what a renderer needs to draw one frame.
type Snapshot struct {
	Session  uuid.UUID
	Time     time.Duration
	Progress float64

	Combo    int
	MaxCombo int
	Score    float64
	Bonus    float64
	Accuracy float64
	Rank     score.Rank
	Record   game.Record
	Stats    score.Stats

	Down     [game.Columns]bool
	Playing  bool
	Paused   bool
	Resuming bool
}

func (s *Stage) Snapshot() Snapshot {
	t := s.clock.Elapsed()
	acc := score.Accuracy(s.chart.Notes)

	progress := 1.0
	if d := s.player.Duration(); d > 0 && t < d {
		progress = float64(t) / float64(d)
		if progress < 0 {
			progress = 0
		}
	}

	return Snapshot{
		Session:  s.id,
		Time:     t,
		Progress: progress,
		Combo:    s.judge.Combo(),
		MaxCombo: s.judge.MaxCombo(),
		Score:    s.scorer.Score(),
		Bonus:    s.scorer.Bonus(),
		Accuracy: acc,
		Rank:     score.RankOf(acc),
		Record:   s.judge.Record(),
		Stats:    score.Deviations(s.judge.Deviations()),
		Down:     s.down,
		Playing:  s.playing,
		Paused:   s.clock.Paused(),
		Resuming: s.clock.Resuming(),
	}
}
