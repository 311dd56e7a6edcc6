// Package stage runs one play session of a chart: it owns the clock, the
// judgement and the score, and is driven one tick per frame.
package stage

import (
	"time"

	"git.lost.host/meutraa/fourk/internal/clock"
	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/judge"
	"git.lost.host/meutraa/fourk/internal/score"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const (
	DefaultLeadIn = 1200 * time.Millisecond
	// DefaultGrace is how long the session runs on after the audio ends.
	DefaultGrace = 3 * time.Second
)

// Player is the audio playback the stage starts, pauses and stops.
type Player interface {
	Play() error
	Pause()
	Abort()
	Duration() time.Duration
}

type options struct {
	now       func() time.Time
	leadIn    time.Duration
	offset    time.Duration
	grace     time.Duration
	budget    float64
	logger    *log.Logger
	observers []judge.Observer
	onFrame   func(time.Duration)
}

type Option func(*options)

// WithClock replaces the wall clock, for tests.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func WithLeadIn(d time.Duration) Option {
	return func(o *options) { o.leadIn = d }
}

// WithOffset shifts every input by d before it is judged.
func WithOffset(d time.Duration) Option {
	return func(o *options) { o.offset = d }
}

func WithGrace(d time.Duration) Option {
	return func(o *options) { o.grace = d }
}

func WithBudget(budget float64) Option {
	return func(o *options) { o.budget = budget }
}

func WithLogger(logger *log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func OnJudgement(fn judge.Observer) Option {
	return func(o *options) { o.observers = append(o.observers, fn) }
}

// OnFrame is called by Run with the time each frame took.
func OnFrame(fn func(time.Duration)) Option {
	return func(o *options) { o.onFrame = fn }
}

type Stage struct {
	id     uuid.UUID
	chart  *game.Chart
	player Player
	clock  *clock.Clock
	judge  *judge.Manager
	scorer *score.Scorer
	logger *log.Logger

	offset  time.Duration
	grace   time.Duration
	onFrame func(time.Duration)

	playing      bool
	quit         bool
	audioStarted bool
	down         [game.Columns]bool
}

func New(chart *game.Chart, player Player, opts ...Option) *Stage {
	o := options{
		now:    time.Now,
		leadIn: DefaultLeadIn,
		grace:  DefaultGrace,
		budget: score.DefaultBudget,
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if chart == nil {
		chart = &game.Chart{Difficulty: game.DefaultDifficulty}
	}

	s := &Stage{
		chart:   chart,
		player:  player,
		clock:   clock.New(o.now, o.leadIn),
		scorer:  score.NewScorer(o.budget, len(chart.Notes)),
		logger:  o.logger,
		offset:  o.offset,
		grace:   o.grace,
		onFrame: o.onFrame,
	}

	jopts := []judge.Option{
		judge.WithLogger(o.logger),
		judge.OnJudgement(func(n *game.Note, _ game.Judgement) { s.scorer.Add(n) }),
	}
	for _, fn := range o.observers {
		jopts = append(jopts, judge.OnJudgement(fn))
	}
	s.judge = judge.NewManager(chart.Notes, chart.Difficulty, jopts...)
	return s
}

func (s *Stage) ID() uuid.UUID         { return s.id }
func (s *Stage) Chart() *game.Chart    { return s.chart }
func (s *Stage) Judge() *judge.Manager { return s.judge }
func (s *Stage) Playing() bool         { return s.playing }
func (s *Stage) Paused() bool          { return s.clock.Paused() }

// Time is the current game time.
func (s *Stage) Time() time.Duration {
	return s.clock.Elapsed()
}

func (s *Stage) Duration() time.Duration {
	return s.player.Duration()
}

// Quit stops the audio and ends the session for good.
func (s *Stage) Quit() {
	s.quit = true
	s.playing = false
	s.player.Abort()
	s.logger.Info("session quit", "session", s.id)
}

// Start begins a new attempt. Audio starts once game time reaches zero.
func (s *Stage) Start() {
	s.id = uuid.New()
	s.clock.Start()
	s.playing = true
	s.quit = false
	s.audioStarted = false
	s.down = [game.Columns]bool{}
	s.logger.Info("session started",
		"session", s.id, "notes", len(s.chart.Notes), "difficulty", float64(s.judge.Difficulty()))
}

// Retry throws away all progress and starts over.
func (s *Stage) Retry() {
	s.player.Abort()
	s.chart.Reset()
	s.judge.Reset()
	s.scorer.Reset()
	s.logger.Info("session retried", "session", s.id)
	s.Start()
}

func (s *Stage) Pause() {
	if !s.playing {
		return
	}
	if s.clock.Pause() {
		s.player.Pause()
		s.logger.Info("paused", "session", s.id, "time", s.clock.Elapsed())
	} else {
		s.logger.Debug("pending resume cancelled", "session", s.id)
	}
}

func (s *Stage) Resume() {
	if !s.playing {
		return
	}
	s.clock.Resume()
}

// TogglePause resumes a paused session, or pauses a running or resuming one.
func (s *Stage) TogglePause() {
	if s.clock.Paused() && !s.clock.Resuming() {
		s.Resume()
		return
	}
	s.Pause()
}

// Tick advances the session by one frame. It reports whether the
// session is still running.
func (s *Stage) Tick() bool {
	if s.quit || !s.playing {
		return false
	}

	if s.clock.Tick() {
		s.logger.Info("resumed", "session", s.id, "time", s.clock.Elapsed())
		if s.audioStarted {
			s.play()
		}
	}
	if s.clock.Paused() {
		return true
	}

	t := s.clock.Elapsed()
	if !s.audioStarted && t >= 0 {
		s.audioStarted = true
		s.play()
	}

	s.judge.Update(t)
	s.scorer.Calc(s.chart.Notes)

	if t > s.player.Duration()+s.grace {
		s.playing = false
		s.logger.Info("session ended", "session", s.id,
			"score", s.scorer.Score(), "accuracy", score.Accuracy(s.chart.Notes))
	}
	return s.playing
}

func (s *Stage) play() {
	if err := s.player.Play(); nil != err {
		s.logger.Warn("unable to play audio", "session", s.id, "err", err)
	}
}

func (s *Stage) accepting() bool {
	return s.playing && !s.quit && !s.clock.Paused()
}

func (s *Stage) press(column int, down bool) {
	if column >= 0 && column < game.Columns {
		s.down[column] = down
	}
}

// Hit presses column now.
func (s *Stage) Hit(column int) bool {
	s.press(column, true)
	if !s.accepting() {
		return false
	}
	hit := s.judge.Hit(s.clock.Elapsed()+s.offset, column)
	s.scorer.Calc(s.chart.Notes)
	return hit
}

// Release lets go of column now.
func (s *Stage) Release(column int) bool {
	s.press(column, false)
	if !s.accepting() {
		return false
	}
	released := s.judge.Release(s.clock.Elapsed()+s.offset, column)
	s.scorer.Calc(s.chart.Notes)
	return released
}
