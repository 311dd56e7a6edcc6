package stage

import (
	"context"
	"testing"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/input"
	"git.lost.host/meutraa/fourk/internal/score"
	. "github.com/smartystreets/goconvey/convey"
)

type fakePlayer struct {
	length  time.Duration
	plays   int
	pauses  int
	aborts  int
	playing bool
}

func (p *fakePlayer) Play() error {
	p.plays++
	p.playing = true
	return nil
}

func (p *fakePlayer) Pause() {
	p.pauses++
	p.playing = false
}

func (p *fakePlayer) Abort() {
	p.aborts++
	p.playing = false
}

func (p *fakePlayer) Duration() time.Duration { return p.length }

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func oneTap(t *testing.T) *game.Chart {
	n, err := game.NewTap(0, ms(1000))
	if nil != err {
		t.Fatal(err)
	}
	return &game.Chart{Notes: []*game.Note{n}, Difficulty: game.DefaultDifficulty}
}

func TestStage(t *testing.T) {
	Convey("Given a stage with one tap at 1000ms", t, func() {
		ft := &fakeTime{t: time.Unix(0, 0)}
		player := &fakePlayer{length: ms(2000)}
		var judged []game.Tier
		s := New(oneTap(t), player,
			WithClock(ft.now),
			OnJudgement(func(_ *game.Note, j game.Judgement) { judged = append(judged, j.Tier) }),
		)
		s.Start()

		Convey("The audio waits for the lead-in", func() {
			So(s.Tick(), ShouldBeTrue)
			So(player.plays, ShouldEqual, 0)
			So(s.Time(), ShouldEqual, -DefaultLeadIn)

			ft.advance(DefaultLeadIn)
			So(s.Tick(), ShouldBeTrue)
			So(player.plays, ShouldEqual, 1)

			ft.advance(ms(10))
			s.Tick()
			So(player.plays, ShouldEqual, 1)
		})

		Convey("A press on time is Perfect and scores the whole budget", func() {
			ft.advance(DefaultLeadIn + ms(1000))
			s.Tick()
			So(s.Hit(0), ShouldBeTrue)
			So(s.Release(0), ShouldBeFalse)

			snap := s.Snapshot()
			So(snap.Combo, ShouldEqual, 1)
			So(snap.Record[game.Perfect], ShouldEqual, 1)
			So(snap.Score, ShouldAlmostEqual, score.DefaultBudget, 1e-6)
			So(snap.Accuracy, ShouldEqual, 1.0)
			So(snap.Rank, ShouldEqual, score.RankSS)
			So(snap.Stats.Count, ShouldEqual, 1)
			So(judged, ShouldResemble, []game.Tier{game.Perfect})
		})

		Convey("Without input the note is missed once", func() {
			ft.advance(DefaultLeadIn + ms(1165))
			s.Tick()
			ft.advance(ms(100))
			s.Tick()

			snap := s.Snapshot()
			So(snap.Combo, ShouldEqual, 0)
			So(snap.Record[game.Miss], ShouldEqual, 1)
			So(snap.Record.Total(), ShouldEqual, 1)
			So(snap.Score, ShouldEqual, 0.0)
			So(judged, ShouldHaveLength, 1)
		})

		Convey("When paused", func() {
			ft.advance(DefaultLeadIn + ms(500))
			s.Tick()
			s.Pause()
			ft.advance(ms(500))

			Convey("Input is ignored and time stands still", func() {
				So(s.Paused(), ShouldBeTrue)
				So(player.pauses, ShouldEqual, 1)
				So(s.Hit(0), ShouldBeFalse)
				So(s.Tick(), ShouldBeTrue)
				So(s.Time(), ShouldEqual, ms(500))
			})

			Convey("Resuming waits a lead-in and restarts the audio", func() {
				s.TogglePause()
				So(s.Snapshot().Resuming, ShouldBeTrue)
				ft.advance(DefaultLeadIn)
				s.Tick()
				So(s.Paused(), ShouldBeFalse)
				So(player.plays, ShouldEqual, 2)
				So(s.Time(), ShouldEqual, ms(500))
			})

			Convey("Toggling during the lead-in keeps it paused", func() {
				s.TogglePause()
				s.TogglePause()
				ft.advance(DefaultLeadIn)
				s.Tick()
				So(s.Paused(), ShouldBeTrue)
				So(s.Snapshot().Resuming, ShouldBeFalse)
			})
		})

		Convey("Retry starts over with a new session", func() {
			id := s.ID()
			ft.advance(DefaultLeadIn + ms(1000))
			s.Tick()
			s.Hit(0)
			s.Retry()

			snap := s.Snapshot()
			So(snap.Session, ShouldNotEqual, id)
			So(snap.Combo, ShouldEqual, 0)
			So(snap.Record.Total(), ShouldEqual, 0)
			So(snap.Score, ShouldEqual, 0.0)
			So(snap.Time, ShouldEqual, -DefaultLeadIn)
			So(player.aborts, ShouldEqual, 1)
			So(s.Chart().Notes[0].Judged(), ShouldBeFalse)
		})

		Convey("The session ends after the audio and its grace", func() {
			ft.advance(DefaultLeadIn + ms(2000) + DefaultGrace)
			So(s.Tick(), ShouldBeTrue)
			ft.advance(time.Millisecond)
			So(s.Tick(), ShouldBeFalse)
			So(s.Playing(), ShouldBeFalse)
			So(s.Hit(0), ShouldBeFalse)
		})

		Convey("Quit stops everything", func() {
			s.Quit()
			So(s.Tick(), ShouldBeFalse)
			So(player.aborts, ShouldEqual, 1)
		})
	})
}

func TestOffset(t *testing.T) {
	Convey("Given a stage with a -20ms offset", t, func() {
		ft := &fakeTime{t: time.Unix(0, 0)}
		s := New(oneTap(t), &fakePlayer{length: ms(2000)}, WithClock(ft.now), WithOffset(ms(-20)))
		s.Start()

		Convey("A press 20ms late is judged on time", func() {
			ft.advance(DefaultLeadIn + ms(1020))
			s.Tick()
			s.Hit(0)
			So(s.Snapshot().Stats.Mean, ShouldEqual, time.Duration(0))
		})
	})
}

func TestEmptyChart(t *testing.T) {
	Convey("Given a stage without a chart", t, func() {
		ft := &fakeTime{t: time.Unix(0, 0)}
		s := New(nil, &fakePlayer{}, WithClock(ft.now), WithLeadIn(0), WithGrace(ms(100)))
		s.Start()

		Convey("It runs to completion", func() {
			So(s.Tick(), ShouldBeTrue)
			So(s.Hit(2), ShouldBeFalse)
			ft.advance(ms(101))
			So(s.Tick(), ShouldBeFalse)

			snap := s.Snapshot()
			So(snap.Score, ShouldEqual, 0.0)
			So(snap.Accuracy, ShouldEqual, 1.0)
			So(snap.Progress, ShouldEqual, 1.0)
		})
	})
}

func TestRun(t *testing.T) {
	Convey("Given a running stage", t, func() {
		player := &fakePlayer{length: ms(2000)}
		s := New(oneTap(t), player, WithLeadIn(0))
		events := make(chan input.Event, 4)

		Convey("A quit event ends Run", func() {
			events <- input.Event{Action: input.Press, Column: 0}
			events <- input.Event{Action: input.Quit}
			err := s.Run(context.Background(), events, time.Millisecond, nil)
			So(err, ShouldBeNil)
			So(s.Playing(), ShouldBeFalse)
			So(s.Snapshot().Down[0], ShouldBeTrue)
		})

		Convey("A cancelled context ends Run", func() {
			ctx, cancel := context.WithCancel(context.Background())
			frames := 0
			go func() {
				time.Sleep(20 * time.Millisecond)
				cancel()
			}()
			err := s.Run(ctx, events, time.Millisecond, func(Snapshot) { frames++ })
			So(err, ShouldEqual, context.Canceled)
			So(frames, ShouldBeGreaterThan, 0)
		})
	})
}
