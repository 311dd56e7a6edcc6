package stage

import (
	"context"
	"time"

	"git.lost.host/meutraa/fourk/internal/input"
)

// Apply handles one input event.
func (s *Stage) Apply(ev input.Event) {
	switch ev.Action {
	case input.Press:
		s.Hit(ev.Column)
	case input.Release:
		s.Release(ev.Column)
	case input.TogglePause:
		s.TogglePause()
	case input.Retry:
		s.Retry()
	case input.Quit:
		s.Quit()
	}
}

// Run starts the session and drives it until it ends, ctx is done or a
// quit arrives. Input is handled as it arrives, between frames, on the
// same goroutine as the frames. draw is called after every frame.
func (s *Stage) Run(ctx context.Context, events <-chan input.Event, framePeriod time.Duration, draw func(Snapshot)) error {
	ticker := time.NewTicker(framePeriod)
	defer ticker.Stop()

	s.Start()
	for {
		select {
		case <-ctx.Done():
			s.player.Abort()
			return ctx.Err()
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			s.Apply(ev)
			if s.quit {
				return nil
			}
		case <-ticker.C:
			start := time.Now()
			running := s.Tick()
			if draw != nil {
				draw(s.Snapshot())
			}
			if s.onFrame != nil {
				s.onFrame(time.Since(start))
			}
			if !running {
				return nil
			}
		}
	}
}
