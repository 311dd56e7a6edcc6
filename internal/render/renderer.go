package render

import (
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/stage"
)

// Frame is everything drawn in one frame.
type Frame struct {
	Snapshot stage.Snapshot
	Notes    []*game.Note
	Sections []time.Duration
}

type Renderer interface {
	Init() error
	Deinit() error
	Rows() int
	AddDecoration(column int, content string, frames int)
	Draw(f Frame)
	Summary(s stage.Snapshot, m game.Metadata) string
}

var _ Renderer = (*DefaultRenderer)(nil)
