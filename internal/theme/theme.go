package theme

import "git.lost.host/meutraa/fourk/internal/game"

type Theme interface {
	RenderNote(note *game.Note) string
	RenderHoldBody(note *game.Note) string
	RenderHitField(column int, pressed bool) string
	RenderTier(tier game.Tier) string
}

var _ Theme = (*DefaultTheme)(nil)
