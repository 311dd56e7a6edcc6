package theme

import (
	"git.lost.host/meutraa/fourk/internal/game"
	"github.com/charmbracelet/lipgloss"
)

type DefaultTheme struct{}

const (
	noteSym  = "⬤"
	holdSym  = "┃"
	fieldSym = "─"
	pressSym = "▀"
)

var (
	columnColors = [game.Columns]lipgloss.Color{"#00dbff", "#ffffff", "#ffffff", "#00dbff"}
	grayed       = lipgloss.NewStyle().Foreground(lipgloss.Color("#6a6a6a"))
	field        = lipgloss.NewStyle().Foreground(lipgloss.Color("#808080"))
	pressed      = lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff")).Bold(true)

	noteColors = map[int]lipgloss.Color{
		1:  "#ec1e00", // 1/4 red
		2:  "#0076ec", // 1/8 blue
		3:  "#6a00ec", // 1/12 purple
		4:  "#ecc300", // 1/16 yellow
		6:  "#ec006a", // 1/24 pink
		8:  "#ec8000", // 1/32 orange
		12: "#adecec", // 1/48 light blue
		16: "#00ec80", // 1/64 green
	}

	tierStyles = map[game.Tier]lipgloss.Style{
		game.Perfect: lipgloss.NewStyle().Foreground(lipgloss.Color("#f2e9ff")).Bold(true),
		game.Great:   lipgloss.NewStyle().Foreground(lipgloss.Color("#2ebbe6")),
		game.Good:    lipgloss.NewStyle().Foreground(lipgloss.Color("#53e80a")),
		game.Ok:      lipgloss.NewStyle().Foreground(lipgloss.Color("#dead50")),
		game.Meh:     lipgloss.NewStyle().Foreground(lipgloss.Color("#a0a0a0")),
		game.Miss:    lipgloss.NewStyle().Foreground(lipgloss.Color("#ff3030")).Bold(true),
	}
)

func (t *DefaultTheme) noteStyle(note *game.Note) lipgloss.Style {
	if note.Broken() {
		return grayed
	}
	if col, ok := noteColors[note.Denom]; ok {
		return lipgloss.NewStyle().Foreground(col)
	}
	return lipgloss.NewStyle().Foreground(columnColors[note.Column%game.Columns])
}

func (t *DefaultTheme) RenderNote(note *game.Note) string {
	return t.noteStyle(note).Render(noteSym)
}

func (t *DefaultTheme) RenderHoldBody(note *game.Note) string {
	return t.noteStyle(note).Render(holdSym)
}

func (t *DefaultTheme) RenderHitField(column int, down bool) string {
	if down {
		return pressed.Render(pressSym)
	}
	return field.Render(fieldSym)
}

func (t *DefaultTheme) RenderTier(tier game.Tier) string {
	style, ok := tierStyles[tier]
	if !ok {
		return tier.String()
	}
	return style.Render(tier.String())
}
