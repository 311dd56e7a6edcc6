package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/stage"
	"git.lost.host/meutraa/fourk/internal/theme"
	"golang.org/x/term"
)

type DefaultRenderer struct {
	Theme         theme.Theme
	Out           io.Writer
	RowDuration   time.Duration // Game time covered by one terminal row
	BarRow        int           // Rows between the hit bar and the bottom
	ColumnSpacing int

	buffer       strings.Builder
	restoreState *term.State
	rows, cols   int
	decorations  []*decoration
}

type decoration struct {
	Column  int
	Content string
	Frames  int // remaining frames until removed
}

func (r *DefaultRenderer) out() io.Writer {
	if r.Out == nil {
		return os.Stdout
	}
	return r.Out
}

func (r *DefaultRenderer) Init() error {
	fd := int(os.Stdout.Fd())
	cols, rows, err := term.GetSize(fd)
	if nil != err {
		return fmt.Errorf("unable to get terminal size: %w", err)
	}
	r.rows, r.cols = rows, cols

	state, err := term.MakeRaw(fd)
	if nil != err {
		return err
	}
	r.restoreState = state

	fmt.Fprintf(r.out(), "%s%s%s",
		"\033[?1049h", // Enable alternate buffer
		"\033[?25l",   // Make the cursor invisible
		"\033[J",      // Clear the screen
	)
	return nil
}

func (r *DefaultRenderer) Deinit() error {
	fmt.Fprintf(r.out(), "%s%s",
		"\033[?1049l", // Disable alternate buffer
		"\033[?25h",   // Make the cursor visible
	)
	if r.restoreState == nil {
		return nil
	}
	return term.Restore(int(os.Stdout.Fd()), r.restoreState)
}

// SetSize overrides the terminal size read by Init.
func (r *DefaultRenderer) SetSize(rows, cols int) {
	r.rows, r.cols = rows, cols
}

func (r *DefaultRenderer) Rows() int {
	return r.rows
}

func (r *DefaultRenderer) AddDecoration(column int, content string, frames int) {
	r.decorations = append(r.decorations, &decoration{
		Column:  column,
		Content: content,
		Frames:  frames,
	})
}

func (r *DefaultRenderer) tickDecorations() {
	nd := make([]*decoration, 0, len(r.decorations))
	for _, d := range r.decorations {
		if d.Frames == 0 {
			continue
		}
		nd = append(nd, d)
		d.Frames--
	}
	r.decorations = nd
}

func (r *DefaultRenderer) column(i int) int {
	mid := r.cols >> 1
	return mid + r.ColumnSpacing*(2*i-3)
}

// row returns the terminal row of a moment, the hit bar being now.
func (r *DefaultRenderer) row(at, now time.Duration) int {
	hitRow := r.rows - r.BarRow
	if r.RowDuration <= 0 {
		return hitRow
	}
	return hitRow - int(math.Round(float64(at-now)/float64(r.RowDuration)))
}

func (r *DefaultRenderer) inField(row int) bool {
	return row > 0 && row <= r.rows
}

func (r *DefaultRenderer) Draw(f Frame) {
	now := f.Snapshot.Time
	r.buffer.WriteString("\033[2J")

	for _, at := range f.Sections {
		if row := r.row(at, now); r.inField(row) {
			r.Fill(row, r.column(0)-1, strings.Repeat("·", r.ColumnSpacing*6+3))
		}
	}

	for _, note := range f.Notes {
		if note.Judged() {
			continue
		}
		col := r.column(int(note.Column))
		head := r.row(note.Time, now)
		if note.Kind == game.Hold {
			tail := r.row(note.TimeEnd, now)
			if note.Held() {
				head = r.rows - r.BarRow
			}
			for row := tail; row < head; row++ {
				if r.inField(row) {
					r.Fill(row, col, r.Theme.RenderHoldBody(note))
				}
			}
		}
		if r.inField(head) {
			r.Fill(head, col, r.Theme.RenderNote(note))
		}
	}

	for i := 0; i < game.Columns; i++ {
		r.Fill(r.rows-r.BarRow, r.column(i), r.Theme.RenderHitField(i, f.Snapshot.Down[i]))
	}

	for _, d := range r.decorations {
		r.Fill(r.rows-r.BarRow+2, r.column(d.Column)-2, d.Content)
	}
	r.tickDecorations()

	r.stats(f.Snapshot)
	r.flush()
}

func (r *DefaultRenderer) stats(s stage.Snapshot) {
	side := r.column(0) - 36
	if side < 2 {
		side = 2
	}
	lines := []string{
		fmt.Sprintf("      Score:  %9.0f", s.Score),
		fmt.Sprintf("      Combo:  %9v", s.Combo),
		fmt.Sprintf("   Accuracy:  %8.2f%%", s.Accuracy*100),
		fmt.Sprintf("       Rank:  %9v", s.Rank),
		fmt.Sprintf("       Mean:  %6.2f ms", float64(s.Stats.Mean)/float64(time.Millisecond)),
		fmt.Sprintf("      Stdev:  %6.2f ms", float64(s.Stats.Stdev)/float64(time.Millisecond)),
		fmt.Sprintf("   Progress:  %8.1f%%", s.Progress*100),
	}
	for i, l := range lines {
		r.Fill(4+i, side, l)
	}
	for i, t := range game.Tiers {
		r.Fill(14+i, side, fmt.Sprintf("%11s:  %9v", r.Theme.RenderTier(t), s.Record[t]))
	}
	if s.Paused {
		msg := "PAUSED"
		if s.Resuming {
			msg = "RESUMING"
		}
		r.Fill(r.rows>>1, r.column(0), msg)
	}
}

// Summary describes a finished session.
func (r *DefaultRenderer) Summary(s stage.Snapshot, m game.Metadata) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s - %s [%s]\n", m.Artist, m.Title, m.Version)
	fmt.Fprintf(&b, "Score %.0f  Accuracy %.2f%%  Rank %s  Max combo %d\n",
		s.Score, s.Accuracy*100, s.Rank, s.MaxCombo)
	for _, t := range game.Tiers {
		fmt.Fprintf(&b, "%8s %6d\n", t, s.Record[t])
	}
	fmt.Fprintf(&b, "Mean %v  Stdev %v\n", s.Stats.Mean, s.Stats.Stdev)
	return b.String()
}

func (r *DefaultRenderer) Fill(row, column int, message string) {
	r.buffer.WriteString("\033[")
	r.buffer.WriteString(strconv.Itoa(row))
	r.buffer.WriteString(";")
	r.buffer.WriteString(strconv.Itoa(column))
	r.buffer.WriteString("H")
	r.buffer.WriteString(message)
}

func (r *DefaultRenderer) flush() {
	r.out().Write([]byte(r.buffer.String()))
	r.buffer.Reset()
}
