package game

import (
	"testing"
	"time"
)

func chartOf(t *testing.T) *Chart {
	t.Helper()
	a, _ := NewTap(2, 2*time.Second)
	b, _ := NewTap(0, time.Second)
	c, _ := NewHold(1, time.Second, 3*time.Second)
	d, _ := NewTap(3, 5*time.Second)
	chart := &Chart{Notes: []*Note{a, b, c, d}, Difficulty: DefaultDifficulty}
	chart.Sort()
	return chart
}

func TestSort(t *testing.T) {
	chart := chartOf(t)
	order := []uint8{0, 1, 2, 3}
	for i, n := range chart.Notes {
		if n.Column != order[i] {
			t.Errorf("note %d: expected column %d, got %d", i, order[i], n.Column)
		}
	}
	if chart.TapCount() != 3 || chart.HoldCount() != 1 {
		t.Errorf("expected 3 taps and 1 hold, got %d and %d", chart.TapCount(), chart.HoldCount())
	}
	if chart.End() != 5*time.Second {
		t.Errorf("expected end 5s, got %v", chart.End())
	}
}

func TestSpan(t *testing.T) {
	chart := chartOf(t)
	notes := chart.Span(2500*time.Millisecond, 4*time.Second)
	if len(notes) != 1 || notes[0].Kind != Hold {
		t.Errorf("expected only the hold in view, got %d notes", len(notes))
	}
	if n := chart.Span(0, 10*time.Second); len(n) != 4 {
		t.Errorf("expected all notes, got %d", len(n))
	}
}

func TestSectionLines(t *testing.T) {
	chart := &Chart{TimingPoints: []TimingPoint{
		{Offset: 0, BeatLength: 500 * time.Millisecond},
		{Offset: 3 * time.Second, BeatLength: 250 * time.Millisecond},
	}}
	lines := chart.SectionLines(5 * time.Second)
	expected := []time.Duration{0, 2 * time.Second, 3 * time.Second, 4 * time.Second}
	if len(lines) != len(expected) {
		t.Fatalf("expected %v, got %v", expected, lines)
	}
	for i := range lines {
		if lines[i] != expected[i] {
			t.Errorf("expected %v, got %v", expected, lines)
		}
	}
}
