package game

import (
	"sort"
	"time"
)

// TimingPoint starts a section of constant tempo.
type TimingPoint struct {
	Offset     time.Duration
	BeatLength time.Duration
}

type Metadata struct {
	Title     string
	Artist    string
	Creator   string
	Version   string
	AudioFile string
}

// Chart is a playable map: notes in time order plus the values the
// judgement needs.
type Chart struct {
	Notes        []*Note
	TimingPoints []TimingPoint
	Difficulty   Difficulty
	DrainRate    float64
	Metadata     Metadata
}

// Sort orders the notes by time, then by column.
func (c *Chart) Sort() {
	sort.SliceStable(c.Notes, func(i, j int) bool {
		if c.Notes[i].Time == c.Notes[j].Time {
			return c.Notes[i].Column < c.Notes[j].Column
		}
		return c.Notes[i].Time < c.Notes[j].Time
	})
}

func (c *Chart) Reset() {
	for _, n := range c.Notes {
		n.Reset()
	}
}

func (c *Chart) TapCount() int  { return c.count(Tap) }
func (c *Chart) HoldCount() int { return c.count(Hold) }

func (c *Chart) count(k Kind) int {
	count := 0
	for _, n := range c.Notes {
		if n.Kind == k {
			count++
		}
	}
	return count
}

// Span returns the notes that are on screen between from and to,
// holds included while any part of them is.
func (c *Chart) Span(from, to time.Duration) []*Note {
	end := sort.Search(len(c.Notes), func(i int) bool {
		return c.Notes[i].Time > to
	})
	notes := []*Note{}
	for _, n := range c.Notes[:end] {
		if n.TimeEnd >= from {
			notes = append(notes, n)
		}
	}
	return notes
}

// SectionLines returns the start of every four-beat section, from each
// timing point to the next one, the last running until duration.
func (c *Chart) SectionLines(duration time.Duration) []time.Duration {
	lines := []time.Duration{}
	for i, tp := range c.TimingPoints {
		length := tp.BeatLength * 4
		if length <= 0 {
			continue
		}
		end := duration
		if i+1 < len(c.TimingPoints) {
			end = c.TimingPoints[i+1].Offset
		}
		for at := tp.Offset; at < end; at += length {
			lines = append(lines, at)
		}
	}
	return lines
}

// End is the time of the last note end.
func (c *Chart) End() time.Duration {
	var end time.Duration
	for _, n := range c.Notes {
		if n.TimeEnd > end {
			end = n.TimeEnd
		}
	}
	return end
}
