// Package input turns key presses into column and command events.
package input

import (
	"context"
	"unicode"

	"git.lost.host/meutraa/fourk/internal/game"
	"github.com/pkg/errors"
)

type Action uint8

const (
	Press Action = iota
	Release
	TogglePause
	Retry
	Quit
)

func (a Action) String() string {
	switch a {
	case Press:
		return "press"
	case Release:
		return "release"
	case TogglePause:
		return "pause"
	case Retry:
		return "retry"
	case Quit:
		return "quit"
	}
	return "unknown"
}

type Event struct {
	Action Action
	Column int // Only set for Press and Release
}

var ErrKeymap = errors.New("keymap needs one distinct key per column")

// Keymap holds the key of each column, left to right.
type Keymap [game.Columns]rune

func ParseKeymap(keys string) (Keymap, error) {
	var k Keymap
	rs := []rune(keys)
	if len(rs) != game.Columns {
		return k, ErrKeymap
	}
	seen := map[rune]bool{}
	for i, r := range rs {
		r = unicode.ToLower(r)
		if seen[r] {
			return k, ErrKeymap
		}
		seen[r] = true
		k[i] = r
	}
	return k, nil
}

// Column returns the column bound to r.
func (k Keymap) Column(r rune) (int, bool) {
	r = unicode.ToLower(r)
	for i, c := range k {
		if c == r {
			return i, true
		}
	}
	return -1, false
}

func send(ctx context.Context, events chan<- Event, ev Event) bool {
	select {
	case events <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
