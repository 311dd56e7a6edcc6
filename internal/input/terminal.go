package input

import (
	"context"

	"github.com/eiannone/keyboard"
	"github.com/pkg/errors"
)

// ReadTerminal reads keys from the terminal. A terminal only reports
// presses, so every column press is followed by its release at once and
// holds cannot be played this way.
func ReadTerminal(ctx context.Context, keys Keymap, events chan<- Event) error {
	keyChannel, err := keyboard.GetKeys(128)
	if nil != err {
		return errors.Wrap(err, "unable to open keyboard")
	}
	defer keyboard.Close()

	for {
		var key keyboard.KeyEvent
		select {
		case <-ctx.Done():
			return nil
		case key = <-keyChannel:
		}
		if key.Err != nil {
			return errors.Wrap(key.Err, "unable to read keyboard")
		}

		for _, ev := range terminalEvents(keys, key.Key, key.Rune) {
			if !send(ctx, events, ev) {
				return nil
			}
		}
	}
}

func terminalEvents(keys Keymap, key keyboard.Key, r rune) []Event {
	switch key {
	case keyboard.KeyEsc, keyboard.KeyF2, keyboard.KeyCtrlC:
		return []Event{{Action: Quit}}
	case keyboard.KeyF1:
		return []Event{{Action: TogglePause}}
	case keyboard.KeySpace:
		r = ' '
	}
	if r == '`' || r == '~' {
		return []Event{{Action: Retry}}
	}
	if column, ok := keys.Column(r); ok {
		return []Event{
			{Action: Press, Column: column},
			{Action: Release, Column: column},
		}
	}
	return nil
}
