package input

import (
	"context"
	"encoding/binary"
	"os"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// https://github.com/torvalds/linux/blob/master/include/uapi/linux/input-event-codes.h
const (
	evKey = 0x01

	keyEsc   = 1
	keyGrave = 41
	keyF1    = 59
	keyF2    = 60
)

var keyCodes = map[rune]uint16{
	'1': 2, '2': 3, '3': 4, '4': 5, '5': 6, '6': 7, '7': 8, '8': 9, '9': 10, '0': 11,
	'q': 16, 'w': 17, 'e': 18, 'r': 19, 't': 20, 'y': 21, 'u': 22, 'i': 23, 'o': 24, 'p': 25,
	'a': 30, 's': 31, 'd': 32, 'f': 33, 'g': 34, 'h': 35, 'j': 36, 'k': 37, 'l': 38, ';': 39,
	'z': 44, 'x': 45, 'c': 46, 'v': 47, 'b': 48, 'n': 49, 'm': 50, ',': 51, '.': 52, '/': 53,
	' ': 57,
}

type keyEvent struct {
	Time  syscall.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

// translate maps a raw key event. Auto repeats are dropped.
func (k Keymap) translate(ev keyEvent) (Event, bool) {
	if ev.Type != evKey || ev.Value > 1 {
		return Event{}, false
	}
	pressed := ev.Value == 1

	for i, r := range k {
		if code, ok := keyCodes[r]; ok && code == ev.Code {
			if pressed {
				return Event{Action: Press, Column: i}, true
			}
			return Event{Action: Release, Column: i}, true
		}
	}

	if !pressed {
		return Event{}, false
	}
	switch ev.Code {
	case keyEsc, keyF2:
		return Event{Action: Quit}, true
	case keyF1:
		return Event{Action: TogglePause}, true
	case keyGrave:
		return Event{Action: Retry}, true
	}
	return Event{}, false
}

// ReadDevice reads press and release events from an evdev keyboard such
// as /dev/input/event3 until ctx is done.
func ReadDevice(ctx context.Context, device string, keys Keymap, events chan<- Event, logger *log.Logger) error {
	if logger == nil {
		logger = log.Default()
	}
	for _, r := range keys {
		if _, ok := keyCodes[r]; !ok {
			return errors.Errorf("no key code for %q", r)
		}
	}

	file, err := os.Open(device)
	if err != nil {
		return errors.Wrapf(err, "unable to open %s", device)
	}
	go func() {
		<-ctx.Done()
		file.Close()
	}()

	var ev keyEvent
	for {
		if err := binary.Read(file, binary.LittleEndian, &ev); nil != err {
			if ctx.Err() != nil {
				return nil
			}
			return errors.Wrap(err, "unable to read keyboard input")
		}
		e, ok := keys.translate(ev)
		if !ok {
			continue
		}
		logger.Debug("key", "action", e.Action, "column", e.Column)
		if !send(ctx, events, e) {
			return nil
		}
	}
}
