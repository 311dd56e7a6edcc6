// Package audio plays the song of a chart.
package audio

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/faiface/beep"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/vorbis"
	"github.com/faiface/beep/wav"
	"github.com/pkg/errors"
)

var ErrFormat = errors.New("unsupported audio format")

// Player streams one file through the speaker. Play, Pause and Abort
// may be called in any order.
type Player struct {
	streamer beep.StreamSeekCloser
	ctrl     *beep.Ctrl
	format   beep.Format
	duration time.Duration
	started  bool
	logger   *log.Logger
}

func decode(file string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, beep.Format{}, errors.Wrap(err, "unable to open audio")
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".mp3":
		return mp3.Decode(f)
	case ".ogg":
		return vorbis.Decode(f)
	case ".wav":
		return wav.Decode(f)
	}
	f.Close()
	return nil, beep.Format{}, errors.Wrapf(ErrFormat, "%s", filepath.Ext(file))
}

// Open decodes file and initialises the speaker for its sample rate.
func Open(file string, logger *log.Logger) (*Player, error) {
	if logger == nil {
		logger = log.Default()
	}
	streamer, format, err := decode(file)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode %s", file)
	}

	bufSize := format.SampleRate.N(time.Second / 60)
	if err := speaker.Init(format.SampleRate, bufSize); err != nil {
		streamer.Close()
		return nil, errors.Wrap(err, "unable to initialise speaker")
	}
	logger.Info("audio opened", "file", file, "rate", format.SampleRate, "buffer", bufSize)

	return &Player{
		streamer: streamer,
		ctrl:     &beep.Ctrl{Streamer: streamer, Paused: true},
		format:   format,
		duration: format.SampleRate.D(streamer.Len()),
		logger:   logger,
	}, nil
}

func (p *Player) Duration() time.Duration {
	return p.duration
}

func (p *Player) Play() error {
	speaker.Lock()
	p.ctrl.Paused = false
	speaker.Unlock()
	if !p.started {
		p.started = true
		speaker.Play(p.ctrl)
	}
	return nil
}

func (p *Player) Pause() {
	speaker.Lock()
	p.ctrl.Paused = true
	speaker.Unlock()
}

// Abort stops playback and rewinds to the start.
func (p *Player) Abort() {
	speaker.Lock()
	defer speaker.Unlock()
	p.ctrl.Paused = true
	if err := p.streamer.Seek(0); err != nil {
		p.logger.Warn("unable to rewind audio", "err", err)
	}
}

func (p *Player) Close() error {
	speaker.Clear()
	return p.streamer.Close()
}

// Silent stands in for a chart without audio. It only keeps time.
type Silent struct {
	Length time.Duration
}

func (s Silent) Play() error             { return nil }
func (s Silent) Pause()                  {}
func (s Silent) Abort()                  {}
func (s Silent) Duration() time.Duration { return s.Length }
