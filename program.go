package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"git.lost.host/meutraa/fourk/internal/audio"
	"git.lost.host/meutraa/fourk/internal/config"
	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/input"
	"git.lost.host/meutraa/fourk/internal/library"
	"git.lost.host/meutraa/fourk/internal/metrics"
	"git.lost.host/meutraa/fourk/internal/parser"
	"git.lost.host/meutraa/fourk/internal/render"
	"git.lost.host/meutraa/fourk/internal/stage"
	"git.lost.host/meutraa/fourk/internal/theme"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
)

var ErrNoChart = errors.New("no such chart")

// decorationTime is how long a judgement stays on screen.
const decorationTime = 300 * time.Millisecond

type Program struct {
	cfg     *config.Config
	logger  *log.Logger
	logFile *os.File
}

func NewProgram(cfg *config.Config) (*Program, error) {
	p := &Program{cfg: cfg}

	var w io.Writer = os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if nil != err {
			return nil, errors.Wrap(err, "unable to open log file")
		}
		p.logFile = f
		w = f
	}
	level, err := log.ParseLevel(cfg.LogLevel)
	if nil != err {
		level = log.InfoLevel
	}
	p.logger = log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "fourk",
	})
	return p, nil
}

func (p *Program) Close() error {
	if nil != p.logFile {
		return p.logFile.Close()
	}
	return nil
}

func (p *Program) openLibrary() (*library.Library, error) {
	return library.Open(p.cfg.Database, game.Difficulty(p.cfg.Difficulty), p.logger.WithPrefix("library"))
}

func (p *Program) Scan(dir string) error {
	lib, err := p.openLibrary()
	if nil != err {
		return err
	}
	defer lib.Close()
	_, err = lib.Scan(dir)
	return err
}

func (p *Program) List(w io.Writer) error {
	lib, err := p.openLibrary()
	if nil != err {
		return err
	}
	defer lib.Close()

	entries, err := lib.List()
	if nil != err {
		return err
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%s  %4.1f  %5v  %s - %s [%s]\n",
			e.ID, e.Difficulty, e.Taps+e.Holds, e.Artist, e.Title, e.Version)
	}
	return nil
}

// resolve finds the chart file for a path or a catalog id.
func (p *Program) resolve(chart string, index int) (string, int, error) {
	if _, err := os.Stat(chart); nil == err {
		return chart, index, nil
	}
	lib, err := p.openLibrary()
	if nil != err {
		return "", 0, err
	}
	defer lib.Close()
	e, err := lib.Get(chart)
	if nil != err {
		return "", 0, errors.Wrapf(ErrNoChart, "%s is neither a file nor a catalog id", chart)
	}
	return e.Path, e.Index, nil
}

func (p *Program) load(chart string, index int) (*game.Chart, string, error) {
	path, index, err := p.resolve(chart, index)
	if nil != err {
		return nil, "", err
	}
	psr, err := parser.ForFile(path, game.Difficulty(p.cfg.Difficulty), p.logger.WithPrefix("parser"))
	if nil != err {
		return nil, "", err
	}
	charts, err := psr.Parse(path)
	if nil != err {
		return nil, "", err
	}
	if index < 0 || index >= len(charts) {
		return nil, "", errors.Wrapf(ErrNoChart, "%s has %d charts, wanted %d", path, len(charts), index)
	}
	return charts[index], path, nil
}

func (p *Program) player(c *game.Chart, path string) stage.Player {
	silent := audio.Silent{Length: c.End()}
	if c.Metadata.AudioFile == "" {
		return silent
	}
	file := filepath.Join(filepath.Dir(path), c.Metadata.AudioFile)
	player, err := audio.Open(file, p.logger.WithPrefix("audio"))
	if nil != err {
		p.logger.Warn("playing without audio", "file", file, "err", err)
		return silent
	}
	return player
}

// warnHolds reports whether the chart has holds the terminal reader
// cannot play, logging it once.
func (p *Program) warnHolds(c *game.Chart) bool {
	holds := c.HoldCount()
	if p.cfg.Device != "" || holds == 0 {
		return false
	}
	p.logger.Warn("terminal input has no key releases, holds will break; set --device to play them",
		"holds", holds)
	return true
}

func (p *Program) readInput(ctx context.Context, keys input.Keymap, events chan<- input.Event) error {
	if p.cfg.Device != "" {
		return input.ReadDevice(ctx, p.cfg.Device, keys, events, p.logger.WithPrefix("input"))
	}
	return input.ReadTerminal(ctx, keys, events)
}

func (p *Program) serveMetrics(ctx context.Context, g *errgroup.Group, m *metrics.Manager) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: p.cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	g.Go(func() error {
		if err := srv.ListenAndServe(); nil != err && err != http.ErrServerClosed {
			return errors.Wrap(err, "metrics server")
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	})
}

func (p *Program) Play(ctx context.Context, chart string, index int) error {
	c, path, err := p.load(chart, index)
	if nil != err {
		return err
	}
	keys, err := input.ParseKeymap(p.cfg.Keys)
	if nil != err {
		return err
	}
	p.warnHolds(c)
	player := p.player(c, path)
	if closer, ok := player.(io.Closer); ok {
		defer closer.Close()
	}

	var th theme.Theme = &theme.DefaultTheme{}
	var r render.Renderer = &render.DefaultRenderer{
		Theme:         th,
		RowDuration:   p.cfg.ScrollSpeed,
		BarRow:        p.cfg.BarRow,
		ColumnSpacing: p.cfg.ColumnSpacing,
	}
	m := metrics.NewManager(prometheus.NewRegistry())
	decorationFrames := int(decorationTime / p.cfg.FramePeriod)

	st := stage.New(c, player,
		stage.WithLeadIn(p.cfg.LeadIn),
		stage.WithOffset(p.cfg.Offset),
		stage.WithBudget(p.cfg.ScoreBudget),
		stage.WithLogger(p.logger.WithPrefix("stage")),
		stage.OnJudgement(func(n *game.Note, j game.Judgement) {
			m.Judged(j.Tier)
			r.AddDecoration(int(n.Column), th.RenderTier(j.Tier), decorationFrames)
		}),
		stage.OnFrame(m.Frame),
	)

	if err := r.Init(); nil != err {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	g, ctx := errgroup.WithContext(ctx)
	events := make(chan input.Event, 128)

	if p.cfg.MetricsAddr != "" {
		p.serveMetrics(ctx, g, m)
	}
	g.Go(func() error {
		return p.readInput(ctx, keys, events)
	})

	var session uuid.UUID
	var last stage.Snapshot
	window := time.Duration(r.Rows()) * p.cfg.ScrollSpeed
	sections := c.SectionLines(player.Duration())
	g.Go(func() error {
		defer cancel()
		return st.Run(ctx, events, p.cfg.FramePeriod, func(s stage.Snapshot) {
			if s.Session != session {
				session = s.Session
				m.SessionStarted()
			}
			m.Progress(s.Combo, s.MaxCombo, s.Score)
			r.Draw(render.Frame{
				Snapshot: s,
				Notes:    c.Span(s.Time-window, s.Time+window),
				Sections: sections,
			})
			last = s
		})
	})

	err = g.Wait()
	if derr := r.Deinit(); nil != derr {
		p.logger.Warn("unable to restore terminal", "err", derr)
	}
	if nil != err && !errors.Is(err, context.Canceled) {
		return err
	}
	fmt.Print(r.Summary(last, c.Metadata))
	return nil
}
