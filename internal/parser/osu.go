package parser

import (
	"bufio"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

const (
	maniaMode     = 3
	playfieldSize = 512
	holdFlag      = 1 << 7
)

// OsuParser reads osu!mania 4K beatmaps. Difficulty is used when a
// beatmap has no OverallDifficulty.
type OsuParser struct {
	Difficulty game.Difficulty
	Logger     *log.Logger
}

func (p *OsuParser) logger() *log.Logger {
	if p.Logger == nil {
		return log.Default()
	}
	return p.Logger
}

func (p *OsuParser) Parse(file string) ([]*game.Chart, error) {
	f, err := os.Open(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to open beatmap")
	}
	defer f.Close()

	chart, err := p.Decode(f)
	if nil != err {
		return nil, errors.Wrapf(err, "unable to parse %s", file)
	}
	return []*game.Chart{chart}, nil
}

func splitKeyVal(line string) (string, string) {
	k, v, _ := strings.Cut(line, ":")
	return strings.TrimSpace(k), strings.TrimSpace(v)
}

func millis(s string) (time.Duration, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if nil != err {
		return 0, err
	}
	return time.Duration(math.Round(v * float64(time.Millisecond))), nil
}

// Decode reads one beatmap. Lines that cannot be read are skipped, so a
// broken file gives a chart with fewer, possibly zero, notes.
func (p *OsuParser) Decode(r io.Reader) (*game.Chart, error) {
	chart := &game.Chart{Difficulty: p.Difficulty}
	mode, keys := maniaMode, float64(game.Columns)
	logger := p.logger()

	section := ""
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}
		if strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]") {
			section = strings.Trim(line, "[]")
			continue
		}

		switch section {
		case "General":
			k, v := splitKeyVal(line)
			switch k {
			case "AudioFilename":
				chart.Metadata.AudioFile = v
			case "Mode":
				m, err := strconv.Atoi(v)
				if nil != err {
					logger.Warn("bad mode, assuming mania", "line", line, "err", err)
					continue
				}
				mode = m
			}
		case "Metadata":
			k, v := splitKeyVal(line)
			switch k {
			case "Title":
				chart.Metadata.Title = v
			case "Artist":
				chart.Metadata.Artist = v
			case "Creator":
				chart.Metadata.Creator = v
			case "Version":
				chart.Metadata.Version = v
			}
		case "Difficulty":
			k, v := splitKeyVal(line)
			f, err := strconv.ParseFloat(v, 64)
			if nil != err {
				continue
			}
			switch k {
			case "HPDrainRate":
				chart.DrainRate = f
			case "CircleSize":
				keys = f
			case "OverallDifficulty":
				chart.Difficulty = game.Difficulty(f)
			}
		case "TimingPoints":
			tp, ok := parseTimingPoint(line)
			if ok {
				chart.TimingPoints = append(chart.TimingPoints, tp)
			}
		case "HitObjects":
			note, err := parseHitObject(line, keys)
			if nil != err {
				logger.Warn("skipping hit object", "line", line, "err", err)
				continue
			}
			chart.Notes = append(chart.Notes, note)
		}
	}
	if err := sc.Err(); nil != err {
		return nil, errors.Wrap(err, "unable to read beatmap")
	}

	if mode != maniaMode || keys != game.Columns {
		return nil, errors.Wrapf(ErrUnsupported, "mode %d with %v keys", mode, keys)
	}
	chart.Sort()
	return chart, nil
}

// parseTimingPoint keeps only uninherited points, which carry a beat length.
func parseTimingPoint(line string) (game.TimingPoint, bool) {
	fields := strings.Split(line, ",")
	if len(fields) < 2 {
		return game.TimingPoint{}, false
	}
	offset, err := millis(fields[0])
	if nil != err {
		return game.TimingPoint{}, false
	}
	beat, err := millis(fields[1])
	if nil != err || beat <= 0 {
		return game.TimingPoint{}, false
	}
	return game.TimingPoint{Offset: offset, BeatLength: beat}, true
}

// parseHitObject reads "x,y,time,type,hitSound,endTime:hitSample".
func parseHitObject(line string, keys float64) (*game.Note, error) {
	fields := strings.Split(line, ",")
	if len(fields) < 5 {
		return nil, errors.New("too few fields")
	}
	x, err := strconv.ParseFloat(fields[0], 64)
	if nil != err {
		return nil, errors.Wrap(err, "bad x")
	}
	at, err := millis(fields[2])
	if nil != err {
		return nil, errors.Wrap(err, "bad time")
	}
	flags, err := strconv.Atoi(fields[3])
	if nil != err {
		return nil, errors.Wrap(err, "bad type")
	}

	column := int(math.Floor(x * keys / playfieldSize))
	if column < 0 {
		column = 0
	} else if column >= game.Columns {
		column = game.Columns - 1
	}

	if flags&holdFlag != 0 && len(fields) > 5 {
		end, _, _ := strings.Cut(fields[5], ":")
		tail, err := millis(end)
		if nil == err && tail > at {
			return game.NewHold(uint8(column), at, tail)
		}
	}
	return game.NewTap(uint8(column), at)
}
