package parser

import (
	"math"
	"math/big"
	"os"
	"strconv"
	"strings"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

// StepParser reads the dance-single charts of a StepMania .sm file.
// The format has no timing difficulty, so every chart gets Difficulty.
type StepParser struct {
	Difficulty game.Difficulty
	Logger     *log.Logger
}

type bpm struct {
	StartingBeat float64
	Value        float64
}

type stepChart struct {
	Name    string
	Meter   string
	Section string
}

func (p *StepParser) getSecondsPerNote(rates []bpm, currentBeat float64, bpn float64) (float64, float64) {
	sel := float64(0.0)
	for _, b := range rates {
		if currentBeat >= b.StartingBeat {
			sel = b.Value
		} else {
			break
		}
	}
	if sel <= 0 {
		return 0, 0
	}
	secondsPerBeat := 60.0 / sel
	return secondsPerBeat, bpn * secondsPerBeat
}

func seconds(s float64) time.Duration {
	return time.Duration(math.Round(s * float64(time.Second)))
}

// 0 – No note
// 1 – Normal note
// 2 – Hold head
// 3 – Hold/Roll tail
// 4 – Roll head
// M – Mine (or other negative note), skipped
func (p *StepParser) Parse(file string) ([]*game.Chart, error) {
	data, err := os.ReadFile(file)
	if nil != err {
		return nil, errors.Wrap(err, "unable to read chart")
	}
	return p.Decode(string(data))
}

func (p *StepParser) Decode(data string) ([]*game.Chart, error) {
	logger := p.Logger
	if logger == nil {
		logger = log.Default()
	}

	str := strings.ReplaceAll(data, "\r", "")
	sections := strings.Split(str, "#NOTES:")
	meta := sections[0]
	steps := []stepChart{}
	for _, section := range sections[1:] {
		lines := strings.SplitN(section, "\n", 7)
		if len(lines) < 7 {
			logger.Warn("skipping truncated chart section")
			continue
		}
		chartType := strings.TrimSuffix(strings.TrimSpace(lines[1]), ":")
		if chartType != "dance-single" {
			continue
		}
		steps = append(steps, stepChart{
			Name:    strings.TrimSuffix(strings.TrimSpace(lines[3]), ":"),
			Meter:   strings.TrimSuffix(strings.TrimSpace(lines[4]), ":"),
			Section: lines[6],
		})
	}

	offset := 0.0
	bpms := []bpm{}
	metadata := game.Metadata{}

	for _, mdl := range strings.Split(meta, "\n#") {
		mdl = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(mdl), "#"))
		key, value, _ := strings.Cut(mdl, ":")
		value = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
		switch key {
		case "TITLE":
			metadata.Title = value
		case "ARTIST":
			metadata.Artist = value
		case "CREDIT":
			metadata.Creator = value
		case "MUSIC":
			metadata.AudioFile = value
		case "OFFSET":
			offs, err := strconv.ParseFloat(value, 64)
			if nil != err {
				return nil, errors.Wrap(err, "bad #OFFSET")
			}
			offset = -offs
		case "BPMS":
			value = strings.ReplaceAll(value, "\n", "")
			for _, b := range strings.Split(value, ",") {
				if strings.TrimSpace(b) == "" {
					continue
				}
				as := strings.Split(b, "=")
				if len(as) != 2 {
					return nil, errors.Errorf("bad #BPMS entry %q", b)
				}
				sb, err := strconv.ParseFloat(strings.TrimSpace(as[0]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "bad #BPMS beat")
				}
				bv, err := strconv.ParseFloat(strings.TrimSpace(as[1]), 64)
				if nil != err {
					return nil, errors.Wrap(err, "bad #BPMS value")
				}
				bpms = append(bpms, bpm{StartingBeat: sb, Value: bv})
			}
		}
	}

	charts := []*game.Chart{}
	for _, step := range steps {
		md := metadata
		md.Version = step.Name
		if step.Meter != "" {
			md.Version += " " + step.Meter
		}
		chart := &game.Chart{
			Difficulty: p.Difficulty,
			Metadata:   md,
		}
		p.readNotes(chart, step.Section, offset, bpms)
		chart.Sort()
		charts = append(charts, chart)
	}

	return charts, nil
}

func (p *StepParser) readNotes(chart *game.Chart, section string, offset float64, bpms []bpm) {
	// Start time of first note
	secs := offset
	currentBeat := 0.0
	lastBeatLength := 0.0

	section, _, _ = strings.Cut(section, ";")
	blocks := strings.Split(section, "\n,")

	for _, block := range blocks {
		lines := []string{}
		for _, l := range strings.Split(block, "\n") {
			if strings.HasPrefix(l, " ") || strings.Contains(l, "-") || strings.HasPrefix(l, "//") {
				continue
			}
			l = strings.TrimSpace(l)
			if len(l) >= game.Columns {
				lines = append(lines, l)
			}
		}
		if len(lines) == 0 {
			continue
		}

		// Beat count is 4 per block
		lineCount := int64(len(lines))
		beatsPerNote := 4.0 / float64(lineCount) // 1/4, 1/8, 1/16, 1/24 etc

		for i, line := range lines {
			r := big.NewRat(int64(i*4), lineCount)
			denom := int(r.Denom().Int64())
			beatLength, secondsPerNote := p.getSecondsPerNote(bpms, currentBeat, beatsPerNote)

			if beatLength != lastBeatLength && beatLength > 0 {
				chart.TimingPoints = append(chart.TimingPoints, game.TimingPoint{
					Offset:     seconds(secs),
					BeatLength: seconds(beatLength),
				})
				lastBeatLength = beatLength
			}

			at := seconds(secs)
			for column, c := range []byte(line[:game.Columns]) {
				switch c {
				case '1', '2', '4':
					note, err := game.NewTap(uint8(column), at)
					if nil != err {
						continue
					}
					note.Denom = denom
					chart.Notes = append(chart.Notes, note)
				case '3':
					// This is the release of a previous head, find the last
					// note in this column and turn it into a hold
					for j := len(chart.Notes) - 1; j >= 0; j-- {
						note := chart.Notes[j]
						if int(note.Column) != column {
							continue
						}
						if at > note.Time {
							note.Kind = game.Hold
							note.TimeEnd = at
						}
						break
					}
				}
			}

			secs += secondsPerNote
			currentBeat += beatsPerNote
		}
	}
}
