package config

import (
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"
)

const (
	CommandPlay = "play"
	CommandScan = "scan"
	CommandList = "list"
)

// Invocation is a parsed command line.
type Invocation struct {
	Command string
	Chart   string // play: a chart path or a catalog id
	Index   int    // play: which chart of a multi-chart file
	Dir     string // scan
	Config  *Config
}

// Parse reads args over base. Flags left unset keep base's values.
func Parse(base *Config, args []string) (*Invocation, error) {
	cfg := *base
	inv := &Invocation{Config: &cfg}

	app := kingpin.New("fourk", "A 4-key rhythm game for the terminal.")
	app.Version(Version)
	app.HelpFlag.Short('h')

	app.Flag("offset", "Global input offset").Short('o').
		Default(cfg.Offset.String()).DurationVar(&cfg.Offset)
	app.Flag("lead-in", "Delay before the audio starts and after resuming").Short('d').
		Default(cfg.LeadIn.String()).DurationVar(&cfg.LeadIn)
	app.Flag("frame-period", "Frame period").Short('p').
		Default(cfg.FramePeriod.String()).DurationVar(&cfg.FramePeriod)
	app.Flag("difficulty", "Difficulty for charts that carry none").
		Default(strconv.FormatFloat(cfg.Difficulty, 'f', -1, 64)).Float64Var(&cfg.Difficulty)
	app.Flag("keys", "Keys for the four columns").Short('k').
		Default(cfg.Keys).StringVar(&cfg.Keys)
	app.Flag("device", "evdev keyboard device, for key release events").
		Default(cfg.Device).StringVar(&cfg.Device)
	app.Flag("database", "Beatmap catalog").
		Default(cfg.Database).StringVar(&cfg.Database)
	app.Flag("metrics-addr", "Serve Prometheus metrics on this address").
		Default(cfg.MetricsAddr).StringVar(&cfg.MetricsAddr)
	app.Flag("log-level", "Log level").
		Default(cfg.LogLevel).EnumVar(&cfg.LogLevel, "debug", "info", "warn", "error")
	app.Flag("log-file", "Write logs here instead of stderr").
		Default(cfg.LogFile).StringVar(&cfg.LogFile)
	app.Flag("score-budget", "Score of a perfect play").
		Default(strconv.FormatFloat(cfg.ScoreBudget, 'f', -1, 64)).Float64Var(&cfg.ScoreBudget)
	app.Flag("scroll-speed", "Game time per row, lower is faster").Short('s').
		Default(cfg.ScrollSpeed.String()).DurationVar(&cfg.ScrollSpeed)
	app.Flag("spacing", "Columns between keys").Short('S').
		Default(strconv.Itoa(cfg.ColumnSpacing)).IntVar(&cfg.ColumnSpacing)
	app.Flag("bar-row", "Rows between the hit bar and the bottom").
		Default(strconv.Itoa(cfg.BarRow)).IntVar(&cfg.BarRow)

	play := app.Command(CommandPlay, "Play a chart").Default()
	play.Arg("chart", "Chart file or catalog id").Required().StringVar(&inv.Chart)
	play.Flag("index", "Chart within the file").Short('i').Default("0").IntVar(&inv.Index)

	scan := app.Command(CommandScan, "Add every chart under a directory to the catalog")
	scan.Arg("dir", "Song directory").Required().ExistingDirVar(&inv.Dir)

	app.Command(CommandList, "List the catalog")

	cmd, err := app.Parse(args)
	if nil != err {
		return nil, err
	}
	inv.Command = cmd
	return inv, cfg.Validate()
}
