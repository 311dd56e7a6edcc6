// Package config holds the settings of a run: defaults, then an optional
// YAML file, then environment variables, then command line flags.
package config

import (
	"time"
)

const (
	Version   = "0.3.0"
	EnvPrefix = "FOURK_"
	// EnvFile names the variable holding the path of the YAML file.
	EnvFile = EnvPrefix + "CONFIG"
)

type Config struct {
	Offset      time.Duration `koanf:"offset"`
	LeadIn      time.Duration `koanf:"lead_in"`
	FramePeriod time.Duration `koanf:"frame_period"`
	Difficulty  float64       `koanf:"difficulty"`
	Keys        string        `koanf:"keys"`
	Device      string        `koanf:"device"`
	Database    string        `koanf:"database"`
	MetricsAddr string        `koanf:"metrics_addr"`
	LogLevel    string        `koanf:"log_level"`
	LogFile     string        `koanf:"log_file"`
	ScoreBudget float64       `koanf:"score_budget"`

	// ScrollSpeed is the game time covered by one terminal row, lower is faster.
	ScrollSpeed   time.Duration `koanf:"scroll_speed"`
	ColumnSpacing int           `koanf:"spacing"`
	BarRow        int           `koanf:"bar_row"`
}

func New() *Config {
	return &Config{
		LeadIn:        1200 * time.Millisecond,
		FramePeriod:   time.Millisecond,
		Difficulty:    8,
		Keys:          "dfjk",
		Database:      "./beatmaps.db",
		LogLevel:      "info",
		ScoreBudget:   1_000_000,
		ScrollSpeed:   12 * time.Millisecond,
		ColumnSpacing: 6,
		BarRow:        8,
	}
}
