package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
)

// Load layers, lowest first: New, the YAML file named by FOURK_CONFIG,
// then FOURK_* variables (FOURK_LEAD_IN sets lead_in).
func Load() (*Config, error) {
	k := koanf.New(".")

	if path := os.Getenv(EnvFile); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "unable to load %s", path)
		}
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, errors.Wrap(err, "unable to load environment")
	}

	cfg := New()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	switch {
	case len([]rune(c.Keys)) != 4:
		return errors.Errorf("keys must name 4 columns, got %q", c.Keys)
	case c.FramePeriod <= 0:
		return errors.New("frame period must be positive")
	case c.LeadIn < 0:
		return errors.New("lead-in must not be negative")
	case c.ScoreBudget <= 0:
		return errors.New("score budget must be positive")
	case c.ScrollSpeed <= 0:
		return errors.New("scroll speed must be positive")
	}
	return nil
}
