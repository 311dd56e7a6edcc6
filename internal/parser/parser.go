// Package parser reads chart files into game charts.
package parser

import (
	"path/filepath"
	"strings"

	"git.lost.host/meutraa/fourk/internal/game"
	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
)

var ErrUnsupported = errors.New("unsupported chart")

type Parser interface {
	Parse(file string) ([]*game.Chart, error)
}

// ForFile picks a parser from the file extension.
func ForFile(file string, difficulty game.Difficulty, logger *log.Logger) (Parser, error) {
	if logger == nil {
		logger = log.Default()
	}
	switch strings.ToLower(filepath.Ext(file)) {
	case ".osu":
		return &OsuParser{Difficulty: difficulty, Logger: logger}, nil
	case ".sm":
		return &StepParser{Difficulty: difficulty, Logger: logger}, nil
	}
	return nil, errors.Wrapf(ErrUnsupported, "unknown chart format %s", filepath.Ext(file))
}
