// Package testdata carries small charts used by tests across packages.
package testdata

import (
	_ "embed"
	"io"
	"strings"
)

//go:embed sample.osu
var Osu string

//go:embed sample.sm
var Step string

func OsuReader() io.Reader {
	return strings.NewReader(Osu)
}
