package score

import (
	"math"
	"time"

	"git.lost.host/meutraa/fourk/internal/judge"
)

// Stats summarises hit errors.
type Stats struct {
	Count int
	Mean  time.Duration
	Stdev time.Duration
}

// Deviations computes the mean and sample standard deviation of the
// signed timing errors.
func Deviations(ds []judge.Deviation) Stats {
	stats := Stats{Count: len(ds)}
	if stats.Count == 0 {
		return stats
	}

	sum := 0.0
	for _, d := range ds {
		sum += float64(d.Offset)
	}
	mean := sum / float64(stats.Count)
	stats.Mean = time.Duration(math.Round(mean))

	if stats.Count > 1 {
		variance := 0.0
		for _, d := range ds {
			xi := float64(d.Offset) - mean
			variance += xi * xi
		}
		variance /= float64(stats.Count - 1)
		stats.Stdev = time.Duration(math.Round(math.Sqrt(variance)))
	}
	return stats
}
