package judge

import (
	"math"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
)

func abs(x time.Duration) time.Duration {
	if x < 0 {
		return -x
	}
	return x
}

// scale multiplies a window by a factor without leaving integer nanoseconds.
func scale(w time.Duration, f float64) time.Duration {
	return time.Duration(math.Round(float64(w) * f))
}

// ByHit grades a single press. It reports false when the press is too
// early to register, or too late to be anything at all.
func ByHit(target, actual time.Duration, d game.Difficulty) (game.Tier, bool) {
	if target-actual > d.Window(game.Miss) {
		return game.Miss, false
	}
	deviation := abs(target - actual)
	for _, t := range game.Tiers {
		if deviation <= d.Window(t) {
			return t, true
		}
	}
	return game.Miss, false
}

// ByRelease grades a hold from its head press and its release combined.
// tailActual must already be clamped to at most tailTarget + Meh; it
// reports false when the release lies outside the tail Meh window.
func ByRelease(headTarget, headActual, tailTarget, tailActual time.Duration, d game.Difficulty) (game.Tier, bool) {
	meh := d.Window(game.Meh)
	if tailTarget-tailActual > meh || tailActual-tailTarget > meh {
		return game.Meh, false
	}

	head := abs(headTarget - headActual)
	combined := head + abs(tailTarget-tailActual)

	perfect := d.Window(game.Perfect)
	great := d.Window(game.Great)
	good := d.Window(game.Good)
	ok := d.Window(game.Ok)

	switch {
	case head <= scale(perfect, 1.2) && combined <= scale(perfect, 2.4):
		return game.Perfect, true
	case head <= scale(great, 1.1) && combined <= scale(great, 2.2):
		return game.Great, true
	case head <= good && combined <= 2*good:
		return game.Good, true
	case head <= ok && combined <= 2*ok:
		return game.Ok, true
	}
	return game.Meh, true
}
