package game

import "time"

// Difficulty is the overall difficulty of a chart, roughly 0 to 10.
// Higher values narrow every window except Perfect.
type Difficulty float64

// DefaultDifficulty is used when a chart does not carry one.
const DefaultDifficulty Difficulty = 8

func ms(v float64) time.Duration {
	return time.Duration(v * float64(time.Millisecond))
}

// Window returns the maximum deviation still graded as the tier.
func (d Difficulty) Window(t Tier) time.Duration {
	od := float64(d)
	switch t {
	case Perfect:
		return ms(16)
	case Great:
		return ms(64 - 3*od)
	case Good:
		return ms(97 - 3*od)
	case Ok:
		return ms(127 - 3*od)
	case Meh:
		return ms(151 - 3*od)
	}
	return ms(188 - 3*od)
}

// Windows lists the window of every tier, tightest first.
func (d Difficulty) Windows() [len(Tiers)]time.Duration {
	var w [len(Tiers)]time.Duration
	for i, t := range Tiers {
		w[i] = d.Window(t)
	}
	return w
}

// Valid reports whether the windows are strictly increasing.
func (d Difficulty) Valid() bool {
	w := d.Windows()
	for i := 1; i < len(w); i++ {
		if w[i-1] >= w[i] {
			return false
		}
	}
	return true
}
