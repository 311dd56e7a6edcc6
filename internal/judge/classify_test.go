package judge

import (
	"testing"
	"time"

	"git.lost.host/meutraa/fourk/internal/game"
)

func ms(v int) time.Duration {
	return time.Duration(v) * time.Millisecond
}

func TestByHitZeroDeviation(t *testing.T) {
	for d := game.Difficulty(0); d <= 10; d++ {
		tier, ok := ByHit(ms(1000), ms(1000), d)
		if !ok || tier != game.Perfect {
			t.Errorf("difficulty %v: expected Perfect, got %v (%v)", d, tier, ok)
		}
	}
}

type hitTest struct {
	Actual int
	Tier   game.Tier
	Ok     bool
}

var hitTests = []hitTest{
	{1000, game.Perfect, true},
	{1016, game.Perfect, true},
	{984, game.Perfect, true},
	{1017, game.Great, true},
	{960, game.Great, true},
	{1073, game.Good, true},
	{897, game.Ok, true},
	{1127, game.Meh, true},
	{850, game.Miss, true},
	{1164, game.Miss, true},
	{1165, game.Miss, false},
	{835, game.Miss, false},
}

func TestByHit(t *testing.T) {
	for _, test := range hitTests {
		tier, ok := ByHit(ms(1000), ms(test.Actual), game.DefaultDifficulty)
		if tier != test.Tier || ok != test.Ok {
			t.Log("actual  ", test.Actual)
			t.Log("tier    ", tier, ok)
			t.Log("expected", test.Tier, test.Ok)
			t.Fail()
		}
	}
}

type releaseTest struct {
	Head, Tail int
	Tier       game.Tier
	Ok         bool
}

var releaseTests = []releaseTest{
	{1005, 3010, game.Perfect, true},
	{1019, 3019, game.Perfect, true},
	{1020, 3000, game.Great, true},
	{1040, 3040, game.Great, true},
	{1060, 3060, game.Good, true},
	{1100, 3100, game.Ok, true},
	{1104, 3000, game.Meh, true},
	{1000, 3127, game.Good, true},
	{1000, 2872, game.Meh, false},
	{1000, 3128, game.Meh, false},
}

func TestByRelease(t *testing.T) {
	for _, test := range releaseTests {
		tier, ok := ByRelease(ms(1000), ms(test.Head), ms(3000), ms(test.Tail), game.DefaultDifficulty)
		if tier != test.Tier || ok != test.Ok {
			t.Errorf("head %d tail %d: expected %v (%v), got %v (%v)",
				test.Head, test.Tail, test.Tier, test.Ok, tier, ok)
		}
	}
}

var result game.Tier

func BenchmarkByHit(b *testing.B) {
	var tier game.Tier
	b.ResetTimer()
	for n := 0; n < b.N; n++ {
		tier, _ = ByHit(ms(12456), ms(12456+n%200-100), game.DefaultDifficulty)
	}
	result = tier
}
