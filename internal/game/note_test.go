package game

import (
	"testing"
	"time"
)

func TestNewHold(t *testing.T) {
	if _, err := NewHold(0, time.Second, time.Second); err != ErrInvalidHold {
		t.Errorf("expected ErrInvalidHold, got %v", err)
	}
	if _, err := NewTap(Columns, 0); err != ErrInvalidColumn {
		t.Errorf("expected ErrInvalidColumn, got %v", err)
	}
	n, err := NewHold(2, time.Second, 2*time.Second)
	if nil != err {
		t.Fatal(err)
	}
	if n.Kind != Hold || n.TimeEnd != 2*time.Second {
		t.Errorf("unexpected hold %+v", n)
	}
}

func TestFinalizeOnce(t *testing.T) {
	n, _ := NewHold(0, time.Second, 2*time.Second)
	n.Hit(time.Second)
	if !n.Held() {
		t.Fatal("expected a hit hold to be held")
	}

	if !n.Finalize(NewHoldJudgement(Great, time.Second, 2*time.Second)) {
		t.Fatal("expected the first finalize to apply")
	}
	if n.Finalize(NewJudgement(Miss, 0)) {
		t.Error("expected the second finalize to be ignored")
	}
	j, ok := n.Judgement()
	if !ok || j.Tier != Great {
		t.Errorf("expected Great, got %v", j.Tier)
	}
	if n.Held() {
		t.Error("expected a judged note not to be held")
	}
	if at := j.At(); at != 2*time.Second {
		t.Errorf("expected the judgement at the release, got %v", at)
	}

	n.Hit(3 * time.Second)
	if hit, _ := n.HitTime(); hit != time.Second {
		t.Errorf("expected a judged note to ignore hits, got %v", hit)
	}
}

func TestSetScore(t *testing.T) {
	n, _ := NewTap(1, time.Second)
	if n.SetScore(10, 100) {
		t.Error("expected an unjudged note not to take a score")
	}
	n.Finalize(NewJudgement(Perfect, time.Second))
	if !n.SetScore(10, 100) || n.SetScore(20, 100) {
		t.Error("expected the score to be cached once")
	}
	if score, _, _ := n.Score(); score != 10 {
		t.Errorf("expected cached score 10, got %v", score)
	}
}

func TestDropAndReset(t *testing.T) {
	n, _ := NewHold(3, time.Second, 2*time.Second)
	n.Denom = 4
	n.Hit(time.Second)
	n.Drop()
	if n.Held() || !n.Broken() {
		t.Error("expected a dropped hold to be broken and not held")
	}
	if _, ok := n.HitTime(); ok {
		t.Error("expected a dropped hold to forget its hit")
	}
	if n.Break() {
		t.Error("expected Break to report an already broken note")
	}

	n.Finalize(NewJudgement(Miss, 0))
	n.Reset()
	if n.Judged() || n.Broken() || n.Held() {
		t.Error("expected Reset to clear all state")
	}
	if n.Column != 3 || n.Denom != 4 || n.TimeEnd != 2*time.Second {
		t.Errorf("expected Reset to keep the note identity, got %+v", n)
	}
}

func TestRecord(t *testing.T) {
	r := NewRecord()
	if len(r) != len(Tiers) || r.Total() != 0 {
		t.Errorf("expected an empty entry per tier, got %v", r)
	}
	r[Perfect] += 2
	r[Miss]++
	if r.Total() != 3 {
		t.Errorf("expected total 3, got %v", r.Total())
	}
}

func TestTierValues(t *testing.T) {
	tests := []struct {
		tier          Tier
		gain, penalty float64
		breaks        bool
	}{
		{Perfect, 2, 0, false},
		{Great, 2, 0, false},
		{Good, 1, 8, false},
		{Ok, 0, 24, false},
		{Meh, 0, 44, true},
	}
	for _, tt := range tests {
		if g := tt.tier.BonusGain(); g != tt.gain {
			t.Errorf("%v: expected gain %v, got %v", tt.tier, tt.gain, g)
		}
		if p := tt.tier.BonusPenalty(); p != tt.penalty {
			t.Errorf("%v: expected penalty %v, got %v", tt.tier, tt.penalty, p)
		}
		if b := tt.tier.BreaksCombo(); b != tt.breaks {
			t.Errorf("%v: expected breaks %v, got %v", tt.tier, tt.breaks, b)
		}
	}
	if !Miss.BreaksCombo() || Miss.BonusGain() != 0 {
		t.Error("expected a miss to break combo and gain nothing")
	}
}
