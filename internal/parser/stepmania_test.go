package parser

import (
	"testing"

	"git.lost.host/meutraa/fourk/internal/game"
	"git.lost.host/meutraa/fourk/internal/testdata"
)

var stepNotes = []expectedNote{
	{0, game.Tap, 0, 0},
	{1, game.Tap, ms(500), ms(500)},
	{2, game.Hold, ms(1000), ms(2000)},
	{3, game.Tap, ms(1500), ms(1500)},
	{0, game.Tap, ms(3500), ms(3500)},
}

func TestStepDecode(t *testing.T) {
	p := &StepParser{Difficulty: game.DefaultDifficulty}
	charts, err := p.Decode(testdata.Step)
	if nil != err {
		t.Fatal(err)
	}
	if len(charts) != 1 {
		t.Fatalf("expected only the dance-single chart, got %d", len(charts))
	}
	chart := charts[0]
	checkNotes(t, chart.Notes, stepNotes)

	if chart.Difficulty != game.DefaultDifficulty {
		t.Errorf("expected difficulty %v, got %v", game.DefaultDifficulty, chart.Difficulty)
	}
	if len(chart.TimingPoints) != 1 || chart.TimingPoints[0] != (game.TimingPoint{Offset: 0, BeatLength: ms(500)}) {
		t.Errorf("expected one 120bpm timing point, got %v", chart.TimingPoints)
	}
	md := chart.Metadata
	if md.Title != "Sample Steps" || md.AudioFile != "audio.ogg" || md.Version != "Easy 3" {
		t.Errorf("unexpected metadata %+v", md)
	}
	for _, n := range chart.Notes {
		if n.Denom != 1 {
			t.Errorf("expected quarter notes, got denom %d", n.Denom)
		}
	}
}

func TestStepBadBPM(t *testing.T) {
	_, err := (&StepParser{}).Decode("#BPMS:0.000;\n#NOTES:\n")
	if nil == err {
		t.Error("expected an error for a malformed #BPMS")
	}
}

func BenchmarkStepDecode(b *testing.B) {
	p := &StepParser{Difficulty: game.DefaultDifficulty}
	for n := 0; n < b.N; n++ {
		if _, err := p.Decode(testdata.Step); nil != err {
			b.Fatal(err)
		}
	}
}
