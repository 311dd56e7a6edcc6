package score

import "git.lost.host/meutraa/fourk/internal/game"

// Accuracy is the mean accuracy weight of the judged notes, 1 when none are.
func Accuracy(notes []*game.Note) float64 {
	sum := 0.0
	judged := 0
	for _, n := range notes {
		j, ok := n.Judgement()
		if !ok {
			continue
		}
		sum += j.Tier.Accuracy()
		judged++
	}
	if judged == 0 {
		return 1.0
	}
	return sum / float64(judged)
}

type Rank string

const (
	RankSS Rank = "SS"
	RankS  Rank = "S"
	RankA  Rank = "A"
	RankB  Rank = "B"
	RankC  Rank = "C"
	RankD  Rank = "D"
)

func RankOf(accuracy float64) Rank {
	switch {
	case accuracy >= 1.0:
		return RankSS
	case accuracy >= 0.95:
		return RankS
	case accuracy >= 0.90:
		return RankA
	case accuracy >= 0.80:
		return RankB
	case accuracy >= 0.70:
		return RankC
	}
	return RankD
}
