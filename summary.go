package movegrade

import "gonum.org/v1/gonum/stat"

// ColorSummary aggregates one side's graded moves.
type ColorSummary struct {
	// Moves is how many moves the side played.
	Moves int `json:"moves"`

	// Counts holds how many moves earned each label.
	Counts map[Quality]int `json:"counts"`

	// MeanLoss and StdDevLoss describe the centipawn-loss distribution
	// over the side's non-book moves.
	MeanLoss   float64 `json:"mean_loss"`
	StdDevLoss float64 `json:"stddev_loss"`
}

// Summary aggregates a full game analysis per side.
type Summary struct {
	White ColorSummary `json:"white"`
	Black ColorSummary `json:"black"`
}

// Summarize aggregates an analysis into per-side label counts and loss
// statistics. Moves are attributed by each entry's Color, so games whose
// start position has Black to move are summed correctly. Book moves are
// counted but excluded from the loss statistics.
func Summarize(entries []AnalysisEntry) Summary {
	var s Summary
	var whiteLoss, blackLoss []float64

	s.White.Counts = make(map[Quality]int)
	s.Black.Counts = make(map[Quality]int)

	for _, e := range entries {
		cs := &s.Black
		losses := &blackLoss
		if e.Color == White {
			cs = &s.White
			losses = &whiteLoss
		}
		cs.Moves++
		cs.Counts[e.Quality]++
		if e.Quality != QualityBook && e.Quality != QualityUnknown {
			*losses = append(*losses, float64(e.Loss))
		}
	}

	s.White.MeanLoss, s.White.StdDevLoss = lossStats(whiteLoss)
	s.Black.MeanLoss, s.Black.StdDevLoss = lossStats(blackLoss)
	return s
}

func lossStats(losses []float64) (mean, stddev float64) {
	if len(losses) == 0 {
		return 0, 0
	}
	mean = stat.Mean(losses, nil)
	if len(losses) > 1 {
		stddev = stat.StdDev(losses, nil)
	}
	return mean, stddev
}
