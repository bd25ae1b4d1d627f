package movegrade

// Quality is the closed set of move quality labels.
type Quality string

// Quality labels, best to worst, plus the special categories.
const (
	QualityBrilliant  Quality = "brilliant"
	QualityBest       Quality = "best"
	QualityExcellent  Quality = "excellent"
	QualityGood       Quality = "good"
	QualityInaccuracy Quality = "inaccuracy"
	QualityMistake    Quality = "mistake"
	QualityBlunder    Quality = "blunder"
	QualityMiss       Quality = "miss"
	QualityBook       Quality = "book"
	QualityForced     Quality = "forced"
	QualityUnknown    Quality = "unknown"
)

// Thresholds holds the tunable constants of the classifier. All values
// are centipawns. The loss table must stay monotonic.
type Thresholds struct {
	// Upper bounds of the loss bands. A clamped loss of at most Best
	// is "best", at most Excellent "excellent", and so on; anything
	// above Mistake is a blunder.
	Best       int
	Excellent  int
	Good       int
	Inaccuracy int
	Mistake    int

	// Ceiling clamps the loss so forced-mate magnitudes do not distort
	// the scale.
	Ceiling int

	// CompetitiveMax is the largest pre-move advantage, from the
	// mover's view, at which a position still counts as competitive
	// for the brilliant upgrade.
	CompetitiveMax int

	// BrilliantLosingMax is how far behind, from the mover's view, the
	// post-move evaluation may be for a sacrifice to stay brilliant.
	BrilliantLosingMax int

	// MissMinLoss and MissMaxLoss bound the loss band of a miss, and
	// MissMinAdvantage is the pre-move advantage that makes any
	// moderate loss a miss.
	MissMinLoss      int
	MissMaxLoss      int
	MissMinAdvantage int

	// BalancedMax bounds |evalBefore| under which a stalemate costs
	// nothing; StalematePenalty is charged above it.
	BalancedMax      int
	StalematePenalty int
}

// DefaultThresholds returns the reference classifier constants.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Best:               0,
		Excellent:          10,
		Good:               30,
		Inaccuracy:         80,
		Mistake:            200,
		Ceiling:            800,
		CompetitiveMax:     500,
		BrilliantLosingMax: 100,
		MissMinLoss:        50,
		MissMaxLoss:        200,
		MissMinAdvantage:   100,
		BalancedMax:        200,
		StalematePenalty:   150,
	}
}

// label maps a clamped non-negative loss to its band.
func (t Thresholds) label(loss int) Quality {
	switch {
	case loss <= t.Best:
		return QualityBest
	case loss <= t.Excellent:
		return QualityExcellent
	case loss <= t.Good:
		return QualityGood
	case loss <= t.Inaccuracy:
		return QualityInaccuracy
	case loss <= t.Mistake:
		return QualityMistake
	default:
		return QualityBlunder
	}
}
