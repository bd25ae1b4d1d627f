package movegrade

import (
	"fmt"

	"github.com/discochess/movegrade/internal/detect"
	"github.com/discochess/movegrade/internal/rules"
)

// moveFacts gathers every signal the classifier consumes for one move.
// Evaluations are centipawns from White's perspective.
type moveFacts struct {
	side rules.Color

	evalBefore *int
	evalAfter  *int

	// bestSAN is the engine's best move when it differs from the
	// played one, empty otherwise.
	bestSAN string

	book      bool
	forced    bool
	checkmate bool
	stalemate bool
	sacrifice bool
	miss      bool

	diag detect.Diagnosis
}

// classify runs the decision procedure: checkmate, book, forced, and
// miss take priority in that order, then the loss-threshold table, then
// the brilliant upgrade. The first matching rule decides label and
// comment. It returns the label, the comment, and the clamped loss.
func classify(f moveFacts, t Thresholds) (Quality, string, int) {
	if f.checkmate {
		return QualityBest, "Checkmate. A perfect finishing move.", 0
	}

	loss, haveLoss := f.loss(t)

	if f.book {
		return QualityBook, "A known book move.", loss
	}
	if f.forced {
		return QualityForced, "The only legal move.", loss
	}
	if !haveLoss {
		// Without a score only the categories above can be decided.
		return QualityUnknown, "Evaluation unavailable for this move.", 0
	}
	if f.miss {
		return QualityMiss, f.missComment(), loss
	}

	q := t.label(loss)
	comment := f.comment(q, loss)

	// A sound sacrifice in a competitive position upgrades the two top
	// bands, and only those, to brilliant.
	if (q == QualityBest || q == QualityExcellent) && f.sacrifice &&
		pov(*f.evalBefore, f.side) <= t.CompetitiveMax &&
		pov(*f.evalAfter, f.side) >= -t.BrilliantLosingMax {
		return QualityBrilliant, "A brilliant sacrifice. The material is given up for lasting compensation.", loss
	}

	return q, comment, loss
}

// loss computes the clamped non-negative centipawn loss from the mover's
// point of view. Stalemate is free from a balanced position and costs a
// fixed penalty from a winning one.
func (f moveFacts) loss(t Thresholds) (int, bool) {
	if f.evalBefore == nil || f.evalAfter == nil {
		return 0, false
	}

	if f.stalemate {
		if abs(*f.evalBefore) < t.BalancedMax {
			return 0, true
		}
		return t.StalematePenalty, true
	}

	loss := pov(*f.evalBefore, f.side) - pov(*f.evalAfter, f.side)
	if loss < 0 {
		loss = 0
	}
	if loss > t.Ceiling {
		loss = t.Ceiling
	}
	return loss, true
}

func (f moveFacts) missComment() string {
	if f.bestSAN != "" {
		return fmt.Sprintf("Misses the much stronger %s.", f.bestSAN)
	}
	return "Misses a clearly stronger continuation."
}

// comment picks the rationale for a threshold-table label: the problem
// diagnosis when there is one, then the engine's best move, then a
// generic severity remark.
func (f moveFacts) comment(q Quality, loss int) string {
	if f.stalemate {
		if loss == 0 {
			return "Stalemate. The game ends level."
		}
		return "Stalemate throws away a winning position."
	}

	switch q {
	case QualityBest:
		if f.bestSAN != "" {
			return fmt.Sprintf("As strong as the engine's %s.", f.bestSAN)
		}
		return "The engine's top choice."
	case QualityExcellent:
		return "Nearly the best move."
	case QualityGood:
		return "A reasonable move."
	}

	if !f.diag.Empty() {
		return f.diag.Description
	}
	if f.bestSAN != "" {
		return fmt.Sprintf("%s was better.", f.bestSAN)
	}
	switch q {
	case QualityInaccuracy:
		return "Slightly weakens the position."
	case QualityMistake:
		return "Gives away a significant advantage."
	default:
		return "A serious error that changes the outcome."
	}
}

// pov converts a White-perspective score to the given side's view.
func pov(cp int, side rules.Color) int {
	if side == rules.Black {
		return -cp
	}
	return cp
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
