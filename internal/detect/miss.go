package detect

import "github.com/discochess/movegrade/internal/rules"

// MissParams carries the signals the miss check needs. All centipawn
// scores are from White's perspective.
type MissParams struct {
	Oracle    rules.Oracle
	FENBefore string

	// BestMove is the engine's preferred move, nil if unknown.
	BestMove *rules.Move

	EvalBefore *int
	EvalAfter  *int
	Side       rules.Color

	// HangsPiece is true when the diagnosis already found the played
	// move hanging a piece; that is a mistake or blunder, never a miss.
	HangsPiece bool

	// MinLoss and MaxLoss bound the centipawn-loss band a miss lives
	// in, and MinAdvantage is how far ahead the mover must already be
	// unless the best move was a concrete capture.
	MinLoss      int
	MaxLoss      int
	MinAdvantage int
}

// Miss reports whether the move passed up a clear winning opportunity
// without being an outright blunder. All conditions must hold: both
// evaluations available, a moderate loss, an already winning position
// (or a missed capture of a minor piece or better), and no hanging
// piece of its own.
func Miss(p MissParams) (bool, error) {
	if p.EvalBefore == nil || p.EvalAfter == nil {
		return false, nil
	}
	if p.HangsPiece {
		return false, nil
	}

	loss := pov(*p.EvalBefore, p.Side) - pov(*p.EvalAfter, p.Side)
	if loss < p.MinLoss || loss > p.MaxLoss {
		return false, nil
	}

	if pov(*p.EvalBefore, p.Side) >= p.MinAdvantage {
		return true, nil
	}

	// Not clearly ahead: a miss still needs a concrete tactic, the
	// engine's best move winning a minor piece or better.
	if p.BestMove == nil {
		return false, nil
	}
	capVal, err := capturedValue(p.Oracle, p.FENBefore, *p.BestMove)
	if err != nil {
		return false, err
	}
	return capVal >= rules.Knight.Value(), nil
}

// pov converts a White-perspective score to the given side's view.
func pov(cp int, side rules.Color) int {
	if side == rules.Black {
		return -cp
	}
	return cp
}
