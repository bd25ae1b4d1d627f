// Package engine defines the position evaluation interface backed by an
// external scoring engine.
package engine

import (
	"context"
	"errors"
)

// MateScore is the centipawn magnitude used to encode forced mates. A
// mate in n is folded to MateScore-n for the mating side, so shorter
// mates score higher.
const MateScore = 10000

// ErrUnavailable indicates the engine could not produce an evaluation.
// Callers treat this as a recoverable per-position failure.
var ErrUnavailable = errors.New("engine: evaluation unavailable")

// Result is one position evaluation.
type Result struct {
	// CP is the score in centipawns from White's perspective. Forced
	// mates are encoded near +-MateScore.
	CP int

	// Mate reports whether CP encodes a forced mate.
	Mate bool

	// BestMove is the engine's preferred move in UCI notation, empty if
	// the engine reported none.
	BestMove string
}

// Evaluator scores a single position to the given search depth. An
// Evaluator must be safe for concurrent use; implementations that wrap a
// stateful engine process acquire one instance per call.
type Evaluator interface {
	Evaluate(ctx context.Context, fen string, depth int) (Result, error)
}
