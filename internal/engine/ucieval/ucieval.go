// Package ucieval evaluates positions by spawning a UCI engine process
// per request.
package ucieval

import (
	"context"
	"fmt"
	"strings"

	"github.com/freeeve/uci"

	"github.com/discochess/movegrade/internal/engine"
)

// Compile-time check that Evaluator implements engine.Evaluator.
var _ engine.Evaluator = (*Evaluator)(nil)

// Evaluator runs a UCI-compatible engine binary. Every Evaluate call
// spawns a fresh single-threaded process with a bounded hash table and
// closes it before returning, so one corrupted engine instance never
// outlives its task and instances are never shared across tasks.
type Evaluator struct {
	path   string
	hashMB int
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithHashMB sets the engine hash table size in megabytes. Default 64.
func WithHashMB(mb int) Option {
	return func(e *Evaluator) {
		e.hashMB = mb
	}
}

// New creates an Evaluator for the engine binary at path.
func New(path string, opts ...Option) *Evaluator {
	e := &Evaluator{
		path:   path,
		hashMB: 64,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate scores one position to the given depth. The score is
// normalized to White's perspective. Engine startup or search failures
// are wrapped as engine.ErrUnavailable; cancellation kills the process.
func (e *Evaluator) Evaluate(ctx context.Context, fen string, depth int) (engine.Result, error) {
	if err := ctx.Err(); err != nil {
		return engine.Result{}, err
	}

	eng, err := uci.NewEngine(e.path)
	if err != nil {
		return engine.Result{}, fmt.Errorf("%w: starting %s: %v", engine.ErrUnavailable, e.path, err)
	}

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			eng.Close()
		case <-done:
		}
	}()
	defer eng.Close()

	if err := eng.SetOptions(uci.Options{
		Threads: 1,
		Hash:    e.hashMB,
		MultiPV: 1,
		Ponder:  false,
		OwnBook: false,
	}); err != nil {
		return engine.Result{}, fmt.Errorf("%w: configuring engine: %v", engine.ErrUnavailable, err)
	}

	if err := eng.SetFEN(fen); err != nil {
		return engine.Result{}, fmt.Errorf("%w: setting position: %v", engine.ErrUnavailable, err)
	}

	results, err := eng.GoDepth(depth, uci.HighestDepthOnly)
	if err != nil {
		if ctx.Err() != nil {
			return engine.Result{}, ctx.Err()
		}
		return engine.Result{}, fmt.Errorf("%w: search failed: %v", engine.ErrUnavailable, err)
	}
	if len(results.Results) == 0 {
		return engine.Result{}, fmt.Errorf("%w: engine reported no score", engine.ErrUnavailable)
	}

	best := results.Results[0]
	cp := best.Score
	if best.Mate {
		// The raw score holds the distance to mate.
		if best.Score >= 0 {
			cp = engine.MateScore - best.Score
		} else {
			cp = -engine.MateScore - best.Score
		}
	}
	if blackToMove(fen) {
		// UCI scores are from the side to move.
		cp = -cp
	}

	return engine.Result{
		CP:       cp,
		Mate:     best.Mate,
		BestMove: results.BestMove,
	}, nil
}

func blackToMove(fen string) bool {
	fields := strings.Fields(fen)
	return len(fields) > 1 && fields[1] == "b"
}
