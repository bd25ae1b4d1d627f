// Package scripted provides a deterministic in-memory evaluator for
// testing the analysis pipeline without an engine process.
package scripted

import (
	"context"
	"fmt"
	"sync"

	"github.com/discochess/movegrade/internal/engine"
	"github.com/discochess/movegrade/internal/rules"
)

// Compile-time check that Evaluator implements engine.Evaluator.
var _ engine.Evaluator = (*Evaluator)(nil)

// Evaluator returns scripted results keyed by position fingerprint.
// Safe for concurrent use.
type Evaluator struct {
	mu      sync.Mutex
	results map[string]engine.Result
	failing map[string]bool
	calls   map[string]int
}

// New creates an empty scripted evaluator.
func New() *Evaluator {
	return &Evaluator{
		results: make(map[string]engine.Result),
		failing: make(map[string]bool),
		calls:   make(map[string]int),
	}
}

// Script sets the result returned for a position.
func (e *Evaluator) Script(fen string, r engine.Result) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.results[rules.Fingerprint(fen)] = r
}

// ScriptCP is shorthand for scripting a plain centipawn score.
func (e *Evaluator) ScriptCP(fen string, cp int, bestMove string) {
	e.Script(fen, engine.Result{CP: cp, BestMove: bestMove})
}

// Fail makes evaluation of a position return engine.ErrUnavailable.
func (e *Evaluator) Fail(fen string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.failing[rules.Fingerprint(fen)] = true
}

// Calls returns how many times a position was evaluated.
func (e *Evaluator) Calls(fen string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.calls[rules.Fingerprint(fen)]
}

// Evaluate returns the scripted result for the position. Unscripted
// positions fail, like an engine that cannot score them.
func (e *Evaluator) Evaluate(ctx context.Context, fen string, depth int) (engine.Result, error) {
	if err := ctx.Err(); err != nil {
		return engine.Result{}, err
	}

	key := rules.Fingerprint(fen)

	e.mu.Lock()
	defer e.mu.Unlock()
	e.calls[key]++

	if e.failing[key] {
		return engine.Result{}, fmt.Errorf("%w: scripted failure", engine.ErrUnavailable)
	}
	r, ok := e.results[key]
	if !ok {
		return engine.Result{}, fmt.Errorf("%w: no scripted result for %q", engine.ErrUnavailable, key)
	}
	return r, nil
}
