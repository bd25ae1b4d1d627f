package sched

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/movegrade/internal/engine"
	"github.com/discochess/movegrade/internal/engine/scripted"
	"github.com/discochess/movegrade/internal/evalcache"
	"github.com/discochess/movegrade/internal/rules"
)

const (
	fenA = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	fenB = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
	fenC = "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq e6 0 2"
)

func positions(fens ...string) map[string]string {
	out := make(map[string]string, len(fens))
	for _, fen := range fens {
		out[rules.Fingerprint(fen)] = fen
	}
	return out
}

func TestPopulate_FillsCache(t *testing.T) {
	eval := scripted.New()
	eval.ScriptCP(fenA, 20, "e2e4")
	eval.ScriptCP(fenB, 25, "e7e5")
	eval.ScriptCP(fenC, 18, "g1f3")

	s := New(eval, 12, 2, nil, nil)
	cache := evalcache.New()

	if err := s.Populate(context.Background(), cache, positions(fenA, fenB, fenC)); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}

	if cache.Len() != 3 {
		t.Errorf("cache.Len() = %d, want 3", cache.Len())
	}
	r, ok := cache.Get(rules.Fingerprint(fenB))
	if !ok || r.Score == nil || *r.Score != 25 {
		t.Errorf("cached record for fenB = %+v, want score 25", r)
	}
}

func TestPopulate_EvaluatesEachPositionOnce(t *testing.T) {
	eval := scripted.New()
	eval.ScriptCP(fenA, 20, "")
	eval.ScriptCP(fenB, 25, "")

	s := New(eval, 12, 4, nil, nil)
	cache := evalcache.New()

	if err := s.Populate(context.Background(), cache, positions(fenA, fenB)); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}

	for _, fen := range []string{fenA, fenB} {
		if n := eval.Calls(fen); n != 1 {
			t.Errorf("Calls(%q) = %d, want 1", rules.Fingerprint(fen), n)
		}
	}
}

func TestPopulate_ToleratesFailures(t *testing.T) {
	eval := scripted.New()
	eval.ScriptCP(fenA, 20, "")
	eval.Fail(fenB)
	eval.ScriptCP(fenC, 18, "")

	s := New(eval, 12, 2, nil, nil)
	cache := evalcache.New()

	if err := s.Populate(context.Background(), cache, positions(fenA, fenB, fenC)); err != nil {
		t.Fatalf("Populate() error = %v, failures must not abort the batch", err)
	}

	r, ok := cache.Get(rules.Fingerprint(fenB))
	if !ok {
		t.Fatal("failed position has no cache record")
	}
	if r.Available() {
		t.Errorf("failed position record = %+v, want empty", r)
	}
}

func TestPopulate_Cancellation(t *testing.T) {
	eval := scripted.New()
	eval.ScriptCP(fenA, 20, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New(eval, 12, 1, nil, nil)
	err := s.Populate(ctx, evalcache.New(), positions(fenA, fenB))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Populate() error = %v, want context.Canceled", err)
	}
}

func TestPopulate_EmptyBatch(t *testing.T) {
	s := New(scripted.New(), 12, 2, nil, nil)
	if err := s.Populate(context.Background(), evalcache.New(), nil); err != nil {
		t.Errorf("Populate(empty) error = %v", err)
	}
}

func TestPopulate_KeepsBestMove(t *testing.T) {
	eval := scripted.New()
	eval.Script(fenA, engine.Result{CP: 31, BestMove: "e2e4"})

	s := New(eval, 12, 1, nil, nil)
	cache := evalcache.New()

	if err := s.Populate(context.Background(), cache, positions(fenA)); err != nil {
		t.Fatalf("Populate() error = %v", err)
	}
	r, _ := cache.Get(rules.Fingerprint(fenA))
	if r.BestMove != "e2e4" {
		t.Errorf("BestMove = %q, want e2e4", r.BestMove)
	}
}
