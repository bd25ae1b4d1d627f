// Package movegrade grades every move of a finished chess game by
// comparing it against an engine's evaluation, labeling each move from
// brilliant down to blunder with a short rationale.
//
// Example usage:
//
//	analyzer, err := movegrade.New(
//	    movegrade.WithEngine(eval),
//	    movegrade.WithDepth(18),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer analyzer.Close()
//
//	entries, err := analyzer.Analyze(ctx, movegrade.Game{
//	    Moves: []string{"e2e4", "e7e5", "g1f3"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range entries {
//	    fmt.Printf("%d. %s: %s\n", e.Ply, e.Move, e.Quality)
//	}
package movegrade

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/detect"
	"github.com/discochess/movegrade/internal/engine"
	"github.com/discochess/movegrade/internal/evalcache"
	"github.com/discochess/movegrade/internal/rules"
	"github.com/discochess/movegrade/internal/sched"
	"github.com/discochess/movegrade/internal/stats"
)

// Sentinel errors for well-defined error conditions.
var (
	// ErrClosed indicates the analyzer has been closed.
	ErrClosed = errors.New("movegrade: analyzer closed")

	// ErrNoEngine indicates no evaluation engine was provided.
	ErrNoEngine = errors.New("movegrade: no engine provided")

	// ErrIllegalMove indicates a game contains a move that cannot be
	// decoded or is not legal in its position.
	ErrIllegalMove = rules.ErrIllegalMove
)

// Analyzer grades the moves of finished games.
// An Analyzer is safe for concurrent use by multiple goroutines.
type Analyzer struct {
	oracle     rules.Oracle
	eval       engine.Evaluator
	book       book.Book
	bookPlies  int
	thresholds Thresholds
	scheduler  *sched.Scheduler
	stats      stats.Collector
	logger     *zap.Logger
	closed     atomic.Bool
}

// New creates a new Analyzer with the given options.
// An engine is required; everything else has sensible defaults.
func New(opts ...Option) (*Analyzer, error) {
	cfg := defaultOptions()
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	if cfg.eval == nil {
		return nil, ErrNoEngine
	}

	a := &Analyzer{
		oracle:     cfg.oracle,
		eval:       cfg.eval,
		book:       cfg.book,
		bookPlies:  cfg.bookPlies,
		thresholds: cfg.thresholds,
		scheduler:  sched.New(cfg.eval, cfg.depth, cfg.workers, cfg.logger, cfg.stats),
		stats:      cfg.stats,
		logger:     cfg.logger,
	}

	a.logger.Debug("analyzer initialized",
		zap.Int("depth", cfg.depth),
		zap.Int("bookPlies", cfg.bookPlies),
		zap.Bool("hasBook", cfg.book != nil),
	)

	return a, nil
}

// Analyze grades every move of a game and returns one entry per ply.
// The game is replayed first; an illegal or undecodable move fails the
// whole call with an error wrapping ErrIllegalMove. Evaluation failures
// for individual positions do not: the affected moves come back with
// the "unknown" label.
func (a *Analyzer) Analyze(ctx context.Context, g Game) ([]AnalysisEntry, error) {
	if a.closed.Load() {
		return nil, ErrClosed
	}

	start := time.Now()
	a.stats.IncCounter(stats.MetricGames, 1)

	fens, moves, err := rules.Enumerate(a.oracle, g.StartFEN, g.Moves)
	if err != nil {
		return nil, fmt.Errorf("replaying game: %w", err)
	}

	cache := evalcache.New()
	if err := a.scheduler.Populate(ctx, cache, uniquePositions(fens)); err != nil {
		return nil, fmt.Errorf("evaluating positions: %w", err)
	}

	entries := make([]AnalysisEntry, 0, len(moves))
	for i, m := range moves {
		entry, err := a.grade(ctx, fens[i], fens[i+1], m, i, cache)
		if err != nil {
			return nil, fmt.Errorf("grading move %d: %w", i+1, err)
		}
		entries = append(entries, entry)
	}

	a.stats.IncCounter(stats.MetricPositions, int64(len(fens)))
	a.stats.ObserveHistogram(stats.MetricAnalyzeSeconds, time.Since(start).Seconds())

	a.logger.Debug("game analyzed",
		zap.Int("plies", len(moves)),
		zap.Int("uniquePositions", cache.Len()),
		zap.Duration("elapsed", time.Since(start)),
	)

	return entries, nil
}

// grade classifies a single played move.
func (a *Analyzer) grade(ctx context.Context, fenBefore, fenAfter string, m rules.Move, ply int, cache *evalcache.Cache) (AnalysisEntry, error) {
	side, err := a.oracle.SideToMove(fenBefore)
	if err != nil {
		return AnalysisEntry{}, err
	}
	san, err := a.oracle.SAN(fenBefore, m)
	if err != nil {
		return AnalysisEntry{}, err
	}

	recBefore, _ := cache.Get(rules.Fingerprint(fenBefore))
	recAfter, _ := cache.Get(rules.Fingerprint(fenAfter))

	facts := moveFacts{
		side:       side,
		evalBefore: recBefore.Score,
		evalAfter:  recAfter.Score,
	}

	if facts.checkmate, err = a.oracle.IsCheckmate(fenAfter); err != nil {
		return AnalysisEntry{}, err
	}
	if facts.stalemate, err = a.oracle.IsStalemate(fenAfter); err != nil {
		return AnalysisEntry{}, err
	}

	// A move is forced only when it is the sole escape from check; a
	// sole legal move without check still gets graded on its merits.
	legal, err := a.oracle.LegalMoves(fenBefore)
	if err != nil {
		return AnalysisEntry{}, err
	}
	if len(legal) == 1 {
		if facts.forced, err = a.oracle.IsCheck(fenBefore); err != nil {
			return AnalysisEntry{}, err
		}
	}

	facts.book = a.inBook(ctx, fenBefore, ply)

	best := a.bestMove(fenBefore, recBefore.BestMove, m)
	if best != nil {
		if facts.bestSAN, err = a.oracle.SAN(fenBefore, *best); err != nil {
			return AnalysisEntry{}, err
		}
	}

	// Checkmate and book moves need no tactical inspection.
	if !facts.checkmate && !facts.book {
		if facts.diag, err = detect.Diagnose(a.oracle, fenBefore, m, fenAfter); err != nil {
			return AnalysisEntry{}, err
		}
		if facts.sacrifice, err = detect.Sacrifice(a.oracle, fenBefore, m); err != nil {
			return AnalysisEntry{}, err
		}
		facts.miss, err = detect.Miss(detect.MissParams{
			Oracle:       a.oracle,
			FENBefore:    fenBefore,
			BestMove:     best,
			EvalBefore:   facts.evalBefore,
			EvalAfter:    facts.evalAfter,
			Side:         side,
			HangsPiece:   facts.diag.Kind == detect.HangsPiece,
			MinLoss:      a.thresholds.MissMinLoss,
			MaxLoss:      a.thresholds.MissMaxLoss,
			MinAdvantage: a.thresholds.MissMinAdvantage,
		})
		if err != nil {
			return AnalysisEntry{}, err
		}
	}

	quality, comment, loss := classify(facts, a.thresholds)

	return AnalysisEntry{
		Ply:        ply + 1,
		Color:      Color(side.String()),
		Move:       san,
		Quality:    quality,
		Book:       facts.book,
		Comment:    comment,
		EvalBefore: pawns(facts.evalBefore),
		EvalAfter:  pawns(facts.evalAfter),
		BestMove:   facts.bestSAN,
		Loss:       loss,
	}, nil
}

// inBook consults the opening book for early plies. A book failure is
// logged and degrades to "not in book" rather than failing the game.
func (a *Analyzer) inBook(ctx context.Context, fen string, ply int) bool {
	if a.book == nil || ply >= a.bookPlies {
		return false
	}
	hit, err := a.book.Lookup(ctx, fen)
	if err != nil {
		a.stats.IncCounter(stats.MetricBookFailures, 1)
		a.logger.Warn("book lookup failed", zap.Int("ply", ply+1), zap.Error(err))
		return false
	}
	if hit {
		a.stats.IncCounter(stats.MetricBookHits, 1)
	}
	return hit
}

// bestMove decodes the engine's preferred move, or nil when it is
// unknown, unparseable, or identical to the played move.
func (a *Analyzer) bestMove(fenBefore, uci string, played rules.Move) *rules.Move {
	if uci == "" {
		return nil
	}
	m, err := a.oracle.DecodeMove(fenBefore, uci)
	if err != nil {
		a.logger.Warn("engine best move rejected", zap.String("move", uci), zap.Error(err))
		return nil
	}
	if m == played {
		return nil
	}
	return &m
}

// Close releases all resources associated with the analyzer.
// After Close, the analyzer should not be used.
func (a *Analyzer) Close() error {
	if !a.closed.CompareAndSwap(false, true) {
		return ErrClosed
	}

	if a.book != nil {
		if err := a.book.Close(); err != nil {
			return fmt.Errorf("closing book: %w", err)
		}
	}

	return nil
}

// uniquePositions collapses the position sequence into one evaluation
// task per fingerprint, keeping the first FEN seen for each.
func uniquePositions(fens []string) map[string]string {
	out := make(map[string]string, len(fens))
	for _, fen := range fens {
		fp := rules.Fingerprint(fen)
		if _, ok := out[fp]; !ok {
			out[fp] = fen
		}
	}
	return out
}

// pawns converts an optional centipawn score to pawns.
func pawns(cp *int) *float64 {
	if cp == nil {
		return nil
	}
	v := float64(*cp) / 100
	return &v
}
