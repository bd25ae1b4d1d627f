// Package sched fans position evaluations out across a bounded worker
// pool and fans the results into the shared evaluation cache.
package sched

import (
	"context"
	"runtime"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/discochess/movegrade/internal/engine"
	"github.com/discochess/movegrade/internal/evalcache"
	"github.com/discochess/movegrade/internal/stats"
)

// Scheduler evaluates batches of distinct positions. A single engine
// task failing writes an empty record and the batch continues; only
// cancellation aborts it.
type Scheduler struct {
	eval    engine.Evaluator
	depth   int
	workers int
	log     *zap.Logger
	stats   stats.Collector
}

// New creates a Scheduler. workers <= 0 means one worker per available
// CPU. A nil logger or collector falls back to a no-op.
func New(eval engine.Evaluator, depth, workers int, log *zap.Logger, collector stats.Collector) *Scheduler {
	if log == nil {
		log = zap.NewNop()
	}
	if collector == nil {
		collector = stats.NewNoop()
	}
	return &Scheduler{
		eval:    eval,
		depth:   depth,
		workers: workers,
		log:     log,
		stats:   collector,
	}
}

type task struct {
	fingerprint string
	fen         string
}

// Populate evaluates every position in the map (fingerprint -> FEN) and
// writes one record per fingerprint into the cache. It blocks until all
// tasks have completed or definitively failed. The returned error is
// non-nil only on cancellation, in which case the cache contents must be
// discarded.
func (s *Scheduler) Populate(ctx context.Context, cache *evalcache.Cache, positions map[string]string) error {
	if len(positions) == 0 {
		return nil
	}

	workers := s.workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(positions) {
		workers = len(positions)
	}

	g, ctx := errgroup.WithContext(ctx)
	tasks := make(chan task)

	g.Go(func() error {
		defer close(tasks)
		for fingerprint, fen := range positions {
			select {
			case tasks <- task{fingerprint: fingerprint, fen: fen}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for t := range tasks {
				s.stats.IncCounter(stats.MetricEvaluations, 1)

				res, err := s.eval.Evaluate(ctx, t.fen, s.depth)
				if err != nil {
					if ctx.Err() != nil {
						return ctx.Err()
					}
					// Recoverable: record the failure and move on.
					s.stats.IncCounter(stats.MetricEvaluationFailures, 1)
					s.log.Warn("evaluation failed",
						zap.String("fen", t.fen),
						zap.Error(err),
					)
					cache.Put(t.fingerprint, evalcache.Record{})
					continue
				}

				score := res.CP
				cache.Put(t.fingerprint, evalcache.Record{
					Score:    &score,
					BestMove: res.BestMove,
				})
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	s.stats.SetGauge(stats.MetricCachePositions, int64(cache.Len()))
	return nil
}
