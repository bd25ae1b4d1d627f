// Package memoryanalyzerfx provides an fx module for an in-memory
// analyzer backed by a scripted engine. Useful for testing.
package memoryanalyzerfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/movegrade"
	"github.com/discochess/movegrade/internal/book/membook"
	"github.com/discochess/movegrade/internal/engine/scripted"
	"github.com/discochess/movegrade/internal/stats"
	"github.com/discochess/movegrade/internal/stats/logger"
)

// Module provides an in-memory analyzer for testing.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("memoryanalyzer",
	fx.Provide(
		newStatsCollector,
		newEngine,
		newBook,
		newAnalyzer,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("movegrade.stats"))
}

func newEngine() *scripted.Evaluator {
	return scripted.New()
}

func newBook() *membook.Book {
	return membook.New()
}

// Params holds dependencies for creating the analyzer.
type Params struct {
	fx.In

	Logger    *zap.Logger
	Collector stats.Collector
	Engine    *scripted.Evaluator
	Book      *membook.Book
	Lifecycle fx.Lifecycle
}

// Result holds the provided analyzer plus its fakes.
type Result struct {
	fx.Out

	Analyzer *movegrade.Analyzer
	Engine   *scripted.Evaluator // Exposed for test setup
	Book     *membook.Book       // Exposed for test setup
}

func newAnalyzer(p Params) (Result, error) {
	analyzer, err := movegrade.New(
		movegrade.WithEngine(p.Engine),
		movegrade.WithBook(p.Book),
		movegrade.WithStats(p.Collector),
		movegrade.WithLogger(p.Logger.Named("movegrade")),
	)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return analyzer.Close()
		},
	})

	return Result{
		Analyzer: analyzer,
		Engine:   p.Engine,
		Book:     p.Book,
	}, nil
}
