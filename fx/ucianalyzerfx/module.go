// Package ucianalyzerfx provides an fx module for an analyzer backed by
// a UCI engine binary and an optional opening book file.
package ucianalyzerfx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/discochess/movegrade"
	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/book/cachedbook"
	"github.com/discochess/movegrade/internal/book/fenbook"
	"github.com/discochess/movegrade/internal/engine/ucieval"
	"github.com/discochess/movegrade/internal/stats"
	"github.com/discochess/movegrade/internal/stats/logger"
)

// Config holds configuration for the UCI-backed analyzer.
type Config struct {
	// EnginePath is the path to the UCI engine binary.
	EnginePath string

	// BookPath is the path to an opening book file. Empty disables
	// book lookups.
	BookPath string

	// Depth is the engine search depth. Default is 18.
	Depth int

	// Workers is the number of concurrent engine processes.
	// Default is GOMAXPROCS.
	Workers int

	// BookCacheSize is the number of book lookups to memoize.
	// Default is 1024.
	BookCacheSize int
}

// Module provides a UCI-backed analyzer.
// Requires a *zap.Logger to be provided.
var Module = fx.Module("ucianalyzer",
	fx.Provide(
		newStatsCollector,
		newAnalyzer,
	),
)

func newStatsCollector(log *zap.Logger) stats.Collector {
	return logger.New(log.Named("movegrade.stats"))
}

// Params holds dependencies for creating the analyzer.
type Params struct {
	fx.In

	Config    Config
	Logger    *zap.Logger
	Collector stats.Collector
	Lifecycle fx.Lifecycle
}

// Result holds the provided analyzer.
type Result struct {
	fx.Out

	Analyzer *movegrade.Analyzer
}

func newAnalyzer(p Params) (Result, error) {
	opts := []movegrade.Option{
		movegrade.WithEngine(ucieval.New(p.Config.EnginePath)),
		movegrade.WithStats(p.Collector),
		movegrade.WithLogger(p.Logger.Named("movegrade")),
	}

	if p.Config.Depth > 0 {
		opts = append(opts, movegrade.WithDepth(p.Config.Depth))
	}
	if p.Config.Workers > 0 {
		opts = append(opts, movegrade.WithWorkers(p.Config.Workers))
	}

	if p.Config.BookPath != "" {
		cacheSize := p.Config.BookCacheSize
		if cacheSize <= 0 {
			cacheSize = 1024
		}

		base, err := fenbook.Open(p.Config.BookPath)
		if err != nil {
			return Result{}, err
		}
		var bk book.Book = base
		if bk, err = cachedbook.New(base, cacheSize); err != nil {
			return Result{}, err
		}
		opts = append(opts, movegrade.WithBook(bk))
	}

	analyzer, err := movegrade.New(opts...)
	if err != nil {
		return Result{}, err
	}

	p.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return analyzer.Close()
		},
	})

	return Result{Analyzer: analyzer}, nil
}
