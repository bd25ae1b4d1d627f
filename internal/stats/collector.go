// Package stats provides a unified interface for collecting analysis
// pipeline metrics.
package stats

// Metric names used throughout the library.
const (
	// Pipeline metrics.
	MetricGames              = "movegrade_games_total"
	MetricPositions          = "movegrade_positions_total"
	MetricEvaluations        = "movegrade_evaluations_total"
	MetricEvaluationFailures = "movegrade_evaluation_failures_total"
	MetricCachePositions     = "movegrade_cache_positions"
	MetricAnalyzeSeconds     = "movegrade_analyze_seconds"

	// Opening book metrics.
	MetricBookHits     = "movegrade_book_hits_total"
	MetricBookFailures = "movegrade_book_failures_total"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
