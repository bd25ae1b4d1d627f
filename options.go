package movegrade

import (
	"go.uber.org/zap"

	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/engine"
	"github.com/discochess/movegrade/internal/rules"
	"github.com/discochess/movegrade/internal/rules/chessrules"
	"github.com/discochess/movegrade/internal/stats"
)

// Option configures an Analyzer.
type Option interface {
	apply(*options)
}

// options holds the analyzer configuration.
type options struct {
	eval       engine.Evaluator
	oracle     rules.Oracle
	book       book.Book
	bookPlies  int
	depth      int
	workers    int
	thresholds Thresholds
	stats      stats.Collector
	logger     *zap.Logger
}

// defaultOptions returns the default configuration.
func defaultOptions() options {
	return options{
		oracle:     chessrules.New(),
		bookPlies:  10,
		depth:      18,
		thresholds: DefaultThresholds(),
		stats:      stats.NewNoop(),
		logger:     zap.NewNop(),
	}
}

// optionFunc wraps a function to implement Option.
type optionFunc func(*options)

// Compile-time check that optionFunc implements Option.
var _ Option = optionFunc(nil)

func (f optionFunc) apply(o *options) { f(o) }

// WithEngine sets the engine used to evaluate positions. Required.
func WithEngine(e engine.Evaluator) Option {
	return optionFunc(func(o *options) {
		o.eval = e
	})
}

// WithOracle sets the move-legality oracle.
// If not set, the built-in chess rules are used.
func WithOracle(r rules.Oracle) Option {
	return optionFunc(func(o *options) {
		o.oracle = r
	})
}

// WithBook sets the opening book consulted for early moves.
// If not set, no move is labeled as book.
func WithBook(b book.Book) Option {
	return optionFunc(func(o *options) {
		o.book = b
	})
}

// WithBookPlies sets how many plies of each game the book is
// consulted for. Default is 10.
func WithBookPlies(n int) Option {
	return optionFunc(func(o *options) {
		o.bookPlies = n
	})
}

// WithDepth sets the engine search depth.
// Default is 18.
func WithDepth(d int) Option {
	return optionFunc(func(o *options) {
		o.depth = d
	})
}

// WithWorkers sets the number of concurrent evaluation workers.
// Default is the smaller of GOMAXPROCS and the number of positions.
func WithWorkers(n int) Option {
	return optionFunc(func(o *options) {
		o.workers = n
	})
}

// WithThresholds sets the classification thresholds.
// If not set, DefaultThresholds is used.
func WithThresholds(t Thresholds) Option {
	return optionFunc(func(o *options) {
		o.thresholds = t
	})
}

// WithStats sets the stats collector.
// If not set, a no-op collector is used.
func WithStats(c stats.Collector) Option {
	return optionFunc(func(o *options) {
		o.stats = c
	})
}

// WithLogger sets the logger.
// If not set, a no-op logger is used.
func WithLogger(l *zap.Logger) Option {
	return optionFunc(func(o *options) {
		o.logger = l
	})
}
