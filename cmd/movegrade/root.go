package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags.
	enginePath string
	bookPath   string
	depth      int
	workers    int
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "movegrade",
	Short: "Grade every move of a chess game with an engine",
	Long: `Movegrade replays finished chess games and labels every move from
brilliant down to blunder by comparing it against a UCI engine's
evaluation, with a short comment explaining each verdict.

Examples:
  # Grade all games in a PGN file
  movegrade analyze games.pgn --engine /usr/bin/stockfish

  # Show only the moves worth reviewing
  movegrade review games.pgn --engine /usr/bin/stockfish

  # Build an opening book from a master-games corpus
  movegrade bookbuild masters.pgn --output book.json.zst`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&enginePath, "engine", "e", "stockfish", "path to the UCI engine binary")
	rootCmd.PersistentFlags().StringVarP(&bookPath, "book", "b", "", "opening book file or gs://, s3:// URL (optional)")
	rootCmd.PersistentFlags().IntVarP(&depth, "depth", "d", 18, "engine search depth")
	rootCmd.PersistentFlags().IntVarP(&workers, "workers", "w", 0, "concurrent engine processes (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
}

// newLogger builds the CLI logger, honoring --verbose.
func newLogger() (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return log, nil
}
