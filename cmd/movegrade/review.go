package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/movegrade"
)

var reviewCmd = &cobra.Command{
	Use:   "review [PGN file]",
	Short: "Show only the moves worth reviewing",
	Long: `Grade the games in a PGN file and print only the turning points:
inaccuracies, mistakes, blunders, misses, and brilliancies.

Examples:
  movegrade review games.pgn --engine /usr/bin/stockfish`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

var reviewJSON bool

func init() {
	reviewCmd.Flags().BoolVar(&reviewJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}
	defer log.Sync()

	games, err := loadGames(args[0], maxGames)
	if err != nil {
		return err
	}

	analyzer, err := newAnalyzer(log)
	if err != nil {
		return err
	}
	defer analyzer.Close()

	ctx := context.Background()
	for i, g := range games {
		entries, err := analyzer.Analyze(ctx, g.Game)
		if err != nil {
			return fmt.Errorf("game %d: %w", i+1, err)
		}
		worth := movegrade.Review(entries)

		if reviewJSON {
			if err := json.NewEncoder(os.Stdout).Encode(worth); err != nil {
				return err
			}
			continue
		}

		fmt.Printf("=== Game %d: %s vs %s (%s) ===\n", i+1, g.White, g.Black, g.Result)
		if len(worth) == 0 {
			fmt.Println("Nothing to review: a clean game.")
			fmt.Println()
			continue
		}
		for _, e := range worth {
			printEntry(e)
		}
		fmt.Println()
	}

	return nil
}
