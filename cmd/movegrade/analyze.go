package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/discochess/movegrade"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [PGN file]",
	Short: "Grade every move of the games in a PGN file",
	Long: `Grade every move of the games in a PGN file.

Each move is labeled brilliant, best, excellent, good, inaccuracy,
mistake, blunder, miss, book, or forced, with a short comment and the
centipawn loss. A per-side summary follows each game.

Examples:
  # Grade the first game of a file
  movegrade analyze games.pgn --engine /usr/bin/stockfish --games 1

  # Machine-readable output
  movegrade analyze games.pgn --json`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var (
	maxGames   int
	outputJSON bool
)

func init() {
	analyzeCmd.Flags().IntVar(&maxGames, "games", 0, "max games to grade (0 = all)")
	analyzeCmd.Flags().BoolVar(&outputJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(analyzeCmd)
}

// gameReport is the JSON output record for one graded game.
type gameReport struct {
	White   string                    `json:"white,omitempty"`
	Black   string                    `json:"black,omitempty"`
	Result  string                    `json:"result,omitempty"`
	Moves   []movegrade.AnalysisEntry `json:"moves"`
	Summary movegrade.Summary         `json:"summary"`
}

func runAnalyze(cmd *cobra.Command, args []string) error {
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

		report := gameReport{
			White:   g.White,
			Black:   g.Black,
			Result:  g.Result,
			Moves:   entries,
			Summary: movegrade.Summarize(entries),
		}

		if outputJSON {
			if err := json.NewEncoder(os.Stdout).Encode(report); err != nil {
				return err
			}
			continue
		}
		printReport(i+1, report, report.Moves)
	}

	return nil
}

func printReport(n int, r gameReport, moves []movegrade.AnalysisEntry) {
	fmt.Printf("=== Game %d: %s vs %s (%s) ===\n", n, r.White, r.Black, r.Result)
	for _, e := range moves {
		printEntry(e)
	}
	fmt.Println()
	printSummary(r.Summary)
	fmt.Println()
}

func printEntry(e movegrade.AnalysisEntry) {
	moveNo := (e.Ply + 1) / 2
	dots := "."
	if e.Color == movegrade.Black {
		dots = "..."
	}

	line := fmt.Sprintf("%3d%s %-8s %-10s", moveNo, dots, e.Move, e.Quality)
	if e.EvalAfter != nil {
		line += fmt.Sprintf(" %+6.2f", *e.EvalAfter)
	} else {
		line += "      ?"
	}
	if e.Comment != "" {
		line += "  " + e.Comment
	}
	fmt.Println(line)
}

func printSummary(s movegrade.Summary) {
	fmt.Printf("%-8s %5s %5s %5s %5s %5s %9s\n",
		"", "moves", "best", "good", "inacc", "err", "avg loss")
	printSideSummary("White", s.White)
	printSideSummary("Black", s.Black)
}

func printSideSummary(name string, cs movegrade.ColorSummary) {
	best := cs.Counts[movegrade.QualityBrilliant] +
		cs.Counts[movegrade.QualityBest] +
		cs.Counts[movegrade.QualityExcellent]
	good := cs.Counts[movegrade.QualityGood] + cs.Counts[movegrade.QualityBook] +
		cs.Counts[movegrade.QualityForced]
	inacc := cs.Counts[movegrade.QualityInaccuracy] + cs.Counts[movegrade.QualityMiss]
	errs := cs.Counts[movegrade.QualityMistake] + cs.Counts[movegrade.QualityBlunder]

	fmt.Printf("%-8s %5d %5d %5d %5d %5d %9.1f\n",
		name, cs.Moves, best, good, inacc, errs, cs.MeanLoss)
}
