package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/notnil/chess"
	"github.com/spf13/cobra"

	"github.com/discochess/movegrade/internal/book/fenbook"
	"github.com/discochess/movegrade/internal/codec"
)

var bookbuildCmd = &cobra.Command{
	Use:   "bookbuild [PGN file]",
	Short: "Build an opening book from a PGN corpus",
	Long: `Build an opening book from the early moves of a PGN corpus.

The first plies of every game are collected into a book file that the
analyze and review commands consult through --book. The output is
compressed according to its extension (.zst, .gz, or none).

Examples:
  movegrade bookbuild masters.pgn --output book.json.zst --plies 16`,
	Args: cobra.ExactArgs(1),
	RunE: runBookbuild,
}

var (
	bookOutput string
	bookPlies  int
)

func init() {
	bookbuildCmd.Flags().StringVarP(&bookOutput, "output", "o", "book.json.zst", "output book file")
	bookbuildCmd.Flags().IntVar(&bookPlies, "plies", 16, "plies of each game to include")
	rootCmd.AddCommand(bookbuildCmd)
}

func runBookbuild(cmd *cobra.Command, args []string) error {
	fens, games, err := collectOpenings(args[0], bookPlies)
	if err != nil {
		return err
	}

	out, err := os.Create(bookOutput)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer out.Close()

	source := filepath.Base(args[0])
	if err := fenbook.Write(out, codec.ByExtension(bookOutput), source, fens); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing output: %w", err)
	}

	fmt.Printf("Wrote %s from %d games (%d positions collected)\n", bookOutput, games, len(fens))
	return nil
}

// collectOpenings gathers the positions of the first plies of every
// game in a PGN file. The positions a move is played FROM are recorded,
// so a lookup on ply i hits when that opening was seen in the corpus.
func collectOpenings(path string, plies int) ([]string, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening PGN: %w", err)
	}
	defer f.Close()

	var fens []string
	games := 0
	scanner := chess.NewScanner(f)
	for scanner.Scan() {
		g := scanner.Next()
		games++

		positions := g.Positions()
		n := len(positions) - 1 // skip the position after the last move
		if n > plies {
			n = plies
		}
		for i := 0; i < n; i++ {
			fens = append(fens, positions[i].String())
		}
	}

	if games == 0 {
		return nil, 0, fmt.Errorf("no games found in %s", path)
	}
	return fens, games, nil
}
