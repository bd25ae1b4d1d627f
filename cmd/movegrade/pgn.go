package main

import (
	"fmt"
	"os"

	"github.com/notnil/chess"

	"github.com/discochess/movegrade"
)

// pgnGame is one game read from a PGN file, with the tags the CLI
// prints and the move list converted to coordinate notation.
type pgnGame struct {
	White  string
	Black  string
	Result string
	Game   movegrade.Game
}

// loadGames reads up to max games from a PGN file. max <= 0 means all.
func loadGames(path string, max int) ([]pgnGame, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening PGN: %w", err)
	}
	defer f.Close()

	var games []pgnGame
	scanner := chess.NewScanner(f)
	for scanner.Scan() {
		if max > 0 && len(games) >= max {
			break
		}
		g := scanner.Next()

		positions := g.Positions()
		moves := g.Moves()
		if len(positions) != len(moves)+1 {
			continue // truncated game
		}

		uci := make([]string, len(moves))
		for i, m := range moves {
			uci[i] = chess.UCINotation{}.Encode(positions[i], m)
		}

		games = append(games, pgnGame{
			White:  tagValue(g, "White"),
			Black:  tagValue(g, "Black"),
			Result: tagValue(g, "Result"),
			Game: movegrade.Game{
				StartFEN: tagValue(g, "FEN"),
				Moves:    uci,
			},
		})
	}

	if len(games) == 0 {
		return nil, fmt.Errorf("no games found in %s", path)
	}
	return games, nil
}

func tagValue(g *chess.Game, name string) string {
	if tp := g.GetTagPair(name); tp != nil {
		return tp.Value
	}
	return ""
}
