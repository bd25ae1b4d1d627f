package rules

import "fmt"

// Enumerate replays a move list from the starting position and returns
// the full position sequence along with the decoded moves. The returned
// FEN slice always has one more element than the move list: fens[i] is
// the position move i is played from, fens[len(moves)] is the final
// position.
//
// Moves may be given in UCI or algebraic notation. The first move that
// fails to decode or is illegal aborts enumeration with an error
// wrapping ErrIllegalMove.
func Enumerate(o Oracle, startFEN string, moves []string) ([]string, []Move, error) {
	if startFEN == "" {
		startFEN = o.StartingFEN()
	}

	fens := make([]string, 0, len(moves)+1)
	fens = append(fens, startFEN)

	decoded := make([]Move, 0, len(moves))
	fen := startFEN

	for i, s := range moves {
		m, err := o.DecodeMove(fen, s)
		if err != nil {
			return nil, nil, fmt.Errorf("move %d (%q): %w", i+1, s, err)
		}
		next, err := o.Apply(fen, m)
		if err != nil {
			return nil, nil, fmt.Errorf("move %d (%q): %w", i+1, s, err)
		}
		decoded = append(decoded, m)
		fens = append(fens, next)
		fen = next
	}

	return fens, decoded, nil
}
