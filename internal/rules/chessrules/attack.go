package chessrules

import (
	"github.com/notnil/chess"

	"github.com/discochess/movegrade/internal/rules"
)

// The library does not expose attack sets, so they are computed here by
// scanning outward from the target square. Pins are ignored on purpose:
// a pinned piece still defends the squares it attacks.

var knightOffsets = [8][2]int{
	{1, 2}, {2, 1}, {2, -1}, {1, -2},
	{-1, -2}, {-2, -1}, {-2, 1}, {-1, 2},
}

var kingOffsets = [8][2]int{
	{0, 1}, {1, 1}, {1, 0}, {1, -1},
	{0, -1}, {-1, -1}, {-1, 0}, {-1, 1},
}

var orthogonalDirs = [4][2]int{{0, 1}, {0, -1}, {1, 0}, {-1, 0}}

var diagonalDirs = [4][2]int{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}

// attackers returns the squares of all pieces of color by that attack sq
// in the given position.
func attackers(pos *chess.Position, sq rules.Square, by rules.Color) []rules.Square {
	var out []rules.Square
	file, rank := sq.File(), sq.Rank()

	has := func(cand rules.Square, kinds ...rules.PieceKind) bool {
		p := pieceAt(pos, cand)
		if p.None() || p.Color != by {
			return false
		}
		for _, k := range kinds {
			if p.Kind == k {
				return true
			}
		}
		return false
	}

	// Pawns attack diagonally forward, so a pawn attacking sq sits one
	// rank behind it from the pawn's point of view.
	pawnRank := rank - 1
	if by == rules.Black {
		pawnRank = rank + 1
	}
	for _, df := range []int{-1, 1} {
		if cand := rules.Sq(file+df, pawnRank); cand >= 0 && has(cand, rules.Pawn) {
			out = append(out, cand)
		}
	}

	for _, off := range knightOffsets {
		if cand := rules.Sq(file+off[0], rank+off[1]); cand >= 0 && has(cand, rules.Knight) {
			out = append(out, cand)
		}
	}

	for _, off := range kingOffsets {
		if cand := rules.Sq(file+off[0], rank+off[1]); cand >= 0 && has(cand, rules.King) {
			out = append(out, cand)
		}
	}

	out = append(out, slidingAttackers(pos, sq, by, orthogonalDirs, rules.Rook)...)
	out = append(out, slidingAttackers(pos, sq, by, diagonalDirs, rules.Bishop)...)

	return out
}

// slidingAttackers walks each direction until the first occupied square
// and reports it when it holds a matching slider (or queen) of color by.
func slidingAttackers(pos *chess.Position, sq rules.Square, by rules.Color, dirs [4][2]int, slider rules.PieceKind) []rules.Square {
	var out []rules.Square
	file, rank := sq.File(), sq.Rank()

	for _, dir := range dirs {
		for step := 1; ; step++ {
			cand := rules.Sq(file+dir[0]*step, rank+dir[1]*step)
			if cand < 0 {
				break
			}
			p := pieceAt(pos, cand)
			if p.None() {
				continue
			}
			if p.Color == by && (p.Kind == slider || p.Kind == rules.Queen) {
				out = append(out, cand)
			}
			break
		}
	}
	return out
}
