// Package rules defines the chess rules oracle consumed by the analysis
// pipeline. The oracle answers questions about positions given as FEN
// strings; it does not hold state between calls.
package rules

import (
	"errors"
	"strings"
)

// ErrIllegalMove indicates a move that is not legal in its position.
var ErrIllegalMove = errors.New("rules: illegal move")

// ErrInvalidPosition indicates a FEN string that does not describe a
// valid position.
var ErrInvalidPosition = errors.New("rules: invalid position")

// Color identifies a side.
type Color int8

// The two sides.
const (
	White Color = iota
	Black
)

// Other returns the opposing side.
func (c Color) Other() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

// PieceKind identifies a piece type.
type PieceKind int8

// Piece types. NoPiece is the zero value.
const (
	NoPiece PieceKind = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

// Value returns the conventional material value of the piece kind in
// pawns. The king carries no material value.
func (k PieceKind) Value() int {
	switch k {
	case Pawn:
		return 1
	case Knight, Bishop:
		return 3
	case Rook:
		return 5
	case Queen:
		return 9
	default:
		return 0
	}
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// Piece is a colored piece. The zero value means "no piece".
type Piece struct {
	Kind  PieceKind
	Color Color
}

// None reports whether p is the empty piece.
func (p Piece) None() bool {
	return p.Kind == NoPiece
}

// Square is a board square, A1=0 through H8=63, rank-major.
type Square int8

// File returns the file index, 0 (a-file) through 7 (h-file).
func (s Square) File() int { return int(s) % 8 }

// Rank returns the rank index, 0 (first rank) through 7 (eighth rank).
func (s Square) Rank() int { return int(s) / 8 }

func (s Square) String() string {
	if s < 0 || s > 63 {
		return "-"
	}
	return string(rune('a'+s.File())) + string(rune('1'+s.Rank()))
}

// Sq builds a square from file and rank indexes. It returns -1 when the
// coordinates are off the board.
func Sq(file, rank int) Square {
	if file < 0 || file > 7 || rank < 0 || rank > 7 {
		return -1
	}
	return Square(rank*8 + file)
}

// Move is a move in coordinate form. Promo is NoPiece unless the move
// promotes a pawn.
type Move struct {
	From  Square
	To    Square
	Promo PieceKind
}

// UCI returns the move in UCI coordinate notation, e.g. "e2e4" or "e7e8q".
func (m Move) UCI() string {
	s := m.From.String() + m.To.String()
	switch m.Promo {
	case Knight:
		s += "n"
	case Bishop:
		s += "b"
	case Rook:
		s += "r"
	case Queen:
		s += "q"
	}
	return s
}

// Oracle answers rules questions about chess positions. Positions are
// identified by FEN strings; implementations parse on demand. An Oracle
// must be safe for concurrent use.
type Oracle interface {
	// StartingFEN returns the standard initial position.
	StartingFEN() string

	// DecodeMove parses a move given in UCI or standard algebraic
	// notation, relative to the position. The move must be legal.
	DecodeMove(fen, s string) (Move, error)

	// Apply plays a legal move and returns the resulting position.
	// Returns ErrIllegalMove if the move is not legal.
	Apply(fen string, m Move) (string, error)

	// LegalMoves returns every legal move in the position.
	LegalMoves(fen string) ([]Move, error)

	// SideToMove returns the side to move.
	SideToMove(fen string) (Color, error)

	// IsCheck reports whether the side to move is in check.
	IsCheck(fen string) (bool, error)

	// IsCheckmate reports whether the side to move is checkmated.
	IsCheckmate(fen string) (bool, error)

	// IsStalemate reports whether the side to move is stalemated.
	IsStalemate(fen string) (bool, error)

	// PieceAt returns the piece on the square, or the zero Piece.
	PieceAt(fen string, sq Square) (Piece, error)

	// Attackers returns the squares of all pieces of the given color
	// that attack sq. Pieces of the same color as the occupant of sq
	// are its defenders.
	Attackers(fen string, sq Square, by Color) ([]Square, error)

	// SAN renders a legal move in standard algebraic notation.
	SAN(fen string, m Move) (string, error)
}

// Fingerprint reduces a FEN to its first four fields (placement, side to
// move, castling rights, en passant square), so that positions reached by
// transposition collapse to one key. Move counters are deliberately
// dropped.
func Fingerprint(fen string) string {
	parts := strings.Fields(fen)
	if len(parts) > 4 {
		parts = parts[:4]
	}
	return strings.Join(parts, " ")
}
