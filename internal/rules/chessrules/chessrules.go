// Package chessrules implements the rules oracle on top of
// github.com/notnil/chess.
package chessrules

import (
	"fmt"

	"github.com/notnil/chess"

	"github.com/discochess/movegrade/internal/rules"
)

const startingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Compile-time check that Oracle implements rules.Oracle.
var _ rules.Oracle = (*Oracle)(nil)

// Oracle is a stateless rules.Oracle backed by notnil/chess. Positions
// are parsed from FEN on every call.
type Oracle struct{}

// New returns a new Oracle.
func New() *Oracle {
	return &Oracle{}
}

// StartingFEN returns the standard initial position.
func (o *Oracle) StartingFEN() string {
	return startingFEN
}

// DecodeMove parses a move in UCI or standard algebraic notation and
// verifies it is legal in the position.
func (o *Oracle) DecodeMove(fen, s string) (rules.Move, error) {
	pos, err := parse(fen)
	if err != nil {
		return rules.Move{}, err
	}

	if cm, err := (chess.UCINotation{}).Decode(pos, s); err == nil {
		m := fromChessMove(cm)
		if _, ok := findLegal(pos, m); !ok {
			return rules.Move{}, fmt.Errorf("%q: %w", s, rules.ErrIllegalMove)
		}
		return m, nil
	}

	cm, err := (chess.AlgebraicNotation{}).Decode(pos, s)
	if err != nil {
		return rules.Move{}, fmt.Errorf("%q: %w", s, rules.ErrIllegalMove)
	}
	return fromChessMove(cm), nil
}

// Apply plays a legal move and returns the resulting FEN.
func (o *Oracle) Apply(fen string, m rules.Move) (string, error) {
	pos, err := parse(fen)
	if err != nil {
		return "", err
	}
	cm, ok := findLegal(pos, m)
	if !ok {
		return "", fmt.Errorf("%s: %w", m.UCI(), rules.ErrIllegalMove)
	}
	return pos.Update(cm).String(), nil
}

// LegalMoves returns every legal move in the position.
func (o *Oracle) LegalMoves(fen string) ([]rules.Move, error) {
	pos, err := parse(fen)
	if err != nil {
		return nil, err
	}
	valid := pos.ValidMoves()
	out := make([]rules.Move, len(valid))
	for i, cm := range valid {
		out[i] = fromChessMove(cm)
	}
	return out, nil
}

// SideToMove returns the side to move.
func (o *Oracle) SideToMove(fen string) (rules.Color, error) {
	pos, err := parse(fen)
	if err != nil {
		return rules.White, err
	}
	return fromChessColor(pos.Turn()), nil
}

// IsCheck reports whether the side to move is in check.
func (o *Oracle) IsCheck(fen string) (bool, error) {
	pos, err := parse(fen)
	if err != nil {
		return false, err
	}
	side := fromChessColor(pos.Turn())
	king, ok := kingSquare(pos, side)
	if !ok {
		return false, nil
	}
	return len(attackers(pos, king, side.Other())) > 0, nil
}

// IsCheckmate reports whether the side to move is checkmated.
func (o *Oracle) IsCheckmate(fen string) (bool, error) {
	pos, err := parse(fen)
	if err != nil {
		return false, err
	}
	return pos.Status() == chess.Checkmate, nil
}

// IsStalemate reports whether the side to move is stalemated.
func (o *Oracle) IsStalemate(fen string) (bool, error) {
	pos, err := parse(fen)
	if err != nil {
		return false, err
	}
	return pos.Status() == chess.Stalemate, nil
}

// PieceAt returns the piece on the square.
func (o *Oracle) PieceAt(fen string, sq rules.Square) (rules.Piece, error) {
	pos, err := parse(fen)
	if err != nil {
		return rules.Piece{}, err
	}
	return pieceAt(pos, sq), nil
}

// Attackers returns the squares of all pieces of color by that attack sq.
func (o *Oracle) Attackers(fen string, sq rules.Square, by rules.Color) ([]rules.Square, error) {
	pos, err := parse(fen)
	if err != nil {
		return nil, err
	}
	return attackers(pos, sq, by), nil
}

// SAN renders a legal move in standard algebraic notation.
func (o *Oracle) SAN(fen string, m rules.Move) (string, error) {
	pos, err := parse(fen)
	if err != nil {
		return "", err
	}
	cm, ok := findLegal(pos, m)
	if !ok {
		return "", fmt.Errorf("%s: %w", m.UCI(), rules.ErrIllegalMove)
	}
	return (chess.AlgebraicNotation{}).Encode(pos, cm), nil
}

func parse(fen string) (*chess.Position, error) {
	pos := &chess.Position{}
	if err := pos.UnmarshalText([]byte(fen)); err != nil {
		return nil, fmt.Errorf("%q: %w", fen, rules.ErrInvalidPosition)
	}
	return pos, nil
}

// findLegal matches m against the position's legal moves so that methods
// operate on fully tagged library moves.
func findLegal(pos *chess.Position, m rules.Move) (*chess.Move, bool) {
	for _, cm := range pos.ValidMoves() {
		if fromChessMove(cm) == m {
			return cm, true
		}
	}
	return nil, false
}

func pieceAt(pos *chess.Position, sq rules.Square) rules.Piece {
	p := pos.Board().Piece(chess.Square(sq))
	if p == chess.NoPiece {
		return rules.Piece{}
	}
	return rules.Piece{
		Kind:  fromChessPieceType(p.Type()),
		Color: fromChessColor(p.Color()),
	}
}

func kingSquare(pos *chess.Position, side rules.Color) (rules.Square, bool) {
	for sq := rules.Square(0); sq < 64; sq++ {
		p := pieceAt(pos, sq)
		if p.Kind == rules.King && p.Color == side {
			return sq, true
		}
	}
	return 0, false
}

func fromChessMove(cm *chess.Move) rules.Move {
	return rules.Move{
		From:  rules.Square(cm.S1()),
		To:    rules.Square(cm.S2()),
		Promo: fromChessPieceType(cm.Promo()),
	}
}

func fromChessColor(c chess.Color) rules.Color {
	if c == chess.White {
		return rules.White
	}
	return rules.Black
}

func fromChessPieceType(t chess.PieceType) rules.PieceKind {
	switch t {
	case chess.Pawn:
		return rules.Pawn
	case chess.Knight:
		return rules.Knight
	case chess.Bishop:
		return rules.Bishop
	case chess.Rook:
		return rules.Rook
	case chess.Queen:
		return rules.Queen
	case chess.King:
		return rules.King
	default:
		return rules.NoPiece
	}
}
