// Package detect implements the tactical heuristics of the analysis
// pipeline: sacrifice detection, structural problem diagnosis, and the
// missed-win check. All reasoning goes through the rules oracle.
package detect

import (
	"fmt"

	"github.com/discochess/movegrade/internal/rules"
)

// capturedValue returns the material value the move wins immediately: the
// piece standing on the destination square, or one pawn for an en
// passant capture.
func capturedValue(o rules.Oracle, fen string, m rules.Move) (int, error) {
	victim, err := o.PieceAt(fen, m.To)
	if err != nil {
		return 0, err
	}
	if !victim.None() {
		return victim.Kind.Value(), nil
	}

	// A pawn changing file onto an empty square captures en passant.
	mover, err := o.PieceAt(fen, m.From)
	if err != nil {
		return 0, err
	}
	if mover.Kind == rules.Pawn && m.From.File() != m.To.File() {
		return rules.Pawn.Value(), nil
	}
	return 0, nil
}

// minAttackerValue returns the lowest material value among the attacking
// squares. King attackers are skipped when the target is defended, since
// a king cannot capture a defended piece.
func minAttackerValue(o rules.Oracle, fen string, attackers []rules.Square, defended bool) (int, bool, error) {
	min := 0
	found := false
	for _, sq := range attackers {
		p, err := o.PieceAt(fen, sq)
		if err != nil {
			return 0, false, err
		}
		if p.Kind == rules.King && defended {
			continue
		}
		v := p.Kind.Value()
		if !found || v < min {
			min = v
			found = true
		}
	}
	return min, found, nil
}

// findKing returns the square of the given side's king.
func findKing(o rules.Oracle, fen string, side rules.Color) (rules.Square, error) {
	for sq := rules.Square(0); sq < 64; sq++ {
		p, err := o.PieceAt(fen, sq)
		if err != nil {
			return 0, err
		}
		if p.Kind == rules.King && p.Color == side {
			return sq, nil
		}
	}
	return 0, fmt.Errorf("no %s king in %q", side, fen)
}
