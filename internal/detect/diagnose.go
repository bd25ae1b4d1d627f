package detect

import (
	"fmt"

	"github.com/discochess/movegrade/internal/rules"
)

// Kind identifies the structural problem a move created.
type Kind int

// Problem kinds, in diagnosis priority order. None is the zero value.
const (
	None Kind = iota
	AllowsMate
	WalksIntoCheck
	HangsPiece
	BadTrade
	LeavesHanging
	MissedCapture
)

func (k Kind) String() string {
	switch k {
	case AllowsMate:
		return "allows_checkmate"
	case WalksIntoCheck:
		return "walked_into_check"
	case HangsPiece:
		return "hanging_piece"
	case BadTrade:
		return "bad_trade"
	case LeavesHanging:
		return "leaves_piece_hanging"
	case MissedCapture:
		return "missed_capture"
	default:
		return "none"
	}
}

// Diagnosis is the structured explanation of a move's tactical flaw.
// The zero value means no structural problem was found.
type Diagnosis struct {
	Kind         Kind
	Description  string
	MaterialLost int
}

// Empty reports whether no problem was diagnosed.
func (d Diagnosis) Empty() bool {
	return d.Kind == None
}

// Diagnose inspects the position a move produced and explains what went
// wrong, if anything. Checks run in strict priority order and the first
// match wins; an empty diagnosis means the move may still be weak, just
// not for a structural reason.
func Diagnose(o rules.Oracle, fenBefore string, m rules.Move, fenAfter string) (Diagnosis, error) {
	side, err := o.SideToMove(fenBefore)
	if err != nil {
		return Diagnosis{}, err
	}
	mover, err := o.PieceAt(fenBefore, m.From)
	if err != nil {
		return Diagnosis{}, err
	}
	capVal, err := capturedValue(o, fenBefore, m)
	if err != nil {
		return Diagnosis{}, err
	}

	if d, ok, err := allowsMate(o, fenAfter); err != nil || ok {
		return d, err
	}
	if d, ok, err := walksIntoCheck(o, fenAfter, side); err != nil || ok {
		return d, err
	}
	if d, ok, err := hangsMoved(o, fenAfter, m, mover, side, capVal); err != nil || ok {
		return d, err
	}
	if d, ok, err := badTrade(o, fenAfter, m, mover, side, capVal); err != nil || ok {
		return d, err
	}
	if d, ok, err := leavesHanging(o, fenBefore, fenAfter, m, side); err != nil || ok {
		return d, err
	}
	if d, ok, err := missedCapture(o, fenBefore, m, side, capVal); err != nil || ok {
		return d, err
	}
	return Diagnosis{}, nil
}

// allowsMate scans the opponent's replies for an immediate checkmate.
func allowsMate(o rules.Oracle, fenAfter string) (Diagnosis, bool, error) {
	replies, err := o.LegalMoves(fenAfter)
	if err != nil {
		return Diagnosis{}, false, err
	}
	for _, reply := range replies {
		next, err := o.Apply(fenAfter, reply)
		if err != nil {
			return Diagnosis{}, false, err
		}
		mate, err := o.IsCheckmate(next)
		if err != nil {
			return Diagnosis{}, false, err
		}
		if mate {
			san, err := o.SAN(fenAfter, reply)
			if err != nil {
				return Diagnosis{}, false, err
			}
			return Diagnosis{
				Kind:        AllowsMate,
				Description: fmt.Sprintf("Allows checkmate with %s.", san),
			}, true, nil
		}
	}
	return Diagnosis{}, false, nil
}

// walksIntoCheck reports the mover's king being attacked after its own
// move. A legal-move oracle never lets this happen; it is kept for
// oracles that admit pseudo-legal input.
func walksIntoCheck(o rules.Oracle, fenAfter string, side rules.Color) (Diagnosis, bool, error) {
	king, err := findKing(o, fenAfter, side)
	if err != nil {
		return Diagnosis{}, false, err
	}
	checkers, err := o.Attackers(fenAfter, king, side.Other())
	if err != nil {
		return Diagnosis{}, false, err
	}
	if len(checkers) == 0 {
		return Diagnosis{}, false, nil
	}
	p, err := o.PieceAt(fenAfter, checkers[0])
	if err != nil {
		return Diagnosis{}, false, err
	}
	return Diagnosis{
		Kind:        WalksIntoCheck,
		Description: fmt.Sprintf("Leaves the king in check from the %s on %s.", p.Kind, checkers[0]),
	}, true, nil
}

// hangsMoved reports the moved piece standing attacked and undefended on
// its destination for a net material loss.
func hangsMoved(o rules.Oracle, fenAfter string, m rules.Move, mover rules.Piece, side rules.Color, capVal int) (Diagnosis, bool, error) {
	if mover.Kind == rules.King {
		return Diagnosis{}, false, nil
	}
	attacked, defended, err := coverage(o, fenAfter, m.To, side)
	if err != nil {
		return Diagnosis{}, false, err
	}
	lost := mover.Kind.Value() - capVal
	if !attacked || defended || lost <= 0 {
		return Diagnosis{}, false, nil
	}
	desc := fmt.Sprintf("Hangs the %s on %s.", mover.Kind, m.To)
	if capVal > 0 {
		desc = fmt.Sprintf("Hangs the %s on %s, winning only %d in return.", mover.Kind, m.To, capVal)
	}
	return Diagnosis{
		Kind:         HangsPiece,
		Description:  desc,
		MaterialLost: lost,
	}, true, nil
}

// badTrade reports the moved piece being defended yet still attackable
// by a strictly cheaper defended piece at a cost of two pawns or more.
// An undefended attacker is simply recaptured, so it does not count.
func badTrade(o rules.Oracle, fenAfter string, m rules.Move, mover rules.Piece, side rules.Color, capVal int) (Diagnosis, bool, error) {
	if mover.Kind == rules.King {
		return Diagnosis{}, false, nil
	}
	attackers, err := o.Attackers(fenAfter, m.To, side.Other())
	if err != nil {
		return Diagnosis{}, false, err
	}

	minAttacker := 0
	for _, sq := range attackers {
		p, err := o.PieceAt(fenAfter, sq)
		if err != nil {
			return Diagnosis{}, false, err
		}
		if p.Kind == rules.King || p.Kind.Value() >= mover.Kind.Value() {
			continue
		}
		backers, err := o.Attackers(fenAfter, sq, side.Other())
		if err != nil {
			return Diagnosis{}, false, err
		}
		if len(backers) == 0 {
			continue
		}
		if minAttacker == 0 || p.Kind.Value() < minAttacker {
			minAttacker = p.Kind.Value()
		}
	}
	if minAttacker == 0 {
		return Diagnosis{}, false, nil
	}
	lost := mover.Kind.Value() - minAttacker - capVal
	if lost < 2 {
		return Diagnosis{}, false, nil
	}
	return Diagnosis{
		Kind:         BadTrade,
		Description:  fmt.Sprintf("Loses material: the %s on %s can be taken by a lesser piece.", mover.Kind, m.To),
		MaterialLost: lost,
	}, true, nil
}

// leavesHanging reports another piece of minor-or-greater value losing
// its last defender as a side effect of the move.
func leavesHanging(o rules.Oracle, fenBefore, fenAfter string, m rules.Move, side rules.Color) (Diagnosis, bool, error) {
	for sq := rules.Square(0); sq < 64; sq++ {
		if sq == m.To {
			continue
		}
		p, err := o.PieceAt(fenAfter, sq)
		if err != nil {
			return Diagnosis{}, false, err
		}
		if p.None() || p.Color != side || p.Kind.Value() < rules.Knight.Value() {
			continue
		}

		attacked, defended, err := coverage(o, fenAfter, sq, side)
		if err != nil {
			return Diagnosis{}, false, err
		}
		if !attacked || defended {
			continue
		}

		// Only a problem the move created: the piece had a defender
		// before.
		defendersBefore, err := o.Attackers(fenBefore, sq, side)
		if err != nil {
			return Diagnosis{}, false, err
		}
		if len(defendersBefore) == 0 {
			continue
		}

		return Diagnosis{
			Kind:         LeavesHanging,
			Description:  fmt.Sprintf("Leaves the %s on %s undefended.", p.Kind, sq),
			MaterialLost: p.Kind.Value(),
		}, true, nil
	}
	return Diagnosis{}, false, nil
}

// missedCapture reports a free enemy piece the moved piece could have
// taken instead, worth more than whatever the move captured.
func missedCapture(o rules.Oracle, fenBefore string, m rules.Move, side rules.Color, capVal int) (Diagnosis, bool, error) {
	legal, err := o.LegalMoves(fenBefore)
	if err != nil {
		return Diagnosis{}, false, err
	}

	best := Diagnosis{}
	bestVal := 0
	for _, alt := range legal {
		if alt.From != m.From || alt == m {
			continue
		}
		victim, err := o.PieceAt(fenBefore, alt.To)
		if err != nil {
			return Diagnosis{}, false, err
		}
		if victim.None() || victim.Color != side.Other() || victim.Kind == rules.King {
			continue
		}
		if victim.Kind.Value() <= capVal || victim.Kind.Value() <= bestVal {
			continue
		}
		defenders, err := o.Attackers(fenBefore, alt.To, side.Other())
		if err != nil {
			return Diagnosis{}, false, err
		}
		if len(defenders) > 0 {
			continue
		}
		bestVal = victim.Kind.Value()
		best = Diagnosis{
			Kind:         MissedCapture,
			Description:  fmt.Sprintf("Misses a free %s on %s.", victim.Kind, alt.To),
			MaterialLost: victim.Kind.Value() - capVal,
		}
	}
	if best.Empty() {
		return Diagnosis{}, false, nil
	}
	return best, true, nil
}

// coverage reports whether the square is attacked by side's opponent
// and defended by side.
func coverage(o rules.Oracle, fen string, sq rules.Square, side rules.Color) (attacked, defended bool, err error) {
	attackers, err := o.Attackers(fen, sq, side.Other())
	if err != nil {
		return false, false, err
	}
	defenders, err := o.Attackers(fen, sq, side)
	if err != nil {
		return false, false, err
	}
	return len(attackers) > 0, len(defenders) > 0, nil
}
