package detect

import "github.com/discochess/movegrade/internal/rules"

// sacrificeThreshold is the minimum net material loss, in pawns, for a
// recapturable piece to count as offered rather than traded.
const sacrificeThreshold = 2

// Sacrifice reports whether the move deliberately offers material for
// compensation. Routine even trades are excluded before any loss
// arithmetic so that, say, a queen capturing a defended queen never
// registers.
func Sacrifice(o rules.Oracle, fenBefore string, m rules.Move) (bool, error) {
	mover, err := o.PieceAt(fenBefore, m.From)
	if err != nil {
		return false, err
	}
	if mover.None() || mover.Kind == rules.King {
		return false, nil
	}
	moverVal := mover.Kind.Value()

	capVal, err := capturedValue(o, fenBefore, m)
	if err != nil {
		return false, err
	}

	fenAfter, err := o.Apply(fenBefore, m)
	if err != nil {
		return false, err
	}

	attackers, err := o.Attackers(fenAfter, m.To, mover.Color.Other())
	if err != nil {
		return false, err
	}
	if len(attackers) == 0 {
		// Nothing can take the piece back.
		return false, nil
	}

	defenders, err := o.Attackers(fenAfter, m.To, mover.Color)
	if err != nil {
		return false, err
	}
	defended := len(defenders) > 0

	minAttacker, ok, err := minAttackerValue(o, fenAfter, attackers, defended)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	// An even exchange with nothing extra captured is a trade.
	if minAttacker == moverVal && capVal == 0 {
		return false, nil
	}

	switch {
	case !defended && capVal == 0 && moverVal >= rules.Knight.Value():
		// A minor piece or better left en prise.
		return true, nil
	case minAttacker < moverVal && moverVal-minAttacker-capVal >= sacrificeThreshold:
		// Recapturable by a cheaper piece at a real material cost.
		return true, nil
	case capVal > 0 && capVal-moverVal <= -sacrificeThreshold && !defended:
		// Captured something, but the piece gave back much more.
		return true, nil
	}
	return false, nil
}
