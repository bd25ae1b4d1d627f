package detect

import (
	"testing"

	"github.com/discochess/movegrade/internal/rules"
	"github.com/discochess/movegrade/internal/rules/chessrules"
)

func mustDecode(t *testing.T, o rules.Oracle, fen, s string) rules.Move {
	t.Helper()
	m, err := o.DecodeMove(fen, s)
	if err != nil {
		t.Fatalf("DecodeMove(%q) error = %v", s, err)
	}
	return m
}

func TestSacrifice(t *testing.T) {
	o := chessrules.New()

	tests := []struct {
		name string
		fen  string
		move string
		want bool
	}{
		{
			name: "queen offered to a pawn",
			fen:  "k7/8/3p4/8/8/8/8/QK6 w - - 0 1",
			move: "a1e5",
			want: true,
		},
		{
			name: "even knight trade is not a sacrifice",
			fen:  "6k1/8/8/6n1/8/8/8/4N1K1 w - - 0 1",
			move: "e1f3",
			want: false,
		},
		{
			name: "capturing a free rook is not a sacrifice",
			fen:  "k7/8/8/3r4/8/8/8/3QK3 w - - 0 1",
			move: "d1d5",
			want: false,
		},
		{
			name: "bishop takes a defended pawn",
			fen:  "rnbq1rk1/ppp2ppp/8/8/8/3B4/PPP2PPP/RN1QK2R w KQ - 0 1",
			move: "d3h7",
			want: true,
		},
		{
			name: "quiet pawn push",
			fen:  "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			move: "e2e4",
			want: false,
		},
		{
			name: "king moves never count",
			fen:  "k7/8/8/8/8/8/8/1K6 w - - 0 1",
			move: "b1a2",
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := mustDecode(t, o, tt.fen, tt.move)
			got, err := Sacrifice(o, tt.fen, m)
			if err != nil {
				t.Fatalf("Sacrifice() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Sacrifice(%s in %q) = %v, want %v", tt.move, tt.fen, got, tt.want)
			}
		})
	}
}
