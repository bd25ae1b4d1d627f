package rules

import "testing"

func TestFingerprint_DropsCounters(t *testing.T) {
	fen := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 3 12"
	want := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq -"
	if got := Fingerprint(fen); got != want {
		t.Errorf("Fingerprint() = %q, want %q", got, want)
	}
}

func TestFingerprint_CollapsesTranspositions(t *testing.T) {
	a := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 2 3"
	b := "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R w KQkq - 4 5"
	if Fingerprint(a) != Fingerprint(b) {
		t.Error("positions differing only in counters should share a fingerprint")
	}
}

func TestFingerprint_ShortInputUnchanged(t *testing.T) {
	fen := "8/8/8/8/8/8/8/8 w"
	if got := Fingerprint(fen); got != fen {
		t.Errorf("Fingerprint() = %q, want %q", got, fen)
	}
}

func TestSquare_String(t *testing.T) {
	tests := []struct {
		sq   Square
		want string
	}{
		{0, "a1"},
		{7, "h1"},
		{28, "e4"},
		{63, "h8"},
		{-1, "-"},
	}
	for _, tt := range tests {
		if got := tt.sq.String(); got != tt.want {
			t.Errorf("Square(%d).String() = %q, want %q", tt.sq, got, tt.want)
		}
	}
}

func TestSq_OffBoard(t *testing.T) {
	if got := Sq(-1, 4); got != -1 {
		t.Errorf("Sq(-1, 4) = %d, want -1", got)
	}
	if got := Sq(3, 8); got != -1 {
		t.Errorf("Sq(3, 8) = %d, want -1", got)
	}
	if got := Sq(4, 3); got != 28 {
		t.Errorf("Sq(4, 3) = %d, want 28 (e4)", got)
	}
}

func TestMove_UCI(t *testing.T) {
	m := Move{From: 12, To: 28}
	if got := m.UCI(); got != "e2e4" {
		t.Errorf("UCI() = %q, want %q", got, "e2e4")
	}

	promo := Move{From: 52, To: 60, Promo: Queen}
	if got := promo.UCI(); got != "e7e8q" {
		t.Errorf("UCI() = %q, want %q", got, "e7e8q")
	}
}

func TestPieceKind_Value(t *testing.T) {
	tests := []struct {
		kind PieceKind
		want int
	}{
		{Pawn, 1},
		{Knight, 3},
		{Bishop, 3},
		{Rook, 5},
		{Queen, 9},
		{King, 0},
		{NoPiece, 0},
	}
	for _, tt := range tests {
		if got := tt.kind.Value(); got != tt.want {
			t.Errorf("%s.Value() = %d, want %d", tt.kind, got, tt.want)
		}
	}
}
