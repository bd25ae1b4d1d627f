package movegrade_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/discochess/movegrade"
	"github.com/discochess/movegrade/internal/book/membook"
	"github.com/discochess/movegrade/internal/engine/scripted"
	"github.com/discochess/movegrade/internal/rules"
	"github.com/discochess/movegrade/internal/rules/chessrules"
)

// replay runs the move list through the oracle and returns every
// position, so tests can script evaluations for the whole line.
func replay(t *testing.T, startFEN string, moves []string) []string {
	t.Helper()
	fens, _, err := rules.Enumerate(chessrules.New(), startFEN, moves)
	if err != nil {
		t.Fatalf("Enumerate() error = %v", err)
	}
	return fens
}

// scriptLine scripts a flat evaluation for every position of a game,
// with each position's best move being the move actually played.
func scriptLine(eval *scripted.Evaluator, fens []string, moves []string, cp int) {
	for i, fen := range fens {
		best := ""
		if i < len(moves) {
			best = moves[i]
		}
		eval.ScriptCP(fen, cp, best)
	}
}

// newBook builds an in-memory book containing the given positions.
func newBook(t *testing.T, fens ...string) *membook.Book {
	t.Helper()
	b := membook.New()
	for _, fen := range fens {
		b.Add(fen)
	}
	return b
}

func TestNew_RequiresEngine(t *testing.T) {
	_, err := movegrade.New()
	if !errors.Is(err, movegrade.ErrNoEngine) {
		t.Errorf("New() error = %v, want ErrNoEngine", err)
	}
}

func TestAnalyzer_ScholarsMate(t *testing.T) {
	moves := []string{"e2e4", "e7e5", "f1c4", "b8c6", "d1h5", "g8f6", "h5f7"}
	fens := replay(t, "", moves)

	eval := scripted.New()
	scriptLine(eval, fens, moves, 30)

	analyzer, err := movegrade.New(movegrade.WithEngine(eval))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{Moves: moves})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if len(entries) != len(moves) {
		t.Fatalf("len(entries) = %d, want %d", len(entries), len(moves))
	}
	for i, e := range entries {
		if e.Ply != i+1 {
			t.Errorf("entries[%d].Ply = %d, want %d", i, e.Ply, i+1)
		}
	}

	last := entries[len(entries)-1]
	if last.Move != "Qxf7#" {
		t.Errorf("last move = %q, want Qxf7#", last.Move)
	}
	if last.Quality != movegrade.QualityBest {
		t.Errorf("mating move quality = %s, want best", last.Quality)
	}
	if !strings.Contains(last.Comment, "Checkmate") {
		t.Errorf("mating move comment = %q, want a checkmate remark", last.Comment)
	}
}

func TestAnalyzer_BookMoves(t *testing.T) {
	moves := []string{"e2e4", "e7e5"}
	fens := replay(t, "", moves)

	eval := scripted.New()
	scriptLine(eval, fens, moves, 25)

	book := newBook(t, fens[0], fens[1])

	analyzer, err := movegrade.New(
		movegrade.WithEngine(eval),
		movegrade.WithBook(book),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{Moves: moves})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	for i, e := range entries {
		if e.Quality != movegrade.QualityBook || !e.Book {
			t.Errorf("entries[%d] = %s (book=%v), want a book move", i, e.Quality, e.Book)
		}
	}
}

func TestAnalyzer_BookPliesLimit(t *testing.T) {
	moves := []string{"e2e4", "e7e5", "g1f3"}
	fens := replay(t, "", moves)

	eval := scripted.New()
	scriptLine(eval, fens, moves, 25)

	// Every position is in the book, but only the first ply may use it.
	book := newBook(t, fens...)

	analyzer, err := movegrade.New(
		movegrade.WithEngine(eval),
		movegrade.WithBook(book),
		movegrade.WithBookPlies(1),
	)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{Moves: moves})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if entries[0].Quality != movegrade.QualityBook {
		t.Errorf("entries[0] = %s, want book", entries[0].Quality)
	}
	for i := 1; i < len(entries); i++ {
		if entries[i].Quality == movegrade.QualityBook {
			t.Errorf("entries[%d] = book beyond the ply limit", i)
		}
	}
}

func TestAnalyzer_TranspositionEvaluatedOnce(t *testing.T) {
	moves := []string{"g1f3", "b8c6", "f3g1", "c6b8"}
	fens := replay(t, "", moves)

	eval := scripted.New()
	scriptLine(eval, fens, moves, 0)

	analyzer, err := movegrade.New(movegrade.WithEngine(eval))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	if _, err := analyzer.Analyze(context.Background(), movegrade.Game{Moves: moves}); err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	// The final position transposes back to the start; one evaluation
	// covers both.
	if n := eval.Calls(fens[0]); n != 1 {
		t.Errorf("Calls(start) = %d, want 1", n)
	}
}

func TestAnalyzer_EvalFailureYieldsUnknown(t *testing.T) {
	moves := []string{"e2e4", "e7e5"}
	fens := replay(t, "", moves)

	eval := scripted.New()
	eval.ScriptCP(fens[0], 20, "e2e4")
	eval.ScriptCP(fens[1], 25, "e7e5")
	eval.Fail(fens[2])

	analyzer, err := movegrade.New(movegrade.WithEngine(eval))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{Moves: moves})
	if err != nil {
		t.Fatalf("Analyze() error = %v, one failed position must not abort", err)
	}

	if entries[0].Quality == movegrade.QualityUnknown {
		t.Error("entries[0] = unknown despite both evaluations present")
	}
	if entries[1].Quality != movegrade.QualityUnknown {
		t.Errorf("entries[1] = %s, want unknown", entries[1].Quality)
	}
	if entries[1].EvalAfter != nil {
		t.Errorf("entries[1].EvalAfter = %v, want nil", *entries[1].EvalAfter)
	}
}

func TestAnalyzer_ForcedMove(t *testing.T) {
	start := "7k/6Q1/8/8/8/8/8/K7 b - - 0 1"

	analyzer, err := movegrade.New(movegrade.WithEngine(scripted.New()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{
		StartFEN: start,
		Moves:    []string{"h8g7"},
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if entries[0].Quality != movegrade.QualityForced {
		t.Errorf("quality = %s, want forced", entries[0].Quality)
	}
	if entries[0].Move != "Kxg7" {
		t.Errorf("move = %q, want Kxg7", entries[0].Move)
	}
	if entries[0].Color != movegrade.Black {
		t.Errorf("color = %s, want black", entries[0].Color)
	}
}

func TestAnalyzer_SoleLegalMoveWithoutCheck(t *testing.T) {
	// Black is not in check but has only bxa6; zugzwang is not a forced
	// move, so the move is graded on its evaluation.
	start := "7k/1p3K1p/PP5P/8/8/8/8/8 b - - 0 1"
	moves := []string{"b7a6"}
	fens := replay(t, start, moves)

	eval := scripted.New()
	scriptLine(eval, fens, moves, 0)

	analyzer, err := movegrade.New(movegrade.WithEngine(eval))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{
		StartFEN: start,
		Moves:    moves,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if entries[0].Quality == movegrade.QualityForced {
		t.Fatal("quality = forced for a sole legal move with no check")
	}
	if entries[0].Quality != movegrade.QualityBest {
		t.Errorf("quality = %s, want best at zero loss", entries[0].Quality)
	}
}

func TestAnalyzer_BrilliantSacrifice(t *testing.T) {
	start := "k7/8/3p4/8/8/8/8/QK6 w - - 0 1"
	moves := []string{"a1e5"}
	fens := replay(t, start, moves)

	eval := scripted.New()
	eval.ScriptCP(fens[0], 100, "a1e5")
	eval.ScriptCP(fens[1], 95, "")

	analyzer, err := movegrade.New(movegrade.WithEngine(eval))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{
		StartFEN: start,
		Moves:    moves,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if entries[0].Quality != movegrade.QualityBrilliant {
		t.Errorf("quality = %s, want brilliant", entries[0].Quality)
	}
}

func TestAnalyzer_StalemateFromWinningPosition(t *testing.T) {
	start := "k7/8/8/8/8/8/2Q5/K7 w - - 0 1"
	moves := []string{"c2c7"}
	fens := replay(t, start, moves)

	eval := scripted.New()
	eval.ScriptCP(fens[0], 600, "")
	eval.ScriptCP(fens[1], 0, "")

	analyzer, err := movegrade.New(movegrade.WithEngine(eval))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	entries, err := analyzer.Analyze(context.Background(), movegrade.Game{
		StartFEN: start,
		Moves:    moves,
	})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	e := entries[0]
	if e.Quality != movegrade.QualityMistake {
		t.Errorf("quality = %s, want mistake", e.Quality)
	}
	if !strings.Contains(e.Comment, "Stalemate") {
		t.Errorf("comment = %q, want a stalemate remark", e.Comment)
	}
}

func TestAnalyzer_IllegalGame(t *testing.T) {
	analyzer, err := movegrade.New(movegrade.WithEngine(scripted.New()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	_, err = analyzer.Analyze(context.Background(), movegrade.Game{
		Moves: []string{"e2e4", "e2e4"},
	})
	if !errors.Is(err, movegrade.ErrIllegalMove) {
		t.Errorf("Analyze() error = %v, want ErrIllegalMove", err)
	}
}

func TestAnalyzer_Close(t *testing.T) {
	analyzer, err := movegrade.New(movegrade.WithEngine(scripted.New()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if err := analyzer.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if err := analyzer.Close(); !errors.Is(err, movegrade.ErrClosed) {
		t.Errorf("second Close() error = %v, want ErrClosed", err)
	}
	if _, err := analyzer.Analyze(context.Background(), movegrade.Game{}); !errors.Is(err, movegrade.ErrClosed) {
		t.Errorf("Analyze() after Close error = %v, want ErrClosed", err)
	}
}

func TestAnalyzer_Canceled(t *testing.T) {
	analyzer, err := movegrade.New(movegrade.WithEngine(scripted.New()))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer analyzer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = analyzer.Analyze(ctx, movegrade.Game{Moves: []string{"e2e4"}})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Analyze() error = %v, want context.Canceled", err)
	}
}
