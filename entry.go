package movegrade

// Game is one finished game to analyze: an ordered move list played out
// from StartFEN. Moves may be in UCI or standard algebraic notation.
type Game struct {
	// StartFEN is the initial position; empty means the standard
	// starting position.
	StartFEN string

	// Moves is the ordered move list.
	Moves []string
}

// Color identifies the side that played a move.
type Color string

// The two sides.
const (
	White Color = "white"
	Black Color = "black"
)

// AnalysisEntry is the per-move output record, appended in ply order.
type AnalysisEntry struct {
	// Ply is the 1-based half-move index.
	Ply int `json:"ply"`

	// Color is the side that played the move. Games starting from a
	// custom position may open with a Black move.
	Color Color `json:"color"`

	// Move is the played move in standard algebraic notation.
	Move string `json:"move"`

	// Quality is the final quality label.
	Quality Quality `json:"quality"`

	// Book reports whether the move was found in the opening book.
	Book bool `json:"is_book"`

	// Comment is the human-readable rationale for the label.
	Comment string `json:"comment,omitempty"`

	// EvalBefore and EvalAfter are the evaluations around the move, in
	// pawns from White's perspective. Nil when the evaluation failed.
	EvalBefore *float64 `json:"eval_before,omitempty"`
	EvalAfter  *float64 `json:"eval_after,omitempty"`

	// BestMove is the engine's preferred move in algebraic notation,
	// empty when it matches the played move or is unknown.
	BestMove string `json:"best_move,omitempty"`

	// Loss is the centipawn loss of the move, clamped non-negative.
	Loss int `json:"centipawn_loss"`
}

// reviewWorthy are the labels that deserve commentary in a game review.
var reviewWorthy = map[Quality]bool{
	QualityInaccuracy: true,
	QualityMistake:    true,
	QualityBlunder:    true,
	QualityBrilliant:  true,
	QualityMiss:       true,
}

// Review filters an analysis down to the moves worth reviewing:
// inaccuracies, mistakes, blunders, misses, and brilliancies.
func Review(entries []AnalysisEntry) []AnalysisEntry {
	var out []AnalysisEntry
	for _, e := range entries {
		if reviewWorthy[e.Quality] {
			out = append(out, e)
		}
	}
	return out
}
