// Package book defines the opening book lookup interface.
package book

import "context"

// Book answers whether a position appears in a known-openings reference.
// Implementations must be safe for concurrent use.
type Book interface {
	// Lookup reports whether the position (given as FEN) is a known
	// book position. A lookup error is recoverable: callers degrade it
	// to "not book".
	Lookup(ctx context.Context, fen string) (bool, error)

	// Close releases any resources held by the book.
	Close() error
}
