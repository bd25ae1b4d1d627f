// Package membook provides an in-memory opening book for testing.
package membook

import (
	"context"
	"sync"

	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/rules"
)

// Compile-time check that Book implements book.Book.
var _ book.Book = (*Book)(nil)

// Book is an in-memory book for testing.
type Book struct {
	mu        sync.RWMutex
	positions map[string]struct{}
	err       error
	lookups   int
}

// New creates an empty in-memory book.
func New() *Book {
	return &Book{
		positions: make(map[string]struct{}),
	}
}

// Add marks a position as a book position (for test setup).
func (b *Book) Add(fen string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.positions[rules.Fingerprint(fen)] = struct{}{}
}

// SetErr makes every subsequent lookup fail with err (for test setup).
func (b *Book) SetErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

// Lookups returns the number of Lookup calls made.
func (b *Book) Lookups() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lookups
}

// Lookup reports whether the position was added.
func (b *Book) Lookup(ctx context.Context, fen string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lookups++
	if b.err != nil {
		return false, b.err
	}
	_, ok := b.positions[rules.Fingerprint(fen)]
	return ok, nil
}

// Close is a no-op for the in-memory book.
func (b *Book) Close() error {
	return nil
}
