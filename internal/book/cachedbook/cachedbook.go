// Package cachedbook wraps another book with LRU memoization, so each
// distinct position is looked up at most once per cache lifetime.
package cachedbook

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/rules"
)

// Compile-time check that Book implements book.Book.
var _ book.Book = (*Book)(nil)

// Book wraps another Book with caching.
type Book struct {
	underlying book.Book
	cache      *lru.Cache[string, bool]
}

// New creates a cached book wrapping the given book, memoizing up to
// capacity distinct positions.
func New(underlying book.Book, capacity int) (*Book, error) {
	cache, err := lru.New[string, bool](capacity)
	if err != nil {
		return nil, err
	}
	return &Book{
		underlying: underlying,
		cache:      cache,
	}, nil
}

// Lookup checks the cache first, falling through to the underlying book.
// Failed lookups are not cached.
func (b *Book) Lookup(ctx context.Context, fen string) (bool, error) {
	key := rules.Fingerprint(fen)

	if hit, ok := b.cache.Get(key); ok {
		return hit, nil
	}

	hit, err := b.underlying.Lookup(ctx, fen)
	if err != nil {
		return false, err
	}

	b.cache.Add(key, hit)
	return hit, nil
}

// Close closes the underlying book.
func (b *Book) Close() error {
	return b.underlying.Close()
}
