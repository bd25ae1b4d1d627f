// Package fenbook implements an opening book backed by a JSON position
// set, optionally compressed. The file format is a single object:
//
//	{"source": "lichess masters", "positions": ["<fen>", ...]}
//
// Positions are matched on their first four FEN fields, so move
// counters never affect lookups.
package fenbook

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/discochess/movegrade/internal/book"
	"github.com/discochess/movegrade/internal/codec"
	"github.com/discochess/movegrade/internal/rules"
)

// Compile-time check that Book implements book.Book.
var _ book.Book = (*Book)(nil)

// file is the on-disk book format.
type file struct {
	Source    string   `json:"source"`
	Positions []string `json:"positions"`
}

// Book holds the position set in memory. Immutable after load.
type Book struct {
	source    string
	positions map[string]struct{}
}

// Open loads a book file from disk, decompressing it with the codec
// matching its extension.
func Open(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening book: %w", err)
	}
	defer f.Close()

	return New(f, codec.ByExtension(path))
}

// New loads a book from r, decompressed through c.
func New(r io.Reader, c codec.Codec) (*Book, error) {
	dec, err := c.Reader(r)
	if err != nil {
		return nil, fmt.Errorf("decompressing book: %w", err)
	}
	defer dec.Close()

	var bf file
	if err := json.NewDecoder(dec).Decode(&bf); err != nil {
		return nil, fmt.Errorf("decoding book: %w", err)
	}

	b := &Book{
		source:    bf.Source,
		positions: make(map[string]struct{}, len(bf.Positions)),
	}
	for _, fen := range bf.Positions {
		b.positions[rules.Fingerprint(fen)] = struct{}{}
	}
	return b, nil
}

// Source returns the book's declared source, if any.
func (b *Book) Source() string {
	return b.source
}

// Len returns the number of distinct positions in the book.
func (b *Book) Len() int {
	return len(b.positions)
}

// Lookup reports whether the position is in the book.
func (b *Book) Lookup(ctx context.Context, fen string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	_, ok := b.positions[rules.Fingerprint(fen)]
	return ok, nil
}

// Close is a no-op; the book holds no external resources.
func (b *Book) Close() error {
	return nil
}

// Write writes a book file containing the given positions to w,
// compressed through c. Duplicate positions collapse to one entry.
func Write(w io.Writer, c codec.Codec, source string, fens []string) error {
	seen := make(map[string]struct{}, len(fens))
	out := make([]string, 0, len(fens))
	for _, fen := range fens {
		key := rules.Fingerprint(fen)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, key)
	}

	enc, err := c.Writer(w)
	if err != nil {
		return fmt.Errorf("compressing book: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(file{Source: source, Positions: out}); err != nil {
		enc.Close()
		return fmt.Errorf("encoding book: %w", err)
	}
	return enc.Close()
}
