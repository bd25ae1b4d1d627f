package fenbook

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/discochess/movegrade/internal/codec"
)

const (
	startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"
	e4FEN    = "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"
)

func TestNew_LoadsPositions(t *testing.T) {
	in := strings.NewReader(`{"source":"test","positions":["` + startFEN + `"]}`)

	b, err := New(in, codec.NewNoop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	if b.Source() != "test" {
		t.Errorf("Source() = %q, want %q", b.Source(), "test")
	}
	if b.Len() != 1 {
		t.Errorf("Len() = %d, want 1", b.Len())
	}
}

func TestLookup_IgnoresMoveCounters(t *testing.T) {
	in := strings.NewReader(`{"source":"test","positions":["` + startFEN + `"]}`)
	b, err := New(in, codec.NewNoop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	shifted := "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 5 20"
	hit, err := b.Lookup(ctx, shifted)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if !hit {
		t.Error("Lookup() = false for a position differing only in counters")
	}

	hit, err = b.Lookup(ctx, e4FEN)
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if hit {
		t.Error("Lookup() = true for a position not in the book")
	}
}

func TestWrite_Roundtrip(t *testing.T) {
	var buf bytes.Buffer
	fens := []string{startFEN, e4FEN, startFEN} // duplicate start

	if err := Write(&buf, codec.NewZstd(), "corpus", fens); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	b, err := New(&buf, codec.NewZstd())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	if b.Len() != 2 {
		t.Errorf("Len() = %d, want 2 after deduplication", b.Len())
	}
	if b.Source() != "corpus" {
		t.Errorf("Source() = %q, want %q", b.Source(), "corpus")
	}
	hit, err := b.Lookup(context.Background(), e4FEN)
	if err != nil || !hit {
		t.Errorf("Lookup(e4FEN) = %v, %v, want hit", hit, err)
	}
}

func TestOpen_PicksCodecByExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "book.json.gz")

	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := Write(f, codec.NewGzip(), "test", []string{startFEN}); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	b, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	defer b.Close()

	hit, err := b.Lookup(context.Background(), startFEN)
	if err != nil || !hit {
		t.Errorf("Lookup() = %v, %v, want hit", hit, err)
	}
}

func TestNew_Garbage(t *testing.T) {
	if _, err := New(strings.NewReader("not json"), codec.NewNoop()); err == nil {
		t.Error("New(garbage) error = nil, want parse error")
	}
}

func TestLookup_CanceledContext(t *testing.T) {
	in := strings.NewReader(`{"source":"test","positions":[]}`)
	b, err := New(in, codec.NewNoop())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := b.Lookup(ctx, startFEN); err == nil {
		t.Error("Lookup() error = nil with a canceled context")
	}
}
