package cachedbook

import (
	"context"
	"errors"
	"testing"

	"github.com/discochess/movegrade/internal/book/membook"
)

const startFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

func TestLookup_Memoizes(t *testing.T) {
	mem := membook.New()
	mem.Add(startFEN)

	b, err := New(mem, 16)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		hit, err := b.Lookup(ctx, startFEN)
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if !hit {
			t.Fatal("Lookup() = false, want true")
		}
	}

	if n := mem.Lookups(); n != 1 {
		t.Errorf("underlying Lookups() = %d, want 1", n)
	}
}

func TestLookup_CachesMissesToo(t *testing.T) {
	mem := membook.New()

	b, err := New(mem, 16)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		hit, err := b.Lookup(ctx, startFEN)
		if err != nil {
			t.Fatalf("Lookup() error = %v", err)
		}
		if hit {
			t.Fatal("Lookup() = true, want false")
		}
	}

	if n := mem.Lookups(); n != 1 {
		t.Errorf("underlying Lookups() = %d, negative results must be cached", n)
	}
}

func TestLookup_ErrorsNotCached(t *testing.T) {
	mem := membook.New()
	mem.Add(startFEN)
	mem.SetErr(errors.New("backend down"))

	b, err := New(mem, 16)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	defer b.Close()

	ctx := context.Background()
	if _, err := b.Lookup(ctx, startFEN); err == nil {
		t.Fatal("Lookup() error = nil, want backend error")
	}

	// Once the backend recovers, the same position must be retried.
	mem.SetErr(nil)
	hit, err := b.Lookup(ctx, startFEN)
	if err != nil {
		t.Fatalf("Lookup() after recovery error = %v", err)
	}
	if !hit {
		t.Error("Lookup() = false after recovery, want true")
	}
}

func TestNew_InvalidCapacity(t *testing.T) {
	if _, err := New(membook.New(), 0); err == nil {
		t.Error("New(capacity 0) error = nil, want error")
	}
}
