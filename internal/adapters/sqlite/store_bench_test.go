package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"bubblesea/internal/domain"
)

// BenchmarkStore measures single-row write-through
func BenchmarkStore(b *testing.B) {
	s, err := Open(filepath.Join(b.TempDir(), "sea.db"), nil)
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer func() {
		if err := s.Close(); err != nil {
			b.Fatalf("failed to close store: %v", err)
		}
	}()

	ctx := context.Background()
	var id domain.ID
	b.ResetTimer()
	for b.Loop() {
		id++
		if err := s.Store(ctx, id, `(bubble "bench" 0x1 0x2)`); err != nil {
			b.Fatalf("store failed: %v", err)
		}
	}
}

// BenchmarkLookup measures cache-miss reads against a warm database
func BenchmarkLookup(b *testing.B) {
	s, err := Open(filepath.Join(b.TempDir(), "sea.db"), nil)
	if err != nil {
		b.Fatalf("failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	for i := range 1000 {
		if err := s.Store(ctx, domain.ID(i), `(bubble "bench")`); err != nil {
			b.Fatalf("store failed: %v", err)
		}
	}

	var i int
	b.ResetTimer()
	for b.Loop() {
		if _, ok := s.Lookup(ctx, domain.ID(i%1000)); !ok {
			b.Fatalf("missing %d", i%1000)
		}
		i++
	}
}
