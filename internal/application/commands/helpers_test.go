package commands

import (
	"context"
	"strings"
	"testing"

	"bubblesea/internal/domain"
	"bubblesea/internal/sea"
)

func contains(s, substr string) bool {
	return strings.Contains(s, substr)
}

// outline builds a sea from id -> [text, child ids...]
func outline(t *testing.T, entries map[string][]string) *sea.Sea {
	t.Helper()
	var seed []sea.Entry
	for raw, fields := range entries {
		b := domain.Bubble{Text: fields[0], Children: []domain.ID{}}
		for _, c := range fields[1:] {
			b.Children = append(b.Children, domain.MustParseID(c))
		}
		seed = append(seed, sea.Entry{ID: domain.MustParseID(raw), Bubble: b})
	}
	next := uint64(0x100)
	return sea.New(sea.NewSnapshot(nil, seed...), sea.WithIDSource(func() domain.ID {
		id := domain.ID(next)
		next++
		return id
	}))
}

func children(t *testing.T, s *sea.Sea, raw string) []domain.ID {
	t.Helper()
	b, ok := s.Lookup(context.Background(), domain.MustParseID(raw))
	if !ok {
		t.Fatalf("bubble %s missing", raw)
	}
	return b.Children
}

func ids(raw ...string) []domain.ID {
	out := make([]domain.ID, 0, len(raw))
	for _, r := range raw {
		out = append(out, domain.MustParseID(r))
	}
	return out
}
