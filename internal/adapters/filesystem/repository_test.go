package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"bubblesea/internal/domain"
)

func setupTestDir(t *testing.T) *Repository {
	t.Helper()

	repo, err := NewRepository(filepath.Join(t.TempDir(), "bubbles"), nil)
	if err != nil {
		t.Fatalf("NewRepository failed: %v", err)
	}
	return repo
}

func TestRepository_StoreAndLookup(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDir(t)

	if _, ok := repo.Lookup(ctx, 0x1F); ok {
		t.Fatal("expected empty repository")
	}

	if err := repo.Store(ctx, 0x1F, `(bubble "hi" 0x2)`); err != nil {
		t.Fatalf("Store failed: %v", err)
	}

	got, ok := repo.Lookup(ctx, 0x1F)
	if !ok {
		t.Fatal("stored bubble not found")
	}
	if got != `(bubble "hi" 0x2)` {
		t.Errorf("unexpected body %q", got)
	}

	data, err := os.ReadFile(filepath.Join(repo.Dir(), "0x1F.bubble"))
	if err != nil {
		t.Fatalf("expected file named after the id: %v", err)
	}
	if string(data) != "(bubble \"hi\" 0x2)\n" {
		t.Errorf("unexpected file content %q", data)
	}
}

func TestRepository_StoreOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDir(t)

	for _, body := range []string{`(bubble "a")`, `(bubble "b")`} {
		if err := repo.Store(ctx, 0x1, body); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}

	got, _ := repo.Lookup(ctx, 0x1)
	if got != `(bubble "b")` {
		t.Errorf("expected latest body, got %q", got)
	}

	entries, err := os.ReadDir(repo.Dir())
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("temporary files should not be left behind, found %d entries", len(entries))
	}
}

func TestRepository_IDs(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDir(t)

	for _, id := range []domain.ID{0xB, 0x2, 0xA0} {
		if err := repo.Store(ctx, id, `(bubble "")`); err != nil {
			t.Fatalf("Store failed: %v", err)
		}
	}
	// noise that must be ignored
	os.WriteFile(filepath.Join(repo.Dir(), "README.md"), []byte("x"), 0644)
	os.WriteFile(filepath.Join(repo.Dir(), "nothex.bubble"), []byte("x"), 0644)
	os.Mkdir(filepath.Join(repo.Dir(), "0x5.bubble"), 0755)

	ids, err := repo.IDs(ctx)
	if err != nil {
		t.Fatalf("IDs failed: %v", err)
	}
	want := []domain.ID{0x2, 0xB, 0xA0}
	if len(ids) != len(want) {
		t.Fatalf("expected %v, got %v", want, ids)
	}
	for i := range want {
		if ids[i] != want[i] {
			t.Errorf("expected %v, got %v", want, ids)
		}
	}
}

func TestRepository_Delete(t *testing.T) {
	ctx := context.Background()
	repo := setupTestDir(t)

	if err := repo.Store(ctx, 0x3, `(bubble "x")`); err != nil {
		t.Fatal(err)
	}
	if err := repo.Delete(ctx, 0x3); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := repo.Delete(ctx, 0x3); err != nil {
		t.Errorf("deleting a missing bubble should succeed, got %v", err)
	}
	if _, ok := repo.Lookup(ctx, 0x3); ok {
		t.Error("deleted bubble still found")
	}
}
