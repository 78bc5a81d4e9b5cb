package commands

import (
	"context"
	"path/filepath"
	"testing"

	"bubblesea/internal/adapters/filesystem"
	"bubblesea/internal/adapters/sqlite"
)

func TestSyncCommand_DirToSQLite(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	from, err := filesystem.NewRepository(filepath.Join(dir, "bubbles"), nil)
	if err != nil {
		t.Fatal(err)
	}
	to, err := sqlite.Open(filepath.Join(dir, "sea.db"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer to.Close()

	from.Store(ctx, 0x1, `(bubble "root" 0x2)`)
	from.Store(ctx, 0x2, `(bubble "child")`)
	from.Store(ctx, 0x3, `(bubble broken`)

	result, err := NewSyncCommand(from, to).Execute(ctx)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}

	if result.Stats != (SyncStats{Scanned: 3, Copied: 2, Skipped: 1}) {
		t.Errorf("unexpected stats %+v", result.Stats)
	}
	if got, ok := to.Lookup(ctx, 0x1); !ok || got != `(bubble "root" 0x2)` {
		t.Errorf("root not copied, got %q", got)
	}
	if _, ok := to.Lookup(ctx, 0x3); ok {
		t.Error("undecodable bubble should not be copied")
	}
}

func TestSyncCommand_SQLiteToDir(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	from, err := sqlite.Open(filepath.Join(dir, "sea.db"), nil)
	if err != nil {
		t.Fatal(err)
	}
	defer from.Close()
	to, err := filesystem.NewRepository(filepath.Join(dir, "out"), nil)
	if err != nil {
		t.Fatal(err)
	}

	from.Store(ctx, 0xA, `(bubble "x")`)

	result, err := NewSyncCommand(from, to).Execute(ctx)
	if err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if result.Stats.Copied != 1 {
		t.Errorf("expected 1 copied, got %+v", result.Stats)
	}
	if got, ok := to.Lookup(ctx, 0xA); !ok || got != `(bubble "x")` {
		t.Errorf("bubble not copied, got %q", got)
	}
}
