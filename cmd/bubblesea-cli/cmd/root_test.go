package cmd

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
)

func isolate(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BUBBLESEA_STORE", "BUBBLESEA_DB", "BUBBLESEA_DIR", "BUBBLESEA_REMOTE",
		"BUBBLESEA_ROOT", "BUBBLESEA_LOG_LEVEL", "BUBBLESEA_ENV", "BUBBLESEA_LOG_FILE",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("BUBBLESEA_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
}

func execute(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out.String())
	}
	return out.String()
}

func TestRenderSpans(t *testing.T) {
	isolate(t)

	out := execute(t, "render", "--spans", "a *b*")

	want := "plain     \"a \"\nitalic    \"b\"\n"
	if out != want {
		t.Errorf("expected %q, got %q", want, out)
	}
}

func TestIDInfo(t *testing.T) {
	isolate(t)

	out := execute(t, "id", "info", "0x1F")

	if !strings.Contains(out, "disambiguator: 15") {
		t.Errorf("expected disambiguator 15, got:\n%s", out)
	}
	if !strings.Contains(out, "1970-01-01T00:00:00Z") {
		t.Errorf("expected epoch creation time, got:\n%s", out)
	}
}

func TestDirStoreSession(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	db := filepath.Join(t.TempDir(), "sea.db")
	store := []string{"--store", "dir", "--dir", dir}

	out := execute(t, append([]string{"edit", "0x0", "Root"}, store...)...)
	if !strings.Contains(out, "Created 0x0") {
		t.Fatalf("expected root creation, got %q", out)
	}
	out = execute(t, append([]string{"create", "0x0", "**child**"}, store...)...)
	if !strings.Contains(out, "under 0x0") {
		t.Fatalf("expected child creation, got %q", out)
	}

	out = execute(t, append([]string{"tree"}, store...)...)
	if !strings.HasPrefix(out, "0x0  Root\n") || !strings.Contains(out, "  **child**") {
		t.Errorf("unexpected tree:\n%s", out)
	}

	out = execute(t, "sync", "dir", "sqlite", "--dir", dir, "--db", db)
	if !strings.Contains(out, "Copied 2 of 2") {
		t.Errorf("unexpected sync result %q", out)
	}

	out = execute(t, "show", "0x0", "--store", "sqlite", "--db", db)
	if !strings.HasPrefix(out, `(bubble "Root" 0x`) {
		t.Errorf("expected synced root in sqlite, got %q", out)
	}
}
