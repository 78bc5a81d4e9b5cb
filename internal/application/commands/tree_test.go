package commands

import (
	"context"
	"errors"
	"testing"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
)

func TestBuildTreeCommand_Execute(t *testing.T) {
	s := outline(t, map[string][]string{
		"0x1": {"root", "0x2", "0x3", "0x9"},
		"0x2": {"a", "0x4"},
		"0x3": {"b", "0x4"},
		"0x4": {"shared", "0x1"},
	})

	result, err := NewBuildTreeCommand(s, "0x1", 0).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	flat := result.Root.Flatten()
	var got []string
	for _, n := range flat {
		got = append(got, n.ID.String())
	}
	want := []string{"0x1", "0x2", "0x4", "0x1", "0x3", "0x4", "0x1", "0x9"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if result.Count != len(want) {
		t.Errorf("expected count %d, got %d", len(want), result.Count)
	}

	if !flat[3].Cycle || flat[3].IsExpanded {
		t.Errorf("root reached again should be a collapsed cycle, got %+v", flat[3])
	}
	if !flat[7].Missing {
		t.Error("unresolvable child should be marked missing")
	}
	if flat[2].Depth() != 2 || flat[2].Bubble.Text != "shared" {
		t.Errorf("unexpected node %+v at depth %d", flat[2].Bubble, flat[2].Depth())
	}
}

func TestBuildTreeCommand_MaxDepth(t *testing.T) {
	s := outline(t, map[string][]string{
		"0x1": {"root", "0x2"},
		"0x2": {"a", "0x3"},
		"0x3": {"b"},
	})

	result, err := NewBuildTreeCommand(s, "0x1", 1).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Count != 2 {
		t.Errorf("expected 2 bubbles, got %d", result.Count)
	}
	child := result.Root.Children[0]
	if child.IsExpanded || len(child.Children) != 0 {
		t.Errorf("child beyond the depth limit should not be expanded: %+v", child)
	}
}

func TestBuildTreeCommand_Errors(t *testing.T) {
	s := outline(t, map[string][]string{})

	_, err := NewBuildTreeCommand(s, "0x1", 0).Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err = NewBuildTreeCommand(s, "0x1", -1).Validate()
	if err == nil || !contains(err.Error(), "must not be negative") {
		t.Errorf("expected depth error, got %v", err)
	}
}

func TestShowCommand_Execute(t *testing.T) {
	s := outline(t, map[string][]string{"0x1": {"hi", "0xA", "0xB"}})

	result, err := NewShowCommand(s, "0x1").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Encoded != `(bubble "hi" 0xA 0xB)` {
		t.Errorf("unexpected encoding %q", result.Encoded)
	}
	if result.ID != domain.ID(1) {
		t.Errorf("unexpected id %s", result.ID)
	}
}

func TestRenderCommand_Execute(t *testing.T) {
	s := outline(t, map[string][]string{"0x1": {"a *b*"}})

	result, err := NewRenderCommand(s, "0x1").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Spans) != 2 || result.Spans[1].Text != "b" {
		t.Errorf("unexpected spans %v", result.Spans)
	}

	_, err = NewRenderCommand(s, "0x2").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestFormatTree(t *testing.T) {
	s := outline(t, map[string][]string{
		"0x1": {"root", "0x2", "0x9"},
		"0x2": {"first line\nsecond line", "0x1"},
	})

	result, err := NewBuildTreeCommand(s, "0x1", 0).Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "0x1  root\n" +
		"  0x2  first line\n" +
		"    0x1  (cycle)\n" +
		"  0x9  (missing)\n"
	if got := FormatTree(result.Root); got != want {
		t.Errorf("FormatTree() =\n%s\nwant\n%s", got, want)
	}
}
