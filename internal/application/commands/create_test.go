package commands

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
)

func TestCreateCommand_Validate(t *testing.T) {
	tests := []struct {
		name     string
		parentID string
		wantErr  bool
		errMsg   string
	}{
		{name: "root bubble", parentID: "", wantErr: false},
		{name: "valid parent", parentID: "0x1", wantErr: false},
		{name: "malformed parent", parentID: "parent", wantErr: true, errMsg: "malformed parent ID"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &CreateCommand{ParentID: tt.parentID}
			err := cmd.Validate()

			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error containing %q, got nil", tt.errMsg)
					return
				}
				if !contains(err.Error(), tt.errMsg) {
					t.Errorf("expected error containing %q, got %q", tt.errMsg, err.Error())
				}
			} else if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateCommand_Execute(t *testing.T) {
	ctx := context.Background()
	s := outline(t, map[string][]string{"0x1": {"root", "0x2"}, "0x2": {"first"}})

	result, err := NewCreateCommand(s, "0x1", "second").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.ID != domain.ID(0x100) {
		t.Errorf("expected id 0x100, got %s", result.ID)
	}
	if got := children(t, s, "0x1"); !reflect.DeepEqual(got, ids("0x2", "0x100")) {
		t.Errorf("new bubble should be linked last, got %v", got)
	}
	b, _ := s.Lookup(ctx, result.ID)
	if b.Text != "second" {
		t.Errorf("expected text %q, got %q", "second", b.Text)
	}
	if !contains(result.Message, "under 0x1") {
		t.Errorf("unexpected message %q", result.Message)
	}
}

func TestCreateCommand_Root(t *testing.T) {
	s := outline(t, map[string][]string{})

	result, err := NewCreateCommand(s, "", "").Execute(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.ParentID != nil {
		t.Errorf("root bubble should have no parent, got %s", result.ParentID)
	}
	if _, ok := s.Lookup(context.Background(), result.ID); !ok {
		t.Error("created bubble should be resolvable")
	}
}

func TestCreateCommand_UnknownParent(t *testing.T) {
	s := outline(t, map[string][]string{})

	_, err := NewCreateCommand(s, "0x9", "orphan").Execute(context.Background())
	if !errors.Is(err, application.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if s.Current().Len() != 0 {
		t.Error("nothing should be created under a missing parent")
	}
}

func TestEditCommand_Execute(t *testing.T) {
	ctx := context.Background()
	s := outline(t, map[string][]string{"0x1": {"old", "0x2"}})

	result, err := NewEditCommand(s, "0x1", "new").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Created {
		t.Error("existing bubble should not be reported as created")
	}
	if result.Bubble.Text != "new" || !reflect.DeepEqual(result.Bubble.Children, ids("0x2")) {
		t.Errorf("unexpected bubble %+v", result.Bubble)
	}

	result, err = NewEditCommand(s, "0x5", "fresh").Execute(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Created || result.Message != "Created 0x5" {
		t.Errorf("unknown bubble should be created, got %+v", result)
	}
}

func TestEditCommand_Validate(t *testing.T) {
	err := NewEditCommand(nil, "", "x").Validate()
	if err == nil || !contains(err.Error(), "ID is required") {
		t.Errorf("expected required error, got %v", err)
	}
}
