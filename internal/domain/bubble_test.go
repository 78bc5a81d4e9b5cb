package domain

import (
	"slices"
	"testing"
)

func TestBubble_WithAppended(t *testing.T) {
	tests := []struct {
		name     string
		children []ID
		add      ID
		want     []ID
	}{
		{name: "empty", children: nil, add: 1, want: []ID{1}},
		{name: "new child goes last", children: []ID{1, 2}, add: 3, want: []ID{1, 2, 3}},
		{name: "existing child moves last", children: []ID{1, 2, 3}, add: 1, want: []ID{2, 3, 1}},
		{name: "duplicates collapse", children: []ID{1, 2, 1}, add: 1, want: []ID{2, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Bubble{Text: "p", Children: tt.children}
			got := b.WithAppended(tt.add)
			if !slices.Equal(got.Children, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got.Children)
			}
			if got.Text != "p" {
				t.Errorf("text changed to %q", got.Text)
			}
		})
	}
}

func TestBubble_WithInsertedAfter(t *testing.T) {
	tests := []struct {
		name     string
		children []ID
		anchor   ID
		add      ID
		want     []ID
	}{
		{name: "middle", children: []ID{1, 2}, anchor: 1, add: 9, want: []ID{1, 9, 2}},
		{name: "after last", children: []ID{1, 2}, anchor: 2, add: 9, want: []ID{1, 2, 9}},
		{name: "missing anchor appends", children: []ID{1, 2}, anchor: 5, add: 9, want: []ID{1, 2, 9}},
		{name: "existing id is moved", children: []ID{9, 1, 2}, anchor: 1, add: 9, want: []ID{1, 9, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bubble{Children: tt.children}.WithInsertedAfter(tt.anchor, tt.add)
			if !slices.Equal(got.Children, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, got.Children)
			}
		})
	}
}

func TestBubble_HelpersDoNotMutate(t *testing.T) {
	orig := Bubble{Text: "x", Children: []ID{1, 2, 3}}

	_ = orig.Without(2)
	_ = orig.WithAppended(1)
	_ = orig.WithInsertedAfter(1, 3)
	c := orig.Clone()
	c.Children[0] = 42

	if !slices.Equal(orig.Children, []ID{1, 2, 3}) {
		t.Errorf("original children changed: %v", orig.Children)
	}
}

func TestBubble_Before(t *testing.T) {
	b := Bubble{Children: []ID{4, 5, 6}}

	if got, ok := b.Before(6); !ok || got != 5 {
		t.Errorf("expected 5, got %v (%v)", got, ok)
	}
	if _, ok := b.Before(4); ok {
		t.Error("first child should have no senpai")
	}
	if _, ok := b.Before(7); ok {
		t.Error("non-child should have no senpai")
	}
}

func TestBubble_Equal(t *testing.T) {
	if !(Bubble{Text: "a"}).Equal(Bubble{Text: "a", Children: []ID{}}) {
		t.Error("nil and empty children should be equal")
	}
	if (Bubble{Text: "a", Children: []ID{1}}).Equal(Bubble{Text: "a", Children: []ID{2}}) {
		t.Error("different children should not be equal")
	}
}
