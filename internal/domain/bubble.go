package domain

import "slices"

// Bubble is a piece of text with an ordered list of child references.
//
// A Bubble knows neither its own ID nor its parents: parenthood only exists
// through appearing in some other Bubble's Children, and a Bubble may appear
// under several parents.
type Bubble struct {
	Text     string
	Children []ID
}

// Clone returns a copy that shares no memory with b
func (b Bubble) Clone() Bubble {
	return Bubble{Text: b.Text, Children: slices.Clone(b.Children)}
}

// Equal reports whether both bubbles have the same text and children.
// A nil and an empty children list compare equal.
func (b Bubble) Equal(other Bubble) bool {
	return b.Text == other.Text && slices.Equal(b.Children, other.Children)
}

// HasChild reports whether id appears among the children
func (b Bubble) HasChild(id ID) bool {
	return slices.Contains(b.Children, id)
}

// WithText returns a copy with the text replaced and the children kept
func (b Bubble) WithText(text string) Bubble {
	c := b.Clone()
	c.Text = text
	return c
}

// Without returns a copy with every occurrence of id removed from the children
func (b Bubble) Without(id ID) Bubble {
	children := make([]ID, 0, len(b.Children))
	for _, c := range b.Children {
		if c != id {
			children = append(children, c)
		}
	}
	return Bubble{Text: b.Text, Children: children}
}

// WithAppended returns a copy where id is the last child, exactly once
func (b Bubble) WithAppended(id ID) Bubble {
	c := b.Without(id)
	c.Children = append(c.Children, id)
	return c
}

// WithInsertedAfter returns a copy where id directly follows anchor.
// When anchor is not a child, id is appended instead.
func (b Bubble) WithInsertedAfter(anchor, id ID) Bubble {
	c := b.Without(id)
	i := slices.Index(c.Children, anchor)
	if i < 0 {
		c.Children = append(c.Children, id)
		return c
	}
	c.Children = slices.Insert(c.Children, i+1, id)
	return c
}

// Before returns the sibling directly preceding id, if any
func (b Bubble) Before(id ID) (ID, bool) {
	i := slices.Index(b.Children, id)
	if i <= 0 {
		return 0, false
	}
	return b.Children[i-1], true
}
