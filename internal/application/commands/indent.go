package commands

import (
	"context"
	"fmt"
	"strings"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// RestructureResult contains the result of indenting or unindenting a bubble
type RestructureResult struct {
	ID        domain.ID
	OldParent domain.ID
	NewParent domain.ID
	Message   string
}

// SenpaiOf returns the sibling directly before id under parent
func SenpaiOf(ctx context.Context, sea ports.Outline, id, parent domain.ID) (domain.ID, bool) {
	p, ok := sea.Lookup(ctx, parent)
	if !ok {
		return 0, false
	}
	return p.Before(id)
}

// IndentCommand moves a bubble under its senpai.
// SenpaiID may be left empty to use the sibling preceding ID.
type IndentCommand struct {
	sea      ports.Outline
	ID       string
	SenpaiID string
	ParentID string
}

// NewIndentCommand creates a new IndentCommand
func NewIndentCommand(sea ports.Outline, id, senpaiID, parentID string) *IndentCommand {
	return &IndentCommand{
		sea:      sea,
		ID:       id,
		SenpaiID: senpaiID,
		ParentID: parentID,
	}
}

// Validate checks if the indent operation is valid
func (c *IndentCommand) Validate() error {
	id, parent, err := parsePair(c.ID, c.ParentID)
	if err != nil {
		return err
	}
	if strings.TrimSpace(c.SenpaiID) == "" {
		return nil
	}
	senpai, err := application.ParseIDField("senpaiID", c.SenpaiID)
	if err != nil {
		return err
	}
	return application.ValidateDistinct(map[string]domain.ID{
		"id":       id,
		"parentID": parent,
		"senpaiID": senpai,
	})
}

// Execute runs the indent command
func (c *IndentCommand) Execute(ctx context.Context) (*RestructureResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, parent, _ := parsePair(c.ID, c.ParentID)

	p, ok := c.sea.Lookup(ctx, parent)
	if !ok {
		return nil, &application.NotFoundError{ID: parent.String()}
	}
	if !p.HasChild(id) {
		return nil, &application.StructureError{
			ID:     id.String(),
			Reason: fmt.Sprintf("not a child of %s", parent),
		}
	}

	var senpai domain.ID
	if strings.TrimSpace(c.SenpaiID) == "" {
		s, ok := p.Before(id)
		if !ok {
			return nil, &application.StructureError{
				ID:     id.String(),
				Reason: "first child has no senpai",
			}
		}
		senpai = s
	} else {
		senpai, _ = application.ParseIDField("senpaiID", c.SenpaiID)
	}

	c.sea.Indent(ctx, id, senpai, parent)

	s, ok := c.sea.Lookup(ctx, senpai)
	if !ok || !s.HasChild(id) {
		return nil, &application.StructureError{
			ID:     id.String(),
			Reason: fmt.Sprintf("senpai %s not found", senpai),
		}
	}
	return &RestructureResult{
		ID:        id,
		OldParent: parent,
		NewParent: senpai,
		Message:   fmt.Sprintf("Indented %s under %s", id, senpai),
	}, nil
}

// UnindentCommand moves a bubble out of its parent, right after it under the grandparent
type UnindentCommand struct {
	sea           ports.Outline
	ID            string
	ParentID      string
	GrandparentID string
}

// NewUnindentCommand creates a new UnindentCommand
func NewUnindentCommand(sea ports.Outline, id, parentID, grandparentID string) *UnindentCommand {
	return &UnindentCommand{
		sea:           sea,
		ID:            id,
		ParentID:      parentID,
		GrandparentID: grandparentID,
	}
}

// Validate checks if the unindent operation is valid
func (c *UnindentCommand) Validate() error {
	_, _, _, err := c.parse()
	return err
}

func (c *UnindentCommand) parse() (id, parent, grandparent domain.ID, err error) {
	id, parent, err = parsePair(c.ID, c.ParentID)
	if err != nil {
		return 0, 0, 0, err
	}
	grandparent, err = application.ParseIDField("grandparentID", c.GrandparentID)
	if err != nil {
		return 0, 0, 0, err
	}
	err = application.ValidateDistinct(map[string]domain.ID{
		"id":            id,
		"parentID":      parent,
		"grandparentID": grandparent,
	})
	return id, parent, grandparent, err
}

// Execute runs the unindent command
func (c *UnindentCommand) Execute(ctx context.Context) (*RestructureResult, error) {
	id, parent, grandparent, err := c.parse()
	if err != nil {
		return nil, err
	}

	p, ok := c.sea.Lookup(ctx, parent)
	if !ok {
		return nil, &application.NotFoundError{ID: parent.String()}
	}
	if !p.HasChild(id) {
		return nil, &application.StructureError{
			ID:     id.String(),
			Reason: fmt.Sprintf("not a child of %s", parent),
		}
	}
	if _, ok := c.sea.Lookup(ctx, grandparent); !ok {
		return nil, &application.NotFoundError{ID: grandparent.String()}
	}

	c.sea.Unindent(ctx, id, parent, grandparent)

	return &RestructureResult{
		ID:        id,
		OldParent: parent,
		NewParent: grandparent,
		Message:   fmt.Sprintf("Unindented %s into %s", id, grandparent),
	}, nil
}
