package commands

import (
	"context"
	"fmt"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// LinkResult contains the result of linking or unlinking a bubble
type LinkResult struct {
	ID       domain.ID
	ParentID domain.ID
	Children []domain.ID
	Message  string
}

// LinkCommand makes a bubble the last child of a parent
type LinkCommand struct {
	sea      ports.Outline
	ID       string
	ParentID string
}

// NewLinkCommand creates a new LinkCommand
func NewLinkCommand(sea ports.Outline, id, parentID string) *LinkCommand {
	return &LinkCommand{
		sea:      sea,
		ID:       id,
		ParentID: parentID,
	}
}

// Validate checks if the link operation is valid
func (c *LinkCommand) Validate() error {
	_, _, err := parsePair(c.ID, c.ParentID)
	return err
}

// Execute runs the link command
func (c *LinkCommand) Execute(ctx context.Context) (*LinkResult, error) {
	id, parent, err := parsePair(c.ID, c.ParentID)
	if err != nil {
		return nil, err
	}
	if _, ok := c.sea.Lookup(ctx, parent); !ok {
		return nil, &application.NotFoundError{ID: parent.String()}
	}

	c.sea.Link(ctx, id, parent)

	p, _ := c.sea.Lookup(ctx, parent)
	return &LinkResult{
		ID:       id,
		ParentID: parent,
		Children: p.Children,
		Message:  fmt.Sprintf("Linked %s under %s", id, parent),
	}, nil
}

// UnlinkCommand removes a bubble from a parent's children
type UnlinkCommand struct {
	sea      ports.Outline
	ID       string
	ParentID string
}

// NewUnlinkCommand creates a new UnlinkCommand
func NewUnlinkCommand(sea ports.Outline, id, parentID string) *UnlinkCommand {
	return &UnlinkCommand{
		sea:      sea,
		ID:       id,
		ParentID: parentID,
	}
}

// Validate checks if the unlink operation is valid
func (c *UnlinkCommand) Validate() error {
	_, _, err := parsePair(c.ID, c.ParentID)
	return err
}

// Execute runs the unlink command
func (c *UnlinkCommand) Execute(ctx context.Context) (*LinkResult, error) {
	id, parent, err := parsePair(c.ID, c.ParentID)
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

	c.sea.Unlink(ctx, id, parent)

	p, _ = c.sea.Lookup(ctx, parent)
	return &LinkResult{
		ID:       id,
		ParentID: parent,
		Children: p.Children,
		Message:  fmt.Sprintf("Unlinked %s from %s", id, parent),
	}, nil
}

func parsePair(rawID, rawParent string) (domain.ID, domain.ID, error) {
	id, err := application.ParseIDField("id", rawID)
	if err != nil {
		return 0, 0, err
	}
	parent, err := application.ParseIDField("parentID", rawParent)
	if err != nil {
		return 0, 0, err
	}
	if err := application.ValidateDistinct(map[string]domain.ID{"id": id, "parentID": parent}); err != nil {
		return 0, 0, err
	}
	return id, parent, nil
}
