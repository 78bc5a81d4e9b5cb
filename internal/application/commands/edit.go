package commands

import (
	"context"
	"fmt"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// EditResult contains the result of editing a bubble
type EditResult struct {
	ID      domain.ID
	Bubble  domain.Bubble
	Created bool
	Message string
}

// EditCommand replaces the text of a bubble and keeps its children.
// Editing an unknown bubble creates it.
type EditCommand struct {
	sea  ports.Outline
	ID   string
	Text string
}

// NewEditCommand creates a new EditCommand
func NewEditCommand(sea ports.Outline, id, text string) *EditCommand {
	return &EditCommand{
		sea:  sea,
		ID:   id,
		Text: text,
	}
}

// Validate checks if the edit operation is valid
func (c *EditCommand) Validate() error {
	_, err := application.ParseIDField("id", c.ID)
	return err
}

// Execute runs the edit command
func (c *EditCommand) Execute(ctx context.Context) (*EditResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, _ := application.ParseIDField("id", c.ID)

	_, existed := c.sea.Lookup(ctx, id)
	c.sea.ModifyText(ctx, id, c.Text)

	b, ok := c.sea.Lookup(ctx, id)
	if !ok {
		return nil, fmt.Errorf("failed to edit %s: %w", id, application.ErrNotFound)
	}

	msg := fmt.Sprintf("Updated %s", id)
	if !existed {
		msg = fmt.Sprintf("Created %s", id)
	}
	return &EditResult{
		ID:      id,
		Bubble:  b,
		Created: !existed,
		Message: msg,
	}, nil
}
