package commands

import (
	"context"
	"fmt"
	"strings"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// CreateResult contains the result of creating a bubble
type CreateResult struct {
	ID       domain.ID
	ParentID *domain.ID
	Message  string
}

// CreateCommand creates a bubble, as the last child of ParentID when given
type CreateCommand struct {
	sea      ports.Outline
	ParentID string
	Text     string
}

// NewCreateCommand creates a new CreateCommand
func NewCreateCommand(sea ports.Outline, parentID, text string) *CreateCommand {
	return &CreateCommand{
		sea:      sea,
		ParentID: parentID,
		Text:     text,
	}
}

// Validate checks if the create operation is valid
func (c *CreateCommand) Validate() error {
	if strings.TrimSpace(c.ParentID) == "" {
		return nil
	}
	_, err := application.ParseIDField("parentID", c.ParentID)
	return err
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context) (*CreateResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if strings.TrimSpace(c.ParentID) == "" {
		id := c.sea.CreateRoot(ctx)
		c.setText(ctx, id)
		return &CreateResult{
			ID:      id,
			Message: fmt.Sprintf("Created %s", id),
		}, nil
	}

	parent, _ := application.ParseIDField("parentID", c.ParentID)
	if _, ok := c.sea.Lookup(ctx, parent); !ok {
		return nil, &application.NotFoundError{ID: parent.String()}
	}

	id := c.sea.Create(ctx, parent)
	c.setText(ctx, id)
	return &CreateResult{
		ID:       id,
		ParentID: &parent,
		Message:  fmt.Sprintf("Created %s under %s", id, parent),
	}, nil
}

func (c *CreateCommand) setText(ctx context.Context, id domain.ID) {
	if c.Text != "" {
		c.sea.ModifyText(ctx, id, c.Text)
	}
}
