package commands

import (
	"context"
	"fmt"

	"bubblesea/internal/application"
	"bubblesea/internal/codec"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// ShowResult contains a bubble and its textual form
type ShowResult struct {
	ID      domain.ID
	Bubble  domain.Bubble
	Encoded string
	Message string
}

// ShowCommand looks up a single bubble
type ShowCommand struct {
	sea ports.Outline
	ID  string
}

// NewShowCommand creates a new ShowCommand
func NewShowCommand(sea ports.Outline, id string) *ShowCommand {
	return &ShowCommand{sea: sea, ID: id}
}

// Validate checks if the show request is valid
func (c *ShowCommand) Validate() error {
	_, err := application.ParseIDField("id", c.ID)
	return err
}

// Execute runs the show command
func (c *ShowCommand) Execute(ctx context.Context) (*ShowResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, _ := application.ParseIDField("id", c.ID)

	b, ok := c.sea.Lookup(ctx, id)
	if !ok {
		return nil, &application.NotFoundError{ID: id.String()}
	}
	encoded, err := codec.Encode(b)
	if err != nil {
		return nil, fmt.Errorf("failed to encode %s: %w", id, err)
	}
	return &ShowResult{
		ID:      id,
		Bubble:  b,
		Encoded: encoded,
		Message: fmt.Sprintf("%s has %d children", id, len(b.Children)),
	}, nil
}
