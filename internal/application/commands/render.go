package commands

import (
	"context"
	"fmt"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
	"bubblesea/internal/tagger"
)

// RenderResult contains the tagged spans of a bubble's text
type RenderResult struct {
	ID      domain.ID
	Spans   []tagger.Span
	Message string
}

// RenderCommand tags the text of a bubble for display
type RenderCommand struct {
	sea ports.Outline
	ID  string
}

// NewRenderCommand creates a new RenderCommand
func NewRenderCommand(sea ports.Outline, id string) *RenderCommand {
	return &RenderCommand{sea: sea, ID: id}
}

// Validate checks if the render request is valid
func (c *RenderCommand) Validate() error {
	_, err := application.ParseIDField("id", c.ID)
	return err
}

// Execute runs the render command
func (c *RenderCommand) Execute(ctx context.Context) (*RenderResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	id, _ := application.ParseIDField("id", c.ID)

	b, ok := c.sea.Lookup(ctx, id)
	if !ok {
		return nil, &application.NotFoundError{ID: id.String()}
	}
	spans := tagger.Parse(b.Text)
	return &RenderResult{
		ID:      id,
		Spans:   spans,
		Message: fmt.Sprintf("%d spans", len(spans)),
	}, nil
}
