package commands

import (
	"context"
	"fmt"
	"strings"

	"bubblesea/internal/application"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// TreeResult contains the outline reachable from a root
type TreeResult struct {
	Root    *domain.TreeNode
	Count   int
	Message string
}

// BuildTreeCommand walks the sea from a root bubble.
//
// Children are resolved in order. A child already on the path from the root
// is marked as a cycle and not expanded; one that cannot be resolved is
// marked missing. MaxDepth limits how deep the walk goes, 0 means no limit.
type BuildTreeCommand struct {
	sea      ports.Outline
	RootID   string
	MaxDepth int
}

// NewBuildTreeCommand creates a new BuildTreeCommand
func NewBuildTreeCommand(sea ports.Outline, rootID string, maxDepth int) *BuildTreeCommand {
	return &BuildTreeCommand{
		sea:      sea,
		RootID:   rootID,
		MaxDepth: maxDepth,
	}
}

// Validate checks if the tree request is valid
func (c *BuildTreeCommand) Validate() error {
	if _, err := application.ParseIDField("rootID", c.RootID); err != nil {
		return err
	}
	if c.MaxDepth < 0 {
		return &application.ValidationError{
			Field:   "maxDepth",
			Message: fmt.Sprintf("must not be negative, got %d", c.MaxDepth),
		}
	}
	return nil
}

// Execute runs the tree command
func (c *BuildTreeCommand) Execute(ctx context.Context) (*TreeResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	rootID, _ := application.ParseIDField("rootID", c.RootID)

	b, ok := c.sea.Lookup(ctx, rootID)
	if !ok {
		return nil, &application.NotFoundError{ID: rootID.String()}
	}

	root := &domain.TreeNode{ID: rootID, Bubble: b}
	count := 1 + c.expand(ctx, root, 0)

	return &TreeResult{
		Root:    root,
		Count:   count,
		Message: fmt.Sprintf("%d bubbles under %s", count, rootID),
	}, nil
}

func (c *BuildTreeCommand) expand(ctx context.Context, n *domain.TreeNode, depth int) int {
	if c.MaxDepth > 0 && depth >= c.MaxDepth {
		return 0
	}
	if ctx.Err() != nil {
		return 0
	}
	n.IsExpanded = true

	count := 0
	for _, id := range n.Bubble.Children {
		child := &domain.TreeNode{ID: id, Parent: n}
		n.Children = append(n.Children, child)
		count++

		if n.OnPath(id) {
			child.Cycle = true
			continue
		}
		b, ok := c.sea.Lookup(ctx, id)
		if !ok {
			child.Missing = true
			continue
		}
		child.Bubble = b
		count += c.expand(ctx, child, depth+1)
	}
	return count
}

// FormatTree renders an outline as indented lines of "id  text".
// Only the first line of multi-line text is shown.
func FormatTree(root *domain.TreeNode) string {
	var sb strings.Builder
	formatNode(&sb, root, "")
	return sb.String()
}

func formatNode(sb *strings.Builder, n *domain.TreeNode, prefix string) {
	switch {
	case n.Cycle:
		fmt.Fprintf(sb, "%s%s  (cycle)\n", prefix, n.ID)
		return
	case n.Missing:
		fmt.Fprintf(sb, "%s%s  (missing)\n", prefix, n.ID)
		return
	}
	line, _, _ := strings.Cut(n.Bubble.Text, "\n")
	fmt.Fprintf(sb, "%s%s  %s\n", prefix, n.ID, line)
	if !n.IsExpanded {
		return
	}
	for _, child := range n.Children {
		formatNode(sb, child, prefix+"  ")
	}
}
