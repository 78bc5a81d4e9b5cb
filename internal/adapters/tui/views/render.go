package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"

	"bubblesea/internal/adapters/tui/styles"
	"bubblesea/internal/domain"
	"bubblesea/internal/tagger"
)

// RenderKeyHelp formats a key binding as help text (key + description)
func RenderKeyHelp(b key.Binding) string {
	help := b.Help()
	return fmt.Sprintf("%s %s",
		styles.HelpKey.Render(help.Key),
		styles.HelpDesc.Render(help.Desc),
	)
}

// RenderHelpLine renders multiple key bindings as a help line separated by bullets
func RenderHelpLine(bindings ...key.Binding) string {
	var parts []string
	for _, b := range bindings {
		parts = append(parts, RenderKeyHelp(b))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage renders a message with appropriate styling based on isError
func RenderMessage(message string, isError bool) string {
	if message == "" {
		return ""
	}
	if isError {
		return styles.ErrorMsg.Render(message)
	}
	return styles.Success.Render(message)
}

// FirstLine returns the spans of text up to its first line break and
// whether anything was cut off.
func FirstLine(text string) ([]tagger.Span, bool) {
	spans := tagger.Parse(text)
	for i, s := range spans {
		if s.Kind == tagger.LineBreak {
			return spans[:i], true
		}
	}
	return spans, false
}

// RenderNode renders one outline row: indentation, bullet and text.
// The selected row is drawn plain on a highlighted background.
func RenderNode(n *domain.TreeNode, depth int, selected bool) string {
	indent := strings.Repeat("  ", depth)

	bullet := styles.BulletLeaf
	switch {
	case len(n.Children) > 0 && n.IsExpanded:
		bullet = styles.BulletExpanded
	case len(n.Bubble.Children) > 0:
		bullet = styles.BulletCollapsed
	}

	var text string
	switch {
	case n.Cycle:
		text = styles.NodeCycle.Render(n.ID.String() + " (cycle)")
	case n.Missing:
		text = styles.NodeMissing.Render(n.ID.String() + " (missing)")
	case selected:
		spans, more := FirstLine(n.Bubble.Text)
		line := tagger.Render(spans)
		if line == "" {
			line = " "
		}
		if more {
			line += " …"
		}
		text = styles.NodeSelected.Render(line)
	default:
		spans, more := FirstLine(n.Bubble.Text)
		text = styles.RenderSpans(spans)
		if more {
			text += styles.MutedText.Render(" …")
		}
	}

	return indent + styles.Bullet.Render(bullet) + text
}
