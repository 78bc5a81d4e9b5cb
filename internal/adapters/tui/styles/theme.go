package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"bubblesea/internal/tagger"
)

var (
	// Colors
	Primary   = lipgloss.Color("#0EA5E9") // Sky
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	MathColor = lipgloss.Color("#7DCFFF")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Outline styles
	Bullet = lipgloss.NewStyle().Foreground(Muted)

	BulletExpanded  = "▾ "
	BulletCollapsed = "▸ "
	BulletLeaf      = "• "

	NodeSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	NodeCycle = lipgloss.NewStyle().
			Foreground(Warning).
			Italic(true)

	NodeMissing = lipgloss.NewStyle().
			Foreground(Error).
			Italic(true)

	NodeID = lipgloss.NewStyle().Foreground(Muted)

	// Inline text styles
	SpanBold   = lipgloss.NewStyle().Bold(true)
	SpanItalic = lipgloss.NewStyle().Italic(true)
	SpanMath   = lipgloss.NewStyle().Foreground(MathColor)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	InputField = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Primary).
			Padding(0, 1)

	InputFocused = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Secondary).
			Padding(0, 1)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)

// RenderSpans styles tagged text for the terminal
func RenderSpans(spans []tagger.Span) string {
	var sb strings.Builder
	for _, s := range spans {
		switch s.Kind {
		case tagger.Bold:
			sb.WriteString(SpanBold.Render(s.Text))
		case tagger.Italic:
			sb.WriteString(SpanItalic.Render(s.Text))
		case tagger.Math:
			sb.WriteString(SpanMath.Render(s.Text))
		case tagger.LineBreak:
			sb.WriteByte('\n')
		default:
			sb.WriteString(s.Text)
		}
	}
	return sb.String()
}
