package views

import (
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"bubblesea/internal/adapters/tui/styles"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

// Init initializes the help view
func (m *HelpModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case tea.KeyMsg:
		if key.Matches(msg, HelpKeys.Close) {
			return m, func() tea.Msg {
				return SwitchToOutlineMsg{}
			}
		}
	}

	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("bubblesea Help"))
	b.WriteString("\n\n")

	b.WriteString(styles.InputLabel.Render("Navigation"))
	b.WriteString("\n")
	b.WriteString(helpLine(OutlineKeys.Up, OutlineKeys.Down, OutlineKeys.Collapse, OutlineKeys.Expand))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Structure"))
	b.WriteString("\n")
	b.WriteString(helpLine(OutlineKeys.Sibling, OutlineKeys.Child, OutlineKeys.Indent, OutlineKeys.Unindent, OutlineKeys.Unlink))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Text"))
	b.WriteString("\n")
	b.WriteString(helpLine(OutlineKeys.Edit, OutlineKeys.External, OutlineKeys.Yank))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("General"))
	b.WriteString("\n")
	b.WriteString(helpLine(OutlineKeys.Reload, OutlineKeys.Help, OutlineKeys.Quit))
	b.WriteString("\n")

	b.WriteString(styles.InputLabel.Render("Markup"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  *italic*  **bold**  $math$  (no nesting)"))
	b.WriteString("\n")
	b.WriteString(styles.MutedText.Render("  A bubble may appear under several parents; unlink detaches it from this parent only."))
	b.WriteString("\n\n")

	b.WriteString(styles.HelpDesc.Render("Press "))
	b.WriteString(styles.HelpKey.Render("esc"))
	b.WriteString(styles.HelpDesc.Render(" or "))
	b.WriteString(styles.HelpKey.Render("?"))
	b.WriteString(styles.HelpDesc.Render(" to close"))

	return styles.App.Render(b.String())
}

func helpLine(bindings ...key.Binding) string {
	var b strings.Builder
	for _, k := range bindings {
		h := k.Help()
		b.WriteString("  " + styles.HelpKey.Render(padRight(h.Key, 14)) + styles.HelpDesc.Render(h.Desc) + "\n")
	}
	return b.String()
}

func padRight(s string, length int) string {
	n := utf8.RuneCountInString(s)
	if n >= length {
		return s
	}
	return s + strings.Repeat(" ", length-n)
}
