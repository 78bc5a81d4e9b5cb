package views

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"bubblesea/internal/adapters/tui/styles"
	"bubblesea/internal/application/commands"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
	"bubblesea/internal/tagger"
)

// EditKeyMap defines key bindings for the edit view
type EditKeyMap struct {
	Submit key.Binding
	Cancel key.Binding
}

var EditKeys = EditKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "save"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "cancel"),
	),
}

// EditModel edits the text of one bubble on a single line
type EditModel struct {
	ViewState

	ctx   context.Context
	sea   ports.Outline
	id    domain.ID
	input textinput.Model
}

// NewEditModel creates a new edit view
func NewEditModel(ctx context.Context, sea ports.Outline) *EditModel {
	input := textinput.New()
	input.Placeholder = "*italic* **bold** $math$"
	input.Prompt = ""
	return &EditModel{ctx: ctx, sea: sea, input: input}
}

// SetBubble selects the bubble to edit
func (m *EditModel) SetBubble(id domain.ID, text string) {
	m.ClearMessage()
	m.id = id
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.input.Focus()
}

// Init starts the cursor blinking
func (m *EditModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages for the edit view
func (m *EditModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		m.input.Width = max(msg.Width-10, 10)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, EditKeys.Cancel):
			m.input.Blur()
			return m, func() tea.Msg {
				return SwitchToOutlineMsg{}
			}
		case key.Matches(msg, EditKeys.Submit):
			m.input.Blur()
			return m, m.save(m.input.Value())
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *EditModel) save(text string) tea.Cmd {
	id := m.id
	return func() tea.Msg {
		r, err := commands.NewEditCommand(m.sea, id.String(), text).Execute(m.ctx)
		if err != nil {
			return Failed(err)
		}
		return Changed(r.Message, id)
	}
}

// View renders the edit view with a live preview
func (m *EditModel) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Edit " + m.id.String()))
	b.WriteString("\n")
	b.WriteString(styles.InputFocused.Render(m.input.View()))
	b.WriteString("\n\n")
	b.WriteString(styles.InputLabel.Render("Preview"))
	b.WriteString("\n")
	b.WriteString(styles.RenderSpans(tagger.Parse(m.input.Value())))
	b.WriteString("\n\n")

	if m.Message != "" {
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
		b.WriteString("\n")
	}
	b.WriteString(RenderHelpLine(EditKeys.Submit, EditKeys.Cancel))

	return styles.App.Render(b.String())
}
