package tui

import (
	"context"
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"bubblesea/internal/adapters/editor"
	"bubblesea/internal/adapters/tui/views"
	"bubblesea/internal/application/commands"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// ViewState represents the current view
type ViewState int

const (
	ViewOutline ViewState = iota
	ViewEdit
	ViewHelp
)

// App is the main TUI application model
type App struct {
	ctx    context.Context
	sea    ports.Outline
	editor *editor.Opener

	state   ViewState
	outline *views.OutlineModel
	edit    *views.EditModel
	help    *views.HelpModel
}

// NewApp creates a TUI showing the outline below rootID.
// ed may be nil to disable the external editor.
func NewApp(ctx context.Context, sea ports.Outline, rootID string, ed *editor.Opener) *App {
	return &App{
		ctx:     ctx,
		sea:     sea,
		editor:  ed,
		state:   ViewOutline,
		outline: views.NewOutlineModel(ctx, sea, rootID),
		edit:    views.NewEditModel(ctx, sea),
		help:    views.NewHelpModel(),
	}
}

// Init initializes the application
func (a *App) Init() tea.Cmd {
	return a.outline.Init()
}

// Update handles messages for the application
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.outline.Update(msg)
		a.edit.Update(msg)
		a.help.Update(msg)
		return a, nil

	case views.SwitchToEditMsg:
		// Multi-line text does not fit the single-line input
		if strings.Contains(msg.Text, "\n") && a.editor != nil {
			return a, a.openEditor(msg.ID, msg.Text)
		}
		a.state = ViewEdit
		a.edit.SetBubble(msg.ID, msg.Text)
		return a, a.edit.Init()

	case views.OpenEditorMsg:
		a.state = ViewOutline
		return a, a.openEditor(msg.ID, msg.Text)

	case editorFinishedMsg:
		return a, a.finishEditor(msg)

	case views.SwitchToHelpMsg:
		a.state = ViewHelp
		return a, nil

	case views.SwitchToOutlineMsg:
		a.state = ViewOutline
		return a, nil
	}

	// Tree loads and edit results belong to the outline whatever is showing
	if views.IsOutlineMsg(msg) {
		if a.state == ViewEdit {
			a.state = ViewOutline
		}
		_, cmd := a.outline.Update(msg)
		return a, cmd
	}

	// Delegate to current view
	var cmd tea.Cmd
	switch a.state {
	case ViewOutline:
		_, cmd = a.outline.Update(msg)
	case ViewEdit:
		_, cmd = a.edit.Update(msg)
	case ViewHelp:
		_, cmd = a.help.Update(msg)
	}

	return a, cmd
}

var errNoEditor = errors.New("no external editor configured")

type editorFinishedMsg struct {
	id      domain.ID
	session *editor.Session
	err     error
}

func (a *App) openEditor(id domain.ID, text string) tea.Cmd {
	if a.editor == nil {
		return func() tea.Msg {
			return views.Failed(errNoEditor)
		}
	}

	session, err := a.editor.Edit(id.String(), text)
	if err != nil {
		return func() tea.Msg {
			return views.Failed(err)
		}
	}

	return tea.ExecProcess(session.Cmd, func(err error) tea.Msg {
		return editorFinishedMsg{id: id, session: session, err: err}
	})
}

func (a *App) finishEditor(msg editorFinishedMsg) tea.Cmd {
	a.state = ViewOutline
	if msg.err != nil {
		msg.session.Discard()
		return func() tea.Msg {
			return views.Failed(msg.err)
		}
	}
	text, err := msg.session.Result()
	if err != nil {
		return func() tea.Msg {
			return views.Failed(err)
		}
	}
	return func() tea.Msg {
		r, err := commands.NewEditCommand(a.sea, msg.id.String(), text).Execute(a.ctx)
		if err != nil {
			return views.Failed(err)
		}
		return views.Changed(r.Message, msg.id)
	}
}

// View renders the current view
func (a *App) View() string {
	switch a.state {
	case ViewEdit:
		return a.edit.View()
	case ViewHelp:
		return a.help.View()
	default:
		return a.outline.View()
	}
}
