package views

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"bubblesea/internal/adapters/tui/styles"
	"bubblesea/internal/application/commands"
	"bubblesea/internal/domain"
	"bubblesea/internal/ports"
)

// OutlineKeyMap defines key bindings for the outline view
type OutlineKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Collapse key.Binding
	Expand   key.Binding
	Sibling  key.Binding
	Child    key.Binding
	Indent   key.Binding
	Unindent key.Binding
	Edit     key.Binding
	External key.Binding
	Unlink   key.Binding
	Yank     key.Binding
	Reload   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

var OutlineKeys = OutlineKeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Collapse: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("h/←", "collapse"),
	),
	Expand: key.NewBinding(
		key.WithKeys("l", "right"),
		key.WithHelp("l/→", "expand"),
	),
	Sibling: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "new bubble"),
	),
	Child: key.NewBinding(
		key.WithKeys("a"),
		key.WithHelp("a", "new child"),
	),
	Indent: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "indent"),
	),
	Unindent: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "unindent"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit"),
	),
	External: key.NewBinding(
		key.WithKeys("E"),
		key.WithHelp("E", "$EDITOR"),
	),
	Unlink: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "unlink"),
	),
	Yank: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "yank id"),
	),
	Reload: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "reload"),
	),
	Help: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "help"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}

// OutlineModel shows the sea as an outline below a root bubble
type OutlineModel struct {
	ViewState

	ctx    context.Context
	sea    ports.Outline
	rootID string
	copy   func(string) error

	root      *domain.TreeNode
	flatNodes []*domain.TreeNode
	cursor    int
	collapsed map[domain.ID]bool

	// focus is selected once the next tree load finishes
	focus     domain.ID
	editFocus bool
}

// NewOutlineModel creates an outline rooted at rootID
func NewOutlineModel(ctx context.Context, sea ports.Outline, rootID string) *OutlineModel {
	return &OutlineModel{
		ctx:       ctx,
		sea:       sea,
		rootID:    rootID,
		copy:      clipboard.WriteAll,
		collapsed: make(map[domain.ID]bool),
	}
}

type treeLoadedMsg struct {
	root *domain.TreeNode
}

type errMsg struct {
	err error
}

// changedMsg reports a finished edit; the tree is reloaded with focus selected
type changedMsg struct {
	message string
	focus   domain.ID
	edit    bool
}

// Init loads the tree
func (m *OutlineModel) Init() tea.Cmd {
	return m.loadTree
}

func (m *OutlineModel) loadTree() tea.Msg {
	result, err := commands.NewBuildTreeCommand(m.sea, m.rootID, 0).Execute(m.ctx)
	if err != nil {
		return errMsg{err}
	}
	return treeLoadedMsg{result.Root}
}

// Update handles messages for the outline
func (m *OutlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)
		return m, nil

	case treeLoadedMsg:
		m.root = msg.root
		m.applyCollapsed(m.root)
		m.refreshFlatNodes()
		return m, m.selectFocus()

	case errMsg:
		m.SetError(msg.err)
		return m, nil

	case changedMsg:
		m.SetMessage(msg.message, false)
		m.focus, m.editFocus = msg.focus, msg.edit
		return m, m.loadTree

	case tea.KeyMsg:
		m.ClearMessage()
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *OutlineModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	node := m.selectedNode()

	switch {
	case key.Matches(msg, OutlineKeys.Quit):
		return tea.Quit

	case key.Matches(msg, OutlineKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}

	case key.Matches(msg, OutlineKeys.Down):
		if m.cursor < len(m.flatNodes)-1 {
			m.cursor++
		}

	case key.Matches(msg, OutlineKeys.Collapse):
		if node == nil {
			return nil
		}
		if node.IsExpanded && len(node.Children) > 0 {
			m.collapsed[node.ID] = true
			node.Collapse()
			m.refreshFlatNodes()
		} else if node.Parent != nil && node.Parent != m.root {
			m.selectNode(node.Parent)
		}

	case key.Matches(msg, OutlineKeys.Expand):
		if node != nil && len(node.Children) > 0 && !node.IsExpanded {
			delete(m.collapsed, node.ID)
			node.Expand()
			m.refreshFlatNodes()
		}

	case key.Matches(msg, OutlineKeys.Sibling):
		parent := m.root
		if node != nil {
			parent = node.Parent
		}
		if parent == nil {
			return nil
		}
		return m.create(parent.ID)

	case key.Matches(msg, OutlineKeys.Child):
		if node == nil || node.Cycle || node.Missing {
			return nil
		}
		delete(m.collapsed, node.ID)
		return m.create(node.ID)

	case key.Matches(msg, OutlineKeys.Indent):
		if node == nil {
			return nil
		}
		senpai := node.Senpai()
		if senpai == nil {
			m.SetMessage("Nothing above to indent under", true)
			return nil
		}
		delete(m.collapsed, senpai.ID)
		return m.run(node.ID, func() (string, error) {
			r, err := commands.NewIndentCommand(m.sea, node.ID.String(), senpai.ID.String(), node.Parent.ID.String()).Execute(m.ctx)
			if err != nil {
				return "", err
			}
			return r.Message, nil
		})

	case key.Matches(msg, OutlineKeys.Unindent):
		if node == nil {
			return nil
		}
		gp := node.Grandparent()
		if gp == nil {
			m.SetMessage("Already at the top level", true)
			return nil
		}
		return m.run(node.ID, func() (string, error) {
			r, err := commands.NewUnindentCommand(m.sea, node.ID.String(), node.Parent.ID.String(), gp.ID.String()).Execute(m.ctx)
			if err != nil {
				return "", err
			}
			return r.Message, nil
		})

	case key.Matches(msg, OutlineKeys.Unlink):
		if node == nil {
			return nil
		}
		focus := m.root.ID
		if s := node.Senpai(); s != nil {
			focus = s.ID
		} else if node.Parent != m.root {
			focus = node.Parent.ID
		}
		return m.run(focus, func() (string, error) {
			r, err := commands.NewUnlinkCommand(m.sea, node.ID.String(), node.Parent.ID.String()).Execute(m.ctx)
			if err != nil {
				return "", err
			}
			return r.Message, nil
		})

	case key.Matches(msg, OutlineKeys.Edit):
		if node != nil && !node.Cycle && !node.Missing {
			return switchToEdit(node)
		}

	case key.Matches(msg, OutlineKeys.External):
		if node != nil && !node.Cycle && !node.Missing {
			id, text := node.ID, node.Bubble.Text
			return func() tea.Msg {
				return OpenEditorMsg{ID: id, Text: text}
			}
		}

	case key.Matches(msg, OutlineKeys.Yank):
		if node == nil {
			return nil
		}
		if err := m.copy(node.ID.String()); err != nil {
			m.SetError(fmt.Errorf("clipboard: %w", err))
			return nil
		}
		m.SetMessage(fmt.Sprintf("Copied %s", node.ID), false)

	case key.Matches(msg, OutlineKeys.Reload):
		return m.Reload()

	case key.Matches(msg, OutlineKeys.Help):
		return func() tea.Msg {
			return SwitchToHelpMsg{}
		}
	}

	return nil
}

func switchToEdit(node *domain.TreeNode) tea.Cmd {
	id, text := node.ID, node.Bubble.Text
	return func() tea.Msg {
		return SwitchToEditMsg{ID: id, Text: text}
	}
}

func (m *OutlineModel) create(parent domain.ID) tea.Cmd {
	return func() tea.Msg {
		r, err := commands.NewCreateCommand(m.sea, parent.String(), "").Execute(m.ctx)
		if err != nil {
			return errMsg{err}
		}
		return changedMsg{message: r.Message, focus: r.ID, edit: true}
	}
}

// run executes an edit off the update loop and reloads with focus selected
func (m *OutlineModel) run(focus domain.ID, op func() (string, error)) tea.Cmd {
	return func() tea.Msg {
		message, err := op()
		if err != nil {
			return errMsg{err}
		}
		return changedMsg{message: message, focus: focus}
	}
}

// applyCollapsed restores the collapsed state kept across reloads
func (m *OutlineModel) applyCollapsed(n *domain.TreeNode) {
	for _, c := range n.Children {
		if m.collapsed[c.ID] {
			c.Collapse()
		}
		m.applyCollapsed(c)
	}
}

// selectFocus moves the cursor to the pending focus, opening the
// editor on it when the edit was a creation.
func (m *OutlineModel) selectFocus() tea.Cmd {
	focus, edit := m.focus, m.editFocus
	m.focus, m.editFocus = 0, false
	if focus == 0 {
		return nil
	}
	for _, n := range m.flatNodes {
		if n.ID == focus {
			m.selectNode(n)
			if edit {
				return switchToEdit(n)
			}
			return nil
		}
	}
	return nil
}

func (m *OutlineModel) selectNode(target *domain.TreeNode) {
	for i, n := range m.flatNodes {
		if n == target {
			m.cursor = i
			return
		}
	}
}

func (m *OutlineModel) selectedNode() *domain.TreeNode {
	if m.cursor >= 0 && m.cursor < len(m.flatNodes) {
		return m.flatNodes[m.cursor]
	}
	return nil
}

func (m *OutlineModel) refreshFlatNodes() {
	if m.root == nil {
		return
	}
	m.flatNodes = m.root.Flatten()
	// The root is the title, not a row
	if len(m.flatNodes) > 0 {
		m.flatNodes = m.flatNodes[1:]
	}
	if m.cursor >= len(m.flatNodes) {
		m.cursor = len(m.flatNodes) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// Selected returns the bubble under the cursor
func (m *OutlineModel) Selected() (*domain.TreeNode, bool) {
	n := m.selectedNode()
	return n, n != nil
}

// Reload rebuilds the tree, keeping the cursor on the same bubble
func (m *OutlineModel) Reload() tea.Cmd {
	if n := m.selectedNode(); n != nil {
		m.focus = n.ID
	}
	return m.loadTree
}

// Changed reports an edit made outside the outline, e.g. by the edit view
func Changed(message string, focus domain.ID) tea.Msg {
	return changedMsg{message: message, focus: focus}
}

// IsOutlineMsg reports whether msg is addressed to the outline view
func IsOutlineMsg(msg tea.Msg) bool {
	switch msg.(type) {
	case treeLoadedMsg, errMsg, changedMsg:
		return true
	}
	return false
}

// Failed reports an error from outside the outline
func Failed(err error) tea.Msg {
	if err == nil {
		err = errors.New("unknown error")
	}
	return errMsg{err}
}

// View renders the outline
func (m *OutlineModel) View() string {
	var b strings.Builder

	if m.root == nil {
		if m.Message != "" {
			b.WriteString(RenderMessage(m.Message, m.MessageErr))
			b.WriteString("\n\n")
			b.WriteString(styles.MutedText.Render(fmt.Sprintf("Could not open root %s. Press q to quit.", m.rootID)))
			return styles.App.Render(b.String())
		}
		return styles.App.Render("Loading...")
	}

	title, _ := FirstLine(m.root.Bubble.Text)
	heading := styles.Title.Render(m.root.ID.String())
	if len(title) > 0 {
		heading = styles.Title.Render(styles.RenderSpans(title))
	}
	b.WriteString(heading)
	b.WriteString("\n")

	if len(m.flatNodes) == 0 {
		b.WriteString(styles.Subtitle.Render("Empty. Press enter to add a bubble."))
		b.WriteString("\n")
	}
	for i, node := range m.visibleRange() {
		b.WriteString(RenderNode(node, node.Depth()-1, i+m.offset() == m.cursor))
		b.WriteString("\n")
	}

	if m.Message != "" {
		b.WriteString("\n")
		b.WriteString(RenderMessage(m.Message, m.MessageErr))
	}

	b.WriteString("\n")
	b.WriteString(RenderHelpLine(
		OutlineKeys.Sibling,
		OutlineKeys.Indent,
		OutlineKeys.Edit,
		OutlineKeys.Yank,
		OutlineKeys.Help,
		OutlineKeys.Quit,
	))

	return styles.App.Render(b.String())
}

// rows available for the outline once title, status and help are drawn
func (m *OutlineModel) pageSize() int {
	if m.Height <= 0 {
		return len(m.flatNodes)
	}
	return max(m.Height-8, 1)
}

func (m *OutlineModel) offset() int {
	page := m.pageSize()
	if m.cursor < page {
		return 0
	}
	return m.cursor - page + 1
}

func (m *OutlineModel) visibleRange() []*domain.TreeNode {
	start := m.offset()
	end := min(start+m.pageSize(), len(m.flatNodes))
	return m.flatNodes[start:end]
}

// Messages for view switching
type SwitchToEditMsg struct {
	ID   domain.ID
	Text string
}

type OpenEditorMsg struct {
	ID   domain.ID
	Text string
}

type SwitchToHelpMsg struct{}

type SwitchToOutlineMsg struct{}
