package models

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

// HelpModel displays contextual help with scrolling
type HelpModel struct {
	width, height int
	context       View
	viewport      viewport.Model
}

// NewHelpModel creates a new help model
func NewHelpModel() *HelpModel {
	return &HelpModel{
		context:  ViewHome,
		viewport: viewport.New(0, 0),
	}
}

func (m *HelpModel) ViewType() View {
	return ViewHelp
}

// Init initializes the model
func (m *HelpModel) Init() tea.Cmd {
	if m.width > 0 && m.height > 0 {
		m.updateContent()
	}
	return nil
}

// SetContext switches the help content to the bindings of the given view
func (m *HelpModel) SetContext(context View) {
	m.context = context
	m.updateContent()
}

// Update handles messages
func (m *HelpModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.MouseMsg:
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextHelp) {
		case kb.ActionMoveUp, kb.ActionMoveDown, kb.ActionPageUp, kb.ActionPageDown:
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		case kb.ActionMoveTop:
			m.viewport.GotoTop()
			return m, cmd
		case kb.ActionMoveBottom:
			m.viewport.GotoBottom()
			return m, cmd
		}
	}
	return m, cmd
}

// Resize updates the dimensions
func (m *HelpModel) Resize(width, height int) {
	m.width = width
	m.height = height

	contentWidth := width - 4    // Account for borders
	contentHeight := height - 10 // Account for header, footer, spacing

	if contentWidth < 1 {
		contentWidth = 1
	}
	if contentHeight < 1 {
		contentHeight = 1
	}

	m.viewport.Width = contentWidth
	m.viewport.Height = contentHeight

	m.updateContent()
}

// helpContextName maps a view to the keybinding context its help should show
func helpContextName(view View) kb.ContextName {
	switch view {
	case ViewAuth:
		return kb.ContextAuth
	case ViewHome:
		return kb.ContextHome
	case ViewBrowse, ViewSearch:
		return kb.ContextList
	case ViewGenres:
		return kb.ContextGenres
	case ViewSchedule:
		return kb.ContextSchedule
	case ViewDetail:
		return kb.ContextDetail
	case ViewWatch:
		return kb.ContextWatch
	case ViewProfile:
		return kb.ContextProfile
	default:
		return kb.ContextGlobal
	}
}

// updateContent rebuilds the help text for the current context
func (m *HelpModel) updateContent() {
	var b strings.Builder

	contextName := helpContextName(m.context)
	if bindings, ok := kb.ContextBindings[contextName]; ok {
		b.WriteString(kb.GetHelpText("Keys for this view", bindings))
		b.WriteString("\n")
	}
	b.WriteString(kb.GetHelpText("Global keys", kb.ContextBindings[kb.ContextGlobal]))

	m.viewport.SetContent(b.String())
}

func (m *HelpModel) View() string {
	contentWidth := min(m.width, 100)
	header := styles.Header(contentWidth, "Yozora - Help")

	mainContent := styles.ContentBox(contentWidth, m.viewport.View(), 1)
	footer := styles.StatusBar.Render("up/down: scroll • esc: close")

	combined := lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
	return styles.CenteredView(m.width, m.height, combined)
}
