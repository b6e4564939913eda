package models

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/session"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

type authMode string

const (
	modeLogin    authMode = "login"
	modeRegister authMode = "register"
)

// AuthModel renders the login/registration form and drives the session store's
// login and register operations
type AuthModel struct {
	width, height int
	store         *session.Store
	mode          authMode
	inputs        []textinput.Model
	focus         int
	submitting    bool
	errMsg        string
}

func NewAuthModel(store *session.Store) *AuthModel {
	m := &AuthModel{
		store: store,
		mode:  modeLogin,
	}
	m.buildInputs()
	return m
}

func (m *AuthModel) ViewType() View {
	return ViewAuth
}

func (m *AuthModel) Init() tea.Cmd {
	return textinput.Blink
}

// buildInputs (re)creates the form fields for the current mode
func (m *AuthModel) buildInputs() {
	email := textinput.New()
	email.Placeholder = "email"
	email.CharLimit = 128

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword

	if m.mode == modeRegister {
		username := textinput.New()
		username.Placeholder = "username"
		username.CharLimit = 64
		m.inputs = []textinput.Model{username, email, password}
	} else {
		m.inputs = []textinput.Model{email, password}
	}

	m.focus = 0
	m.inputs[0].Focus()
}

func (m *AuthModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case AuthErrorMsg:
		m.submitting = false
		m.errMsg = msg.Error
		return m, nil

	case tea.KeyMsg:
		if m.submitting {
			// Form is locked while a request is outstanding
			return m, nil
		}

		switch kb.GetActionByKey(msg, kb.ContextAuth) {
		case kb.ActionToggleMode:
			if m.mode == modeLogin {
				m.mode = modeRegister
			} else {
				m.mode = modeLogin
			}
			m.errMsg = ""
			m.buildInputs()
			return m, nil

		case kb.ActionNextField:
			if msg.String() == "shift+tab" {
				m.focus = (m.focus - 1 + len(m.inputs)) % len(m.inputs)
			} else {
				m.focus = (m.focus + 1) % len(m.inputs)
			}
			for i := range m.inputs {
				if i == m.focus {
					m.inputs[i].Focus()
				} else {
					m.inputs[i].Blur()
				}
			}
			return m, nil

		case kb.ActionSubmit:
			m.errMsg = ""
			m.submitting = true
			return m, m.submit()
		}
	}

	// Everything else goes to the focused input
	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// submit runs the login or registration against the session store
func (m *AuthModel) submit() tea.Cmd {
	mode := m.mode
	store := m.store

	var creds domain.Credentials
	var reg domain.Registration
	if mode == modeRegister {
		reg = domain.Registration{
			Username: strings.TrimSpace(m.inputs[0].Value()),
			Email:    strings.TrimSpace(m.inputs[1].Value()),
			Password: m.inputs[2].Value(),
		}
	} else {
		creds = domain.Credentials{
			Email:    strings.TrimSpace(m.inputs[0].Value()),
			Password: m.inputs[1].Value(),
		}
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		var err error
		if mode == modeRegister {
			err = store.Register(ctx, reg)
		} else {
			err = store.Login(ctx, creds)
		}

		if err != nil {
			log.Warn("Authentication failed", "mode", string(mode), "error", err)
			return AuthErrorMsg{Error: err.Error()}
		}
		return AuthSuccessMsg{}
	}
}

// Reset clears the form so it is ready for a fresh login, for example after a logout
func (m *AuthModel) Reset() {
	m.mode = modeLogin
	m.submitting = false
	m.errMsg = ""
	m.buildInputs()
}

func (m *AuthModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *AuthModel) View() string {
	contentWidth := min(m.width, 80)

	header := styles.Header(contentWidth, "Yozora")

	var b strings.Builder
	if m.mode == modeLogin {
		b.WriteString(styles.SectionTitle.Render("Sign in") + "\n\n")
	} else {
		b.WriteString(styles.SectionTitle.Render("Create an account") + "\n\n")
	}

	labels := []string{"Email", "Password"}
	if m.mode == modeRegister {
		labels = []string{"Username", "Email", "Password"}
	}
	for i, input := range m.inputs {
		b.WriteString(styles.Subtle.Render(labels[i]) + "\n")
		b.WriteString(input.View() + "\n\n")
	}

	if m.submitting {
		b.WriteString(styles.Info.Render("Authenticating...") + "\n")
	} else if m.errMsg != "" {
		b.WriteString(styles.Error.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n")
	b.WriteString(styles.Subtle.Render("enter: submit • tab: next field • ctrl+r: switch login/register"))

	mainContent := styles.ContentBox(contentWidth, b.String(), 1)
	combinedContent := lipgloss.JoinVertical(lipgloss.Center, header, mainContent)

	return styles.CenteredView(m.width, m.height, combinedContent)
}
