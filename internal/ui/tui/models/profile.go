package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/service"
	"github.com/yozora-app/yozora/internal/session"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

// ProfileModel renders the authenticated user's profile (including the level/XP
// gamification fields) and their favorited catalog entries
type ProfileModel struct {
	width, height int
	store         *session.Store
	svc           *service.CatalogService
	loading       bool
	loadError     error
	spinner       spinner.Model
	favorites     []domain.Anime
	cursor        int
}

func NewProfileModel(store *session.Store, svc *service.CatalogService) *ProfileModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	return &ProfileModel{
		store:   store,
		svc:     svc,
		loading: true,
		spinner: s,
	}
}

func (m *ProfileModel) ViewType() View {
	return ViewProfile
}

func (m *ProfileModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadFavorites(m.svc))
}

func loadFavorites(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		favorites, err := svc.Favorites(ctx)
		if err != nil {
			log.Error("Failed to load favorites", "error", err)
			return FetchErrorMsg{Error: err}
		}
		return FavoritesLoadedMsg{Favorites: favorites}
	}
}

// refreshProfile re-fetches the profile through the session store, then reloads the
// favorites list
func refreshProfile(store *session.Store, svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store.FetchProfile(ctx)
		if !store.IsAuthenticated() {
			// The token was rejected while refreshing.  The app model notices the
			// session change on the next message, so just report the reload result.
			return SessionReadyMsg{}
		}
		return loadFavorites(svc)()
	}
}

func (m *ProfileModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case FavoritesLoadedMsg:
		m.loading = false
		m.loadError = nil
		m.favorites = msg.Favorites
		m.cursor = clampCursor(m.cursor, len(m.favorites))
		return m, nil

	case FetchErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextProfile) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case kb.ActionMoveDown:
			if len(m.favorites) > 0 && m.cursor < len(m.favorites)-1 {
				m.cursor++
			}
		case kb.ActionRefresh:
			m.loading = true
			m.loadError = nil
			return m, tea.Batch(m.spinner.Tick, refreshProfile(m.store, m.svc))
		case kb.ActionOpenDetail:
			if len(m.favorites) > 0 && m.cursor < len(m.favorites) {
				id := m.favorites[m.cursor].MalID
				return m, func() tea.Msg { return ShowDetailMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *ProfileModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ProfileModel) View() string {
	contentWidth := min(m.width, 120)
	header := styles.Header(contentWidth, "Yozora - Profile")

	var b strings.Builder

	if user := m.store.User(); user != nil {
		b.WriteString(styles.SectionTitle.Render(user.Username) + "\n")
		b.WriteString(styles.Subtle.Render(user.Email) + "\n\n")
		b.WriteString(fmt.Sprintf("Level %d  •  %d / %d XP\n", user.Level, user.XP, user.XPForNextLevel))
		b.WriteString(renderXPBar(user, min(contentWidth-6, 40)) + "\n\n")
	} else {
		b.WriteString(styles.Subtle.Render("Profile not loaded.") + "\n\n")
	}

	b.WriteString(styles.SectionTitle.Render("Favorites") + "\n")
	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading...")
	case m.loadError != nil:
		b.WriteString(styles.Error.Render(m.loadError.Error()))
	case len(m.favorites) == 0:
		b.WriteString(styles.Subtle.Render("No favorites yet."))
	default:
		b.WriteString(renderAnimeRows(m.favorites, m.cursor, contentWidth-4, maxListRows(m.height)-6))
	}

	mainContent := styles.ContentBox(contentWidth, b.String(), 1)
	footer := styles.StatusBar.Render("enter: details • r: refresh • ctrl+l: logout • esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}

// renderXPBar renders the progress toward the next level as a simple bar
func renderXPBar(user *domain.User, width int) string {
	if user.XPForNextLevel <= 0 || width <= 0 {
		return ""
	}
	filled := user.XP * width / user.XPForNextLevel
	if filled > width {
		filled = width
	}
	return styles.Selected.Render(strings.Repeat("█", filled)) + styles.Subtle.Render(strings.Repeat("░", width-filled))
}
