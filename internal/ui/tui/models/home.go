package models

import (
	"context"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/service"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
	"github.com/yozora-app/yozora/internal/ui/tui/util"
)

// homeSection is one titled block of entries on the home view
type homeSection struct {
	title string
	anime []domain.Anime
}

// HomeModel renders the landing view:  several curated catalog sections loaded
// together
type HomeModel struct {
	width, height int
	svc           *service.CatalogService
	loading       bool
	loadError     error
	spinner       spinner.Model
	sections      []homeSection
	section       int
	cursor        int
}

func NewHomeModel(svc *service.CatalogService) *HomeModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	return &HomeModel{
		svc:     svc,
		loading: true,
		spinner: s,
	}
}

func (m *HomeModel) ViewType() View {
	return ViewHome
}

func (m *HomeModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadHome(m.svc))
}

// loadHome fetches all home sections through the catalog service
func loadHome(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := svc.LoadHome(ctx)
		if err != nil {
			log.Error("Failed to load home data", "error", err)
			return FetchErrorMsg{Error: err}
		}
		return HomeLoadedMsg{Data: data}
	}
}

func (m *HomeModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case HomeLoadedMsg:
		m.loading = false
		m.loadError = nil
		m.sections = []homeSection{
			{title: "Most Popular", anime: msg.Data.Popular},
			{title: "Airing This Season", anime: msg.Data.SeasonNow},
			{title: "Recently Completed", anime: msg.Data.CompletedByDate},
			{title: "Most Favorited", anime: msg.Data.MostFavorited},
		}
		m.section = 0
		m.cursor = 0
		return m, nil

	case FetchErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch kb.GetActionByKey(msg, kb.ContextHome) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			} else if m.section > 0 {
				m.section--
				m.cursor = len(m.sections[m.section].anime) - 1
			}
		case kb.ActionMoveDown:
			if m.cursor < len(m.currentSection())-1 {
				m.cursor++
			} else if m.section < len(m.sections)-1 {
				m.section++
				m.cursor = 0
			}
		case kb.ActionMoveTop:
			m.section = 0
			m.cursor = 0
		case kb.ActionMoveBottom:
			m.section = len(m.sections) - 1
			m.cursor = len(m.currentSection()) - 1
		case kb.ActionRefresh:
			m.loading = true
			m.loadError = nil
			return m, tea.Batch(m.spinner.Tick, loadHome(m.svc))
		case kb.ActionOpenDetail:
			if anime := m.selectedAnime(); anime != nil {
				id := anime.MalID
				return m, func() tea.Msg { return ShowDetailMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *HomeModel) currentSection() []domain.Anime {
	if m.section >= len(m.sections) {
		return nil
	}
	return m.sections[m.section].anime
}

func (m *HomeModel) selectedAnime() *domain.Anime {
	section := m.currentSection()
	if len(section) == 0 || m.cursor >= len(section) {
		return nil
	}
	return &section[m.cursor]
}

func (m *HomeModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *HomeModel) View() string {
	contentWidth := min(m.width, 120)
	header := styles.Header(contentWidth, "Yozora")

	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " Loading..."
	case m.loadError != nil:
		content = styles.Error.Render("Failed to load home data: " + m.loadError.Error())
	default:
		var b strings.Builder

		// The highlighted entry doubles as a hero blurb at the top of the view
		if anime := m.selectedAnime(); anime != nil {
			b.WriteString(styles.SectionTitle.Render(anime.Title) + "\n")
			b.WriteString(styles.Subtle.Render(util.TruncateString(anime.Synopsis, (contentWidth-4)*2)) + "\n\n")
		}

		for i, section := range m.sections {
			b.WriteString(styles.SectionTitle.Render(section.title) + "\n")
			cursor := -1
			if i == m.section {
				cursor = m.cursor
			}
			b.WriteString(renderAnimeRows(section.anime, cursor, contentWidth-4, 6))
			b.WriteString("\n")
		}
		content = b.String()
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)
	footer := styles.StatusBar.Render("enter: details • r: reload • B: browse • S: search • W: schedule • P: profile • ctrl+h: help")

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}
