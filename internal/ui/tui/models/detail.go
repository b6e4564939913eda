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
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
	"github.com/yozora-app/yozora/internal/ui/tui/util"
)

// DetailModel renders the full catalog entry for a single anime
type DetailModel struct {
	width, height int
	svc           *service.CatalogService
	animeID       int
	loading       bool
	loadError     error
	spinner       spinner.Model
	anime         *domain.AnimeFull
}

func NewDetailModel(svc *service.CatalogService) *DetailModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	return &DetailModel{
		svc:     svc,
		spinner: s,
	}
}

func (m *DetailModel) ViewType() View {
	return ViewDetail
}

func (m *DetailModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Show points the model at a new anime.  The next Init fetches it.
func (m *DetailModel) Show(id int) {
	m.animeID = id
	m.anime = nil
	m.loading = true
	m.loadError = nil
}

func (m *DetailModel) load() tea.Cmd {
	svc := m.svc
	id := m.animeID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		anime, err := svc.Detail(ctx, id)
		if err != nil {
			log.Error("Failed to load anime detail", "id", id, "error", err)
			return FetchErrorMsg{Error: err}
		}
		return DetailLoadedMsg{Anime: anime}
	}
}

func (m *DetailModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DetailLoadedMsg:
		m.loading = false
		m.loadError = nil
		m.anime = msg.Anime
		return m, nil

	case FetchErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextDetail) {
		case kb.ActionWatch:
			if m.anime != nil {
				id := m.anime.MalID
				return m, func() tea.Msg { return ShowWatchMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *DetailModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *DetailModel) View() string {
	contentWidth := min(m.width, 120)
	header := styles.Header(contentWidth, "Yozora - Details")

	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " Loading..."
	case m.loadError != nil:
		content = styles.Error.Render(m.loadError.Error())
	case m.anime == nil:
		content = styles.Subtle.Render("Anime not found.")
	default:
		var b strings.Builder
		anime := m.anime

		b.WriteString(styles.SectionTitle.Render(anime.Title) + "\n\n")

		var genres []string
		for _, genre := range anime.Genres {
			genres = append(genres, genre.Name)
		}
		var studios []string
		for _, studio := range anime.Studios {
			studios = append(studios, studio.Name)
		}

		b.WriteString(styles.Subtle.Render("Score:    ") + "★ " + util.FormatScore(anime.Score) + "\n")
		b.WriteString(styles.Subtle.Render("Status:   ") + anime.Status + "\n")
		if anime.Episodes > 0 {
			b.WriteString(styles.Subtle.Render("Episodes: ") + fmt.Sprintf("%d", anime.Episodes) + "\n")
		}
		if len(genres) > 0 {
			b.WriteString(styles.Subtle.Render("Genres:   ") + strings.Join(genres, ", ") + "\n")
		}
		if len(studios) > 0 {
			b.WriteString(styles.Subtle.Render("Studios:  ") + strings.Join(studios, ", ") + "\n")
		}
		b.WriteString("\n")
		b.WriteString(styles.Info.Render(anime.Synopsis) + "\n")

		if len(anime.StreamLinks) > 0 {
			b.WriteString("\n")
			b.WriteString(styles.Subtle.Render(fmt.Sprintf("%d episodes available to watch.  Press 'w' to open the watch screen.", len(anime.StreamLinks))) + "\n")
		}

		content = b.String()
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)
	footer := styles.StatusBar.Render("w: watch • esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}
