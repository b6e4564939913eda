package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/service"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

// WatchModel renders the watch screen:  an episode picker next to a placeholder
// player pane.  No playback happens here; the pane shows the stream link metadata
// for the selected episode.
type WatchModel struct {
	width, height int
	svc           *service.CatalogService
	animeID       int
	loading       bool
	loadError     error
	spinner       spinner.Model
	data          *service.WatchData
	cursor        int
}

func NewWatchModel(svc *service.CatalogService) *WatchModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	return &WatchModel{
		svc:     svc,
		spinner: s,
	}
}

func (m *WatchModel) ViewType() View {
	return ViewWatch
}

func (m *WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Show points the model at a new anime.  The next Init fetches it.
func (m *WatchModel) Show(id int) {
	m.animeID = id
	m.data = nil
	m.cursor = 0
	m.loading = true
	m.loadError = nil
}

func (m *WatchModel) load() tea.Cmd {
	svc := m.svc
	id := m.animeID

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		data, err := svc.LoadWatch(ctx, id)
		if err != nil {
			log.Error("Failed to load watch data", "id", id, "error", err)
			return FetchErrorMsg{Error: err}
		}
		return WatchLoadedMsg{Data: data}
	}
}

func (m *WatchModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case WatchLoadedMsg:
		m.loading = false
		m.loadError = nil
		m.data = msg.Data
		m.cursor = 0
		return m, nil

	case FetchErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case tea.KeyMsg:
		switch kb.GetActionByKey(msg, kb.ContextWatch) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case kb.ActionMoveDown:
			if m.data != nil && m.cursor < len(m.data.Episodes)-1 {
				m.cursor++
			}
		}
	}

	return m, nil
}

func (m *WatchModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *WatchModel) View() string {
	contentWidth := min(m.width, 120)

	title := "Yozora - Watch"
	if m.data != nil && m.data.Anime != nil {
		title = "Yozora - " + m.data.Anime.Title
	}
	header := styles.Header(contentWidth, title)

	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " Loading..."
	case m.loadError != nil:
		content = styles.Error.Render(m.loadError.Error())
	case m.data == nil || m.data.Anime == nil:
		content = styles.Subtle.Render("Anime not found.")
	default:
		// Left pane:  episode picker.  Right pane:  player placeholder.
		var episodes strings.Builder
		episodes.WriteString(styles.SectionTitle.Render("Episodes") + "\n")
		if len(m.data.Episodes) == 0 {
			episodes.WriteString(styles.Subtle.Render("No episodes listed."))
		}
		maxRows := maxListRows(m.height)
		start := 0
		if m.cursor >= maxRows {
			start = m.cursor - maxRows + 1
		}
		end := min(start+maxRows, len(m.data.Episodes))
		for i := start; i < end; i++ {
			ep := m.data.Episodes[i]
			line := fmt.Sprintf("%d. %s", i+1, ep.Title)
			if i == m.cursor {
				episodes.WriteString(styles.Selected.Render("> "+line) + "\n")
			} else {
				episodes.WriteString("  " + line + "\n")
			}
		}

		var player strings.Builder
		player.WriteString(styles.SectionTitle.Render("Player") + "\n\n")
		player.WriteString(styles.Subtle.Render("Playback is not available in this build.") + "\n\n")
		if link := m.selectedLink(); link != "" {
			player.WriteString(styles.Info.Render("Stream link for the selected episode:") + "\n")
			player.WriteString(styles.Url.Render(link) + "\n")
		}

		leftWidth := contentWidth / 3
		left := styles.ContentBox(leftWidth, episodes.String(), 1)
		right := styles.ContentBox(contentWidth-leftWidth-2, player.String(), 1)
		content = lipgloss.JoinHorizontal(lipgloss.Top, left, right)

		footer := styles.StatusBar.Render("up/down: choose episode • esc: back")
		return lipgloss.JoinVertical(lipgloss.Left, header, content, footer)
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)
	footer := styles.StatusBar.Render("esc: back")
	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}

// selectedLink matches the highlighted episode to its stream link, if the catalog
// entry carries one
func (m *WatchModel) selectedLink() string {
	if m.data == nil || len(m.data.Episodes) == 0 || m.cursor >= len(m.data.Episodes) {
		return ""
	}
	episode := fmt.Sprintf("%d", m.cursor+1)
	for _, link := range m.data.Anime.StreamLinks {
		if link.Episode == episode {
			return link.Link
		}
	}
	return ""
}
