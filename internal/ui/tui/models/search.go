package models

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/service"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

// SearchModel renders the free-text catalog search.  Like the browse view, every
// fetch carries a sequence number and stale responses are dropped, which matters
// here because repeated submissions can overlap.
type SearchModel struct {
	width, height int
	svc           *service.CatalogService
	input         textinput.Model
	typing        bool
	query         string
	page          int
	seq           int
	loading       bool
	loadError     error
	spinner       spinner.Model
	anime         []domain.Anime
	pagination    *domain.Pagination
	cursor        int
	searched      bool
}

func NewSearchModel(svc *service.CatalogService) *SearchModel {
	input := textinput.New()
	input.Placeholder = "search anime... (single letter for index, 'all' to browse everything)"
	input.CharLimit = 100
	input.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	return &SearchModel{
		svc:     svc,
		input:   input,
		typing:  true,
		page:    1,
		spinner: s,
	}
}

func (m *SearchModel) ViewType() View {
	return ViewSearch
}

func (m *SearchModel) Init() tea.Cmd {
	return textinput.Blink
}

// Focus puts the view back into typing mode, ready for a new query
func (m *SearchModel) Focus() {
	m.typing = true
	m.input.Focus()
}

// CapturingInput reports whether keystrokes currently go to the query input
func (m *SearchModel) CapturingInput() bool {
	return m.typing
}

// search issues a fetch for the current query and page, tagged with a fresh
// sequence number
func (m *SearchModel) search() tea.Cmd {
	m.seq++
	seq := m.seq
	svc := m.svc
	query := m.query
	page := m.page

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		result, err := svc.Search(ctx, query, page)
		if err != nil {
			log.Error("Search failed", "query", query, "error", err, "seq", seq)
			return FetchErrorMsg{Error: err, Seq: seq}
		}
		return ListLoadedMsg{Page: result, Seq: seq}
	}
}

func (m *SearchModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ListLoadedMsg:
		if msg.Seq != m.seq {
			log.Debug("Discarding stale search response", "got", msg.Seq, "want", m.seq)
			return m, nil
		}
		m.loading = false
		m.loadError = nil
		m.searched = true
		m.anime = msg.Page.Data
		m.pagination = msg.Page.Pagination
		m.cursor = clampCursor(m.cursor, len(m.anime))
		return m, nil

	case FetchErrorMsg:
		if msg.Seq != m.seq {
			return m, nil
		}
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case tea.KeyMsg:
		if m.typing {
			switch msg.String() {
			case "enter":
				query := strings.TrimSpace(m.input.Value())
				if query == "" {
					return m, nil
				}
				m.typing = false
				m.input.Blur()
				m.query = query
				m.page = 1
				m.cursor = 0
				m.loading = true
				m.loadError = nil
				return m, tea.Batch(m.spinner.Tick, m.search())
			case "esc":
				// Leave typing mode without searching; app-level esc handling only
				// kicks in once the input is blurred
				if m.searched {
					m.typing = false
					m.input.Blur()
					return m, nil
				}
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch kb.GetActionByKey(msg, kb.ContextList) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case kb.ActionMoveDown:
			if len(m.anime) > 0 && m.cursor < len(m.anime)-1 {
				m.cursor++
			}
		case kb.ActionNextPage:
			if m.pagination != nil && !m.pagination.HasNextPage {
				return m, nil
			}
			m.page++
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.search())
		case kb.ActionPrevPage:
			if m.page <= 1 {
				return m, nil
			}
			m.page--
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.search())
		case kb.ActionOpenDetail:
			if len(m.anime) > 0 && m.cursor < len(m.anime) {
				id := m.anime[m.cursor].MalID
				return m, func() tea.Msg { return ShowDetailMsg{ID: id} }
			}
		}

		// Any other printable key returns to typing mode for a new query
		if msg.String() == "/" {
			m.Focus()
			return m, textinput.Blink
		}
	}

	return m, nil
}

func (m *SearchModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *SearchModel) View() string {
	contentWidth := min(m.width, 120)
	header := styles.Header(contentWidth, "Yozora - Search")

	var b strings.Builder
	b.WriteString(m.input.View() + "\n\n")

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Searching...")
	case m.loadError != nil:
		b.WriteString(styles.Error.Render(m.loadError.Error()))
	case m.searched && len(m.anime) == 0:
		b.WriteString(styles.Subtle.Render(fmt.Sprintf("No results for %q.", m.query)))
	case m.searched:
		cursor := m.cursor
		if m.typing {
			cursor = -1
		}
		b.WriteString(renderAnimeRows(m.anime, cursor, contentWidth-4, maxListRows(m.height)))
	default:
		b.WriteString(styles.Subtle.Render("Type a query and press enter."))
	}

	pageInfo := ""
	if m.pagination != nil {
		pageInfo = fmt.Sprintf("page %d/%d • ", m.pagination.CurrentPage, m.pagination.LastVisiblePage)
	}

	mainContent := styles.ContentBox(contentWidth, b.String(), 1)
	footer := styles.StatusBar.Render(pageInfo + "enter: search/details • /: new search • n/p: page • esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}
