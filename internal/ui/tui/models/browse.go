package models

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/service"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

// BrowseModel renders a paginated catalog listing.  The listing parameters are a
// preset (top rated by default, ongoing or per-genre when navigated to from other
// views) with the page number layered on top.
//
// Each outgoing fetch is tagged with a sequence number.  A response is applied only
// if it belongs to the latest issued fetch, so a stale response can never overwrite
// newer state when the user flips pages faster than the network answers.
type BrowseModel struct {
	width, height int
	svc           *service.CatalogService
	title         string
	baseParams    domain.ListParams
	page          int
	seq           int
	loading       bool
	loadError     error
	spinner       spinner.Model
	anime         []domain.Anime
	pagination    *domain.Pagination
	cursor        int
}

func NewBrowseModel(svc *service.CatalogService) *BrowseModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	m := &BrowseModel{
		svc:     svc,
		spinner: s,
	}
	m.SetPreset("Top Rated", domain.ListParams{"limit": 20, "order_by": "score", "sort": "desc"})
	return m
}

func (m *BrowseModel) ViewType() View {
	return ViewBrowse
}

func (m *BrowseModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// SetPreset replaces the listing parameters and resets to the first page.  The next
// Init or load applies it.
func (m *BrowseModel) SetPreset(title string, params domain.ListParams) {
	m.title = title
	m.baseParams = params
	m.page = 1
	m.anime = nil
	m.pagination = nil
	m.cursor = 0
	m.loading = true
	m.loadError = nil
}

// load issues a fetch for the current params and page, tagged with a fresh sequence
// number
func (m *BrowseModel) load() tea.Cmd {
	m.seq++
	seq := m.seq
	svc := m.svc

	params := domain.ListParams{"page": m.page}
	for key, value := range m.baseParams {
		params[key] = value
	}

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		page, err := svc.List(ctx, params)
		if err != nil {
			log.Error("Failed to load catalog listing", "error", err, "seq", seq)
			return FetchErrorMsg{Error: err, Seq: seq}
		}
		return ListLoadedMsg{Page: page, Seq: seq}
	}
}

func (m *BrowseModel) Update(msg tea.Msg) (Model, tea.Cmd) {
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
			log.Debug("Discarding stale listing response", "got", msg.Seq, "want", m.seq)
			return m, nil
		}
		m.loading = false
		m.loadError = nil
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
		switch kb.GetActionByKey(msg, kb.ContextList) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case kb.ActionMoveDown:
			if len(m.anime) > 0 && m.cursor < len(m.anime)-1 {
				m.cursor++
			}
		case kb.ActionMoveTop:
			m.cursor = 0
		case kb.ActionMoveBottom:
			m.cursor = clampCursor(len(m.anime)-1, len(m.anime))
		case kb.ActionNextPage:
			if m.pagination != nil && !m.pagination.HasNextPage {
				return m, nil
			}
			m.page++
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.load())
		case kb.ActionPrevPage:
			if m.page <= 1 {
				return m, nil
			}
			m.page--
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.load())
		case kb.ActionRefresh:
			m.loading = true
			return m, tea.Batch(m.spinner.Tick, m.load())
		case kb.ActionOpenDetail:
			if len(m.anime) > 0 && m.cursor < len(m.anime) {
				id := m.anime[m.cursor].MalID
				return m, func() tea.Msg { return ShowDetailMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *BrowseModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *BrowseModel) View() string {
	contentWidth := min(m.width, 120)
	header := styles.Header(contentWidth, "Yozora - "+m.title)

	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " Loading..."
	case m.loadError != nil:
		content = styles.Error.Render(m.loadError.Error())
	default:
		content = renderAnimeRows(m.anime, m.cursor, contentWidth-4, maxListRows(m.height))
	}

	pageInfo := fmt.Sprintf("page %d", m.page)
	if m.pagination != nil {
		pageInfo = fmt.Sprintf("page %d/%d", m.pagination.CurrentPage, m.pagination.LastVisiblePage)
	}

	mainContent := styles.ContentBox(contentWidth, content, 1)
	footer := styles.StatusBar.Render(pageInfo + " • enter: details • n/p: page • r: reload • esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}

// maxListRows derives how many list rows fit in the current terminal height,
// accounting for the header, borders and footer
func maxListRows(height int) int {
	rows := height - 8
	if rows < 5 {
		rows = 5
	}
	return rows
}
