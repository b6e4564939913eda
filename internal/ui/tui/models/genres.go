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
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/yozora-app/yozora/internal/domain"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/service"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

// GenresModel renders the genre taxonomy as a picker.  Selecting a genre opens the
// browse view filtered to it.  The list is filtered locally with a fuzzy match.
type GenresModel struct {
	width, height int
	svc           *service.CatalogService
	loading       bool
	loadError     error
	spinner       spinner.Model
	allGenres     []domain.Genre
	filtered      []domain.Genre
	filterInput   textinput.Model
	filtering     bool
	cursor        int
}

func NewGenresModel(svc *service.CatalogService) *GenresModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	input := textinput.New()
	input.Placeholder = "filter genres..."
	input.CharLimit = 40

	return &GenresModel{
		svc:         svc,
		loading:     true,
		spinner:     s,
		filterInput: input,
	}
}

func (m *GenresModel) ViewType() View {
	return ViewGenres
}

// CapturingInput reports whether keystrokes currently go to the filter input
func (m *GenresModel) CapturingInput() bool {
	return m.filtering
}

func (m *GenresModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, loadGenres(m.svc))
}

func loadGenres(svc *service.CatalogService) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		genres, err := svc.Genres(ctx)
		if err != nil {
			log.Error("Failed to load genres", "error", err)
			return FetchErrorMsg{Error: err}
		}
		return GenresLoadedMsg{Genres: genres}
	}
}

// applyFilter recomputes the visible genre list from the filter input
func (m *GenresModel) applyFilter() {
	query := strings.TrimSpace(m.filterInput.Value())
	if query == "" {
		m.filtered = m.allGenres
	} else {
		filtered := []domain.Genre{}
		for _, genre := range m.allGenres {
			if fuzzy.MatchFold(query, genre.Name) {
				filtered = append(filtered, genre)
			}
		}
		m.filtered = filtered
	}
	m.cursor = clampCursor(m.cursor, len(m.filtered))
}

func (m *GenresModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case GenresLoadedMsg:
		m.loading = false
		m.loadError = nil
		m.allGenres = msg.Genres
		m.applyFilter()
		return m, nil

	case FetchErrorMsg:
		m.loading = false
		m.loadError = msg.Error
		return m, nil

	case tea.KeyMsg:
		if m.filtering {
			switch msg.String() {
			case "enter", "esc":
				m.filtering = false
				m.filterInput.Blur()
				return m, nil
			}
			var cmd tea.Cmd
			m.filterInput, cmd = m.filterInput.Update(msg)
			m.applyFilter()
			return m, cmd
		}

		switch kb.GetActionByKey(msg, kb.ContextGenres) {
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case kb.ActionMoveDown:
			if len(m.filtered) > 0 && m.cursor < len(m.filtered)-1 {
				m.cursor++
			}
		case kb.ActionFilter:
			m.filtering = true
			m.filterInput.Focus()
			return m, textinput.Blink
		case kb.ActionOpenDetail:
			if len(m.filtered) > 0 && m.cursor < len(m.filtered) {
				genre := m.filtered[m.cursor]
				return m, func() tea.Msg {
					return BrowseMsg{
						Title: genre.Name,
						Params: domain.ListParams{
							"genres": genre.MalID,
							"limit":  24,
						},
					}
				}
			}
		}
	}

	return m, nil
}

func (m *GenresModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *GenresModel) View() string {
	contentWidth := min(m.width, 120)
	header := styles.Header(contentWidth, "Yozora - Genres")

	var b strings.Builder
	if m.filtering || m.filterInput.Value() != "" {
		b.WriteString(m.filterInput.View() + "\n\n")
	}

	switch {
	case m.loading:
		b.WriteString(m.spinner.View() + " Loading...")
	case m.loadError != nil:
		b.WriteString(styles.Error.Render(m.loadError.Error()))
	case len(m.filtered) == 0:
		b.WriteString(styles.Subtle.Render("No genres match the filter."))
	default:
		maxRows := maxListRows(m.height)
		start := 0
		if m.cursor >= maxRows {
			start = m.cursor - maxRows + 1
		}
		end := min(start+maxRows, len(m.filtered))
		for i := start; i < end; i++ {
			genre := m.filtered[i]
			line := fmt.Sprintf("%s (%d)", genre.Name, genre.Count)
			if i == m.cursor {
				b.WriteString(styles.Selected.Render("> "+line) + "\n")
			} else {
				b.WriteString("  " + line + "\n")
			}
		}
	}

	mainContent := styles.ContentBox(contentWidth, b.String(), 1)
	footer := styles.StatusBar.Render("enter: browse genre • f: filter • esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}
