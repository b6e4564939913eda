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
)

// ScheduleModel renders the weekly airing schedule, one weekday at a time.  Day
// switches reuse the sequence-number discipline so a slow response for a previous
// day cannot overwrite the currently selected one.
type ScheduleModel struct {
	width, height int
	svc           *service.CatalogService
	day           int
	seq           int
	loading       bool
	loadError     error
	spinner       spinner.Model
	anime         []domain.Anime
	cursor        int
}

func NewScheduleModel(svc *service.CatalogService) *ScheduleModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD166"))

	// Default to today, with Monday as the first day of the week
	day := (int(time.Now().Weekday()) + 6) % 7

	return &ScheduleModel{
		svc:     svc,
		day:     day,
		loading: true,
		spinner: s,
	}
}

func (m *ScheduleModel) ViewType() View {
	return ViewSchedule
}

func (m *ScheduleModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

func (m *ScheduleModel) load() tea.Cmd {
	m.seq++
	seq := m.seq
	svc := m.svc
	day := domain.ScheduleDays[m.day]

	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		anime, err := svc.Schedule(ctx, day)
		if err != nil {
			log.Error("Failed to load schedule", "day", day, "error", err, "seq", seq)
			return FetchErrorMsg{Error: err, Seq: seq}
		}
		return ScheduleLoadedMsg{Day: day, Anime: anime}
	}
}

func (m *ScheduleModel) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case ScheduleLoadedMsg:
		if msg.Day != domain.ScheduleDays[m.day] {
			log.Debug("Discarding stale schedule response", "got", msg.Day, "want", domain.ScheduleDays[m.day])
			return m, nil
		}
		m.loading = false
		m.loadError = nil
		m.anime = msg.Anime
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
		switch kb.GetActionByKey(msg, kb.ContextSchedule) {
		case kb.ActionMoveLeft:
			m.day = (m.day + len(domain.ScheduleDays) - 1) % len(domain.ScheduleDays)
			m.cursor = 0
			m.loading = true
			m.loadError = nil
			return m, tea.Batch(m.spinner.Tick, m.load())
		case kb.ActionMoveRight:
			m.day = (m.day + 1) % len(domain.ScheduleDays)
			m.cursor = 0
			m.loading = true
			m.loadError = nil
			return m, tea.Batch(m.spinner.Tick, m.load())
		case kb.ActionMoveUp:
			if m.cursor > 0 {
				m.cursor--
			}
		case kb.ActionMoveDown:
			if len(m.anime) > 0 && m.cursor < len(m.anime)-1 {
				m.cursor++
			}
		case kb.ActionOpenDetail:
			if len(m.anime) > 0 && m.cursor < len(m.anime) {
				id := m.anime[m.cursor].MalID
				return m, func() tea.Msg { return ShowDetailMsg{ID: id} }
			}
		}
	}

	return m, nil
}

func (m *ScheduleModel) Resize(width, height int) {
	m.width = width
	m.height = height
}

func (m *ScheduleModel) View() string {
	contentWidth := min(m.width, 120)
	header := styles.Header(contentWidth, "Yozora - Weekly Schedule")

	var tabs []string
	for i, day := range domain.ScheduleDays {
		if i == m.day {
			tabs = append(tabs, styles.ActiveTab.Render(day))
		} else {
			tabs = append(tabs, styles.InactiveTab.Render(day))
		}
	}
	tabBar := lipgloss.JoinHorizontal(lipgloss.Top, tabs...)

	var content string
	switch {
	case m.loading:
		content = m.spinner.View() + " Loading..."
	case m.loadError != nil:
		content = styles.Error.Render(m.loadError.Error())
	case len(m.anime) == 0:
		content = styles.Subtle.Render("Nothing airing on " + domain.ScheduleDays[m.day] + ".")
	default:
		content = renderAnimeRows(m.anime, m.cursor, contentWidth-4, maxListRows(m.height))
	}

	var b strings.Builder
	b.WriteString(tabBar + "\n\n")
	b.WriteString(content)

	mainContent := styles.ContentBox(contentWidth, b.String(), 1)
	footer := styles.StatusBar.Render("left/right: switch day • enter: details • esc: back")

	return lipgloss.JoinVertical(lipgloss.Left, header, mainContent, footer)
}
