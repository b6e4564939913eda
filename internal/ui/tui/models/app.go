package models

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/yozora-app/yozora/internal/config"
	"github.com/yozora-app/yozora/internal/log"
	"github.com/yozora-app/yozora/internal/service"
	"github.com/yozora-app/yozora/internal/session"
	kb "github.com/yozora-app/yozora/internal/ui/tui/keybindings"
	"github.com/yozora-app/yozora/internal/ui/tui/styles"
)

// inputCapturer is implemented by view models that sometimes route printable keys
// into a text input.  While capturing, the app suppresses single-key view switching.
type inputCapturer interface {
	CapturingInput() bool
}

// AppModel is the main application model that coordinates all child models.  It is the high level wrapper.
type AppModel struct {
	config        *config.Config
	store         *session.Store
	svc           *service.CatalogService
	activeView    View  // Track the current active 'main view'
	activeModal   Modal // Track the current active 'modal overlay' if any
	booting       bool  // True until the session store has resolved the initial state
	history       []View
	width, height int

	// Models used for various views
	authModel     *AuthModel
	homeModel     *HomeModel
	browseModel   *BrowseModel
	genresModel   *GenresModel
	searchModel   *SearchModel
	scheduleModel *ScheduleModel
	detailModel   *DetailModel
	watchModel    *WatchModel
	profileModel  *ProfileModel
	helpModel     *HelpModel
}

// NewAppModel creates a new instance of the main application model
func NewAppModel(cfg *config.Config, store *session.Store, svc *service.CatalogService) AppModel {
	return AppModel{
		config:        cfg,
		store:         store,
		svc:           svc,
		activeView:    ViewAuth,
		activeModal:   ModalNone,
		booting:       true,
		authModel:     NewAuthModel(store),
		homeModel:     NewHomeModel(svc),
		browseModel:   NewBrowseModel(svc),
		genresModel:   NewGenresModel(svc),
		searchModel:   NewSearchModel(svc),
		scheduleModel: NewScheduleModel(svc),
		detailModel:   NewDetailModel(svc),
		watchModel:    NewWatchModel(svc),
		profileModel:  NewProfileModel(store, svc),
		helpModel:     NewHelpModel(),
	}
}

func (m AppModel) Init() tea.Cmd {
	log.Info("Initialising Yozora TUI")

	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Resolve any persisted session before showing the first view
		store.Initialize(ctx)
		return SessionReadyMsg{}
	}
}

// activeModel returns the model backing the current active view
func (m *AppModel) activeModel() Model {
	switch m.activeView {
	case ViewAuth:
		return m.authModel
	case ViewHome:
		return m.homeModel
	case ViewBrowse:
		return m.browseModel
	case ViewGenres:
		return m.genresModel
	case ViewSearch:
		return m.searchModel
	case ViewSchedule:
		return m.scheduleModel
	case ViewDetail:
		return m.detailModel
	case ViewWatch:
		return m.watchModel
	case ViewProfile:
		return m.profileModel
	default:
		return m.homeModel
	}
}

// switchView changes the active view, recording the previous one so esc can walk
// back.  Returns the new view's Init command.
func (m *AppModel) switchView(view View) tea.Cmd {
	if m.activeView == view {
		return nil
	}
	m.history = append(m.history, m.activeView)
	m.activeView = view
	return m.activeModel().Init()
}

// goBack pops the view history.  On an empty history it falls back to home.
func (m *AppModel) goBack() tea.Cmd {
	if len(m.history) == 0 {
		if m.activeView != ViewHome && m.activeView != ViewAuth {
			m.activeView = ViewHome
			return m.activeModel().Init()
		}
		return nil
	}
	m.activeView = m.history[len(m.history)-1]
	m.history = m.history[:len(m.history)-1]
	return nil
}

// capturingInput reports whether the active view is currently routing printable
// keys into a text input
func (m *AppModel) capturingInput() bool {
	if capturer, ok := m.activeModel().(inputCapturer); ok {
		return capturer.CapturingInput()
	}
	return false
}

// Update handles messages and updates the models as appropriate
func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			log.Info("Quit command received.  Shutting down...")
			return m, tea.Quit
		case "ctrl+l":
			if m.store.IsAuthenticated() {
				m.store.Logout()
				m.authModel.Reset()
				m.history = nil
				m.activeView = ViewAuth
			}
			return m, nil
		case "ctrl+h":
			log.Debug("Help requested", "active_view", m.activeView)
			// Disable/toggle modal if one already active
			if m.activeModal != ModalNone {
				m.activeModal = ModalNone
			} else {
				m.helpModel.SetContext(m.activeView)
				m.activeModal = ModalHelp
			}
			return m, nil

		case "esc":
			if m.activeModal != ModalNone {
				m.activeModal = ModalNone
				return m, nil
			}
			if !m.capturingInput() && m.activeView != ViewAuth {
				return m, m.goBack()
			}
		}

		// While the help modal is up, keys belong to it
		if m.activeModal == ModalHelp {
			_, cmd := m.helpModel.Update(msg)
			return m, cmd
		}

		// Single-key view switching, active on any authenticated view unless the
		// view is capturing text input
		if m.store.IsAuthenticated() && !m.capturingInput() {
			if cmd, ok := m.handleViewSwitch(msg); ok {
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		log.Debug("Window size changed", "old_width", m.width, "new_width", msg.Width, "old_height", m.height, "new_height", msg.Height)
		m.width = msg.Width
		m.height = msg.Height

		// Propagate new window size to all views so they are aware and can render correctly
		m.authModel.Resize(msg.Width, msg.Height)
		m.homeModel.Resize(msg.Width, msg.Height)
		m.browseModel.Resize(msg.Width, msg.Height)
		m.genresModel.Resize(msg.Width, msg.Height)
		m.searchModel.Resize(msg.Width, msg.Height)
		m.scheduleModel.Resize(msg.Width, msg.Height)
		m.detailModel.Resize(msg.Width, msg.Height)
		m.watchModel.Resize(msg.Width, msg.Height)
		m.profileModel.Resize(msg.Width, msg.Height)
		m.helpModel.Resize(msg.Width, msg.Height)
		return m, nil

	case SessionReadyMsg:
		m.booting = false
		if m.store.IsAuthenticated() {
			log.Info("Existing session restored", "username", usernameOf(m.store))
			m.activeView = ViewHome
			return m, m.homeModel.Init()
		}
		log.Info("No valid session.  Showing auth view")
		m.history = nil
		m.activeView = ViewAuth
		return m, m.authModel.Init()

	case AuthSuccessMsg:
		log.Info("Authenticated", "username", usernameOf(m.store))
		m.history = nil
		m.activeView = ViewHome
		return m, m.homeModel.Init()

	case NavigateMsg:
		return m, m.switchView(msg.View)

	case ShowDetailMsg:
		m.detailModel.Show(msg.ID)
		return m, m.switchView(ViewDetail)

	case ShowWatchMsg:
		m.watchModel.Show(msg.ID)
		return m, m.switchView(ViewWatch)

	case BrowseMsg:
		m.browseModel.SetPreset(msg.Title, msg.Params)
		if m.activeView == ViewBrowse {
			return m, m.browseModel.Init()
		}
		return m, m.switchView(ViewBrowse)
	}

	// Everything else is handled by the active view
	_, cmd := m.activeModel().Update(msg)
	return m, cmd
}

// handleViewSwitch maps the view-switch actions of the active context onto view
// changes.  Returns false when the key is not a view-switch key.
func (m *AppModel) handleViewSwitch(msg tea.KeyMsg) (tea.Cmd, bool) {
	switch kb.GetActionByKey(msg, helpContextName(m.activeView)) {
	case kb.ActionGoHome:
		return m.switchView(ViewHome), true
	case kb.ActionGoBrowse:
		return m.switchView(ViewBrowse), true
	case kb.ActionGoGenres:
		return m.switchView(ViewGenres), true
	case kb.ActionGoSearch:
		m.searchModel.Focus()
		return m.switchView(ViewSearch), true
	case kb.ActionGoSchedule:
		return m.switchView(ViewSchedule), true
	case kb.ActionGoProfile:
		return m.switchView(ViewProfile), true
	}
	return nil, false
}

// View renders the UI based on the current state
func (m AppModel) View() string {
	if m.booting {
		return styles.CenteredView(m.width, m.height, styles.Info.Render("Checking session..."))
	}

	if m.activeModal == ModalHelp {
		return m.helpModel.View()
	}

	return m.activeModel().View()
}

func usernameOf(store *session.Store) string {
	if user := store.User(); user != nil {
		return user.Username
	}
	return ""
}
