package models

import tea "github.com/charmbracelet/bubbletea"

// View represents a specific UI view in the application
type View string

// Available views in the application
const (
	ViewAuth     View = "auth"
	ViewHome     View = "home"
	ViewBrowse   View = "browse"
	ViewGenres   View = "genres"
	ViewSearch   View = "search"
	ViewSchedule View = "schedule"
	ViewDetail   View = "detail"
	ViewWatch    View = "watch"
	ViewProfile  View = "profile"
	ViewHelp     View = "help"
)

// Modal represents a UI intended to be temporarily shown to the user before returning to the original view
type Modal string

// Available modals in the application
const (
	ModalNone Modal = "none"
	ModalHelp Modal = "help"
)

// Model is the interface implemented by every view model
type Model interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Model, tea.Cmd)
	View() string
	Resize(width, height int)
	ViewType() View
}
