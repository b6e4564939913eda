package keybindings

import tea "github.com/charmbracelet/bubbletea"

// Action represents a specific action that can be triggered by a key
type Action string

// Define all possible actions
const (
	// Global actions
	ActionQuit       Action = "quit"
	ActionToggleHelp Action = "toggle_help"
	ActionLogout     Action = "logout"
	ActionBack       Action = "back" // General purpose "go back" or "cancel"

	// Navigation actions
	ActionMoveUp     Action = "move_up"
	ActionMoveDown   Action = "move_down"
	ActionMoveLeft   Action = "move_left"
	ActionMoveRight  Action = "move_right"
	ActionPageUp     Action = "page_up"
	ActionPageDown   Action = "page_down"
	ActionMoveTop    Action = "move_top"
	ActionMoveBottom Action = "move_bottom"

	// View switching actions
	ActionGoHome     Action = "go_home"
	ActionGoBrowse   Action = "go_browse"
	ActionGoGenres   Action = "go_genres"
	ActionGoSearch   Action = "go_search"
	ActionGoSchedule Action = "go_schedule"
	ActionGoProfile  Action = "go_profile"

	// Auth view actions
	ActionSubmit     Action = "submit"
	ActionToggleMode Action = "toggle_mode"
	ActionNextField  Action = "next_field"

	// List actions
	ActionOpenDetail Action = "open_detail"
	ActionNextPage   Action = "next_page"
	ActionPrevPage   Action = "prev_page"
	ActionRefresh    Action = "refresh"
	ActionFilter     Action = "filter"

	// Detail/watch actions
	ActionWatch Action = "watch"
)

// ContextName represents a specific UI context in the application that has its own keybinds
type ContextName string

const (
	ContextGlobal   ContextName = "global"
	ContextAuth     ContextName = "auth"
	ContextHome     ContextName = "home"
	ContextList     ContextName = "list"
	ContextGenres   ContextName = "genres"
	ContextSchedule ContextName = "schedule"
	ContextDetail   ContextName = "detail"
	ContextWatch    ContextName = "watch"
	ContextProfile  ContextName = "profile"
	ContextHelp     ContextName = "help"
)

var ContextBindings = map[ContextName][]Binding{
	ContextGlobal:   globalBindings,
	ContextAuth:     authBindings,
	ContextHome:     homeBindings,
	ContextList:     listBindings,
	ContextGenres:   genresBindings,
	ContextSchedule: scheduleBindings,
	ContextDetail:   detailBindings,
	ContextWatch:    watchBindings,
	ContextProfile:  profileBindings,
	ContextHelp:     helpBindings,
}

// KeyMap stores the mappings from actions to key sequences for each context
type KeyMap struct {
	Primary   string
	Secondary string // Optional alternative key
	Help      string // Description for help screen
}

// Binding maps an action to its keys and help text
type Binding struct {
	Action Action
	KeyMap KeyMap
}

// navigationBindings contains general navigation bindings for consistent navigation across the app
var navigationBindings = []Binding{
	{
		Action: ActionMoveUp,
		KeyMap: KeyMap{
			Primary:   "up",
			Secondary: "k",
			Help:      "Move cursor up",
		},
	},
	{
		Action: ActionMoveDown,
		KeyMap: KeyMap{
			Primary:   "down",
			Secondary: "j",
			Help:      "Move cursor down",
		},
	},
	{
		Action: ActionPageUp,
		KeyMap: KeyMap{
			Primary: "pgup",
			Help:    "Move up one page",
		},
	},
	{
		Action: ActionPageDown,
		KeyMap: KeyMap{
			Primary: "pgdown",
			Help:    "Move down one page",
		},
	},
	{
		Action: ActionMoveTop,
		KeyMap: KeyMap{
			Primary: "home",
			Help:    "Move top of view",
		},
	},
	{
		Action: ActionMoveBottom,
		KeyMap: KeyMap{
			Primary: "end",
			Help:    "Move bottom of view",
		},
	},
}

// viewSwitchBindings contains bindings to jump between the main views, available
// from every authenticated view
var viewSwitchBindings = []Binding{
	{
		Action: ActionGoHome,
		KeyMap: KeyMap{
			Primary: "H",
			Help:    "Go to home view",
		},
	},
	{
		Action: ActionGoBrowse,
		KeyMap: KeyMap{
			Primary: "B",
			Help:    "Browse the catalog",
		},
	},
	{
		Action: ActionGoGenres,
		KeyMap: KeyMap{
			Primary: "G",
			Help:    "Browse by genre",
		},
	},
	{
		Action: ActionGoSearch,
		KeyMap: KeyMap{
			Primary:   "S",
			Secondary: "/",
			Help:      "Search the catalog",
		},
	},
	{
		Action: ActionGoSchedule,
		KeyMap: KeyMap{
			Primary: "W",
			Help:    "Weekly airing schedule",
		},
	},
	{
		Action: ActionGoProfile,
		KeyMap: KeyMap{
			Primary: "P",
			Help:    "Your profile",
		},
	},
}

// globalBindings contains key bindings that work across all views
var globalBindings = []Binding{
	{
		Action: ActionQuit,
		KeyMap: KeyMap{
			Primary: "ctrl+c",
			Help:    "Quit application",
		},
	},
	{
		Action: ActionToggleHelp,
		KeyMap: KeyMap{
			Primary: "ctrl+h",
			Help:    "Toggle help screen",
		},
	},
	{
		Action: ActionLogout,
		KeyMap: KeyMap{
			Primary: "ctrl+l",
			Help:    "Logout (clear token)",
		},
	},
	{
		Action: ActionBack,
		KeyMap: KeyMap{
			Primary: "esc",
			Help:    "Go back/cancel current action",
		},
	},
}

// authBindings contains key bindings specific to the auth view
var authBindings = []Binding{
	{
		Action: ActionSubmit,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Submit the form",
		},
	},
	{
		Action: ActionNextField,
		KeyMap: KeyMap{
			Primary:   "tab",
			Secondary: "shift+tab",
			Help:      "Move between fields",
		},
	},
	{
		Action: ActionToggleMode,
		KeyMap: KeyMap{
			Primary: "ctrl+r",
			Help:    "Switch between login and registration",
		},
	},
}

// helpBindings contains key bindings specific to the help view
var helpBindings = withNavigation([]Binding{})

// homeBindings contains key bindings specific to the home view
var homeBindings = withViewSwitching(withNavigation([]Binding{
	{
		Action: ActionOpenDetail,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open highlighted anime",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Reload home sections",
		},
	},
}))

// listBindings contains key bindings for paginated catalog listings (browse, search results)
var listBindings = withViewSwitching(withNavigation([]Binding{
	{
		Action: ActionOpenDetail,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open highlighted anime",
		},
	},
	{
		Action: ActionNextPage,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "n",
			Help:      "Next page",
		},
	},
	{
		Action: ActionPrevPage,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "p",
			Help:      "Previous page",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Reload current page",
		},
	},
}))

// genresBindings contains key bindings specific to the genre picker
var genresBindings = withViewSwitching(withNavigation([]Binding{
	{
		Action: ActionOpenDetail,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Browse highlighted genre",
		},
	},
	{
		Action: ActionFilter,
		KeyMap: KeyMap{
			Primary: "f",
			Help:    "Filter genres",
		},
	},
}))

// scheduleBindings contains key bindings specific to the schedule view
var scheduleBindings = withViewSwitching(withNavigation([]Binding{
	{
		Action: ActionMoveLeft,
		KeyMap: KeyMap{
			Primary:   "left",
			Secondary: "h",
			Help:      "Previous day",
		},
	},
	{
		Action: ActionMoveRight,
		KeyMap: KeyMap{
			Primary:   "right",
			Secondary: "l",
			Help:      "Next day",
		},
	},
	{
		Action: ActionOpenDetail,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open highlighted anime",
		},
	},
}))

// detailBindings contains key bindings specific to the detail view
var detailBindings = withViewSwitching(withNavigation([]Binding{
	{
		Action: ActionWatch,
		KeyMap: KeyMap{
			Primary: "w",
			Help:    "Open the watch screen",
		},
	},
}))

// watchBindings contains key bindings specific to the watch view
var watchBindings = withNavigation([]Binding{
	{
		Action: ActionOpenDetail,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Select highlighted episode",
		},
	},
})

// profileBindings contains key bindings specific to the profile view
var profileBindings = withViewSwitching(withNavigation([]Binding{
	{
		Action: ActionOpenDetail,
		KeyMap: KeyMap{
			Primary: "enter",
			Help:    "Open highlighted favorite",
		},
	},
	{
		Action: ActionRefresh,
		KeyMap: KeyMap{
			Primary: "r",
			Help:    "Refresh profile and favorites",
		},
	},
}))

// GetActionKey returns the primary key for an action
func GetActionKey(action Action, bindings []Binding) string {
	for _, binding := range bindings {
		if binding.Action == action {
			return binding.KeyMap.Primary
		}
	}
	return ""
}

// GetBindingByKey returns the action and help text for a given key
func GetBindingByKey(key string, bindings []Binding) (Action, string) {
	for _, binding := range bindings {
		if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
			return binding.Action, binding.KeyMap.Help
		}
	}
	return "", ""
}

// GetActionByKey returns just the action for a given key, or an empty Action if not found
func GetActionByKey(keyMsg tea.KeyMsg, name ContextName) Action {
	if bindings, exists := ContextBindings[name]; exists {
		key := keyMsg.String()
		for _, binding := range bindings {
			if binding.KeyMap.Primary == key || binding.KeyMap.Secondary == key {
				return binding.Action
			}
		}
	}
	return ""
}

// FormatKeyHelp formats a key binding for display in help text
func FormatKeyHelp(binding Binding) string {
	if binding.KeyMap.Secondary != "" {
		return binding.KeyMap.Primary + "/" + binding.KeyMap.Secondary + ": " + binding.KeyMap.Help
	}
	return binding.KeyMap.Primary + ": " + binding.KeyMap.Help
}

// GetHelpText generates formatted help text for a set of bindings
func GetHelpText(title string, bindings []Binding) string {
	helpText := "## " + title + "\n\n"
	for _, binding := range bindings {
		helpText += "* " + FormatKeyHelp(binding) + "\n"
	}
	return helpText
}

// withNavigation is a helper function to include navigation bindings in other binding sets
func withNavigation(bindings []Binding) []Binding {
	return append(append([]Binding{}, navigationBindings...), bindings...)
}

// withViewSwitching is a helper function to include view switch bindings in other binding sets
func withViewSwitching(bindings []Binding) []Binding {
	return append(append([]Binding{}, viewSwitchBindings...), bindings...)
}
