package keybindings

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func keyMsgFor(key string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

func TestNoDuplicateKeyBindings(t *testing.T) {
	// Check each context individually
	for contextName, bindings := range ContextBindings {
		t.Run(fmt.Sprintf("Context_%s", contextName), func(t *testing.T) {
			keyToAction := make(map[string]Action)

			for _, binding := range bindings {
				// Check primary key
				if existingAction, exists := keyToAction[binding.KeyMap.Primary]; exists {
					t.Errorf("Duplicate key binding '%s' in context '%s': "+
						"first assigned to action '%s', then to '%s'",
						binding.KeyMap.Primary, contextName, existingAction, binding.Action)
				} else {
					keyToAction[binding.KeyMap.Primary] = binding.Action
				}

				// Check secondary key if it exists
				if binding.KeyMap.Secondary != "" {
					if existingAction, exists := keyToAction[binding.KeyMap.Secondary]; exists {
						t.Errorf("Duplicate key binding '%s' in context '%s': "+
							"first assigned to action '%s', then to '%s'",
							binding.KeyMap.Secondary, contextName, existingAction, binding.Action)
					} else {
						keyToAction[binding.KeyMap.Secondary] = binding.Action
					}
				}
			}
		})
	}
}

// TestEveryViewSwitchKeyResolves asserts that the view switching keys advertised in
// help actually resolve to their actions in the contexts that carry them
func TestEveryViewSwitchKeyResolves(t *testing.T) {
	viewSwitchActions := map[Action]bool{
		ActionGoHome:     true,
		ActionGoBrowse:   true,
		ActionGoGenres:   true,
		ActionGoSearch:   true,
		ActionGoSchedule: true,
		ActionGoProfile:  true,
	}

	for contextName, bindings := range ContextBindings {
		for _, binding := range bindings {
			if !viewSwitchActions[binding.Action] {
				continue
			}
			keyMsg := keyMsgFor(binding.KeyMap.Primary)
			if got := GetActionByKey(keyMsg, contextName); got != binding.Action {
				t.Errorf("Key '%s' in context '%s' resolved to '%s', want '%s'",
					binding.KeyMap.Primary, contextName, got, binding.Action)
			}
		}
	}
}
