package console

import (
	"strings"
)

// State is a controller state. Every state other than Exit returns to Menu
// when its action completes.
type State int

// Controller states.
const (
	StateMenu State = iota
	StateListing
	StateConfirmOrphanPurge
	StateConfirmFullPurge
	StateTargetedDelete
	StateExit
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateListing:
		return "listing"
	case StateConfirmOrphanPurge:
		return "confirm-orphan-purge"
	case StateConfirmFullPurge:
		return "confirm-full-purge"
	case StateTargetedDelete:
		return "targeted-delete"
	case StateExit:
		return "exit"
	default:
		return "unknown"
	}
}

// menu lists options in display order.
var menu = []struct {
	key   string
	label string
	state State
}{
	{"1", "List all users", StateListing},
	{"2", "Purge orphaned users (document store only)", StateConfirmOrphanPurge},
	{"3", "Purge ALL users", StateConfirmFullPurge},
	{"4", "Delete a specific user", StateTargetedDelete},
	{"5", "Exit", StateExit},
}

// Next maps a menu choice to the state it selects.
func Next(choice string) (State, bool) {
	choice = strings.TrimSpace(choice)
	for _, item := range menu {
		if item.key == choice {
			return item.state, true
		}
	}
	return StateMenu, false
}

// Confirm reports whether answer is the affirmative word. Comparison ignores
// case and surrounding space; an empty word never confirms.
func Confirm(answer, word string) bool {
	word = strings.TrimSpace(word)
	return word != "" && strings.EqualFold(strings.TrimSpace(answer), word)
}
