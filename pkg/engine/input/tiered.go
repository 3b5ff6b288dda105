package input

import (
	"sort"
	"strings"
	"sync"
	"time"

	"snakesearch/pkg/engine/world"
)

// Device represents a physical input source.
type Device int

const (
	DeviceUnknown Device = iota
	DeviceKeyboard
	DeviceGamepad
	DeviceTerminal
	DeviceRemote
)

// Action represents a high‑level intent in the game.
type Action int

const (
	ActionNone Action = iota

	// Movement
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight

	// Meta
	ActionQuit
	ActionRestart
)

// Intent is the 4th‑layer, high‑level description of what the player wants to do.
type Intent struct {
	Action Action
}

// Direction returns the heading a movement intent asks for, or world.None
// for non-movement intents.
func (i Intent) Direction() world.Direction {
	switch i.Action {
	case ActionMoveUp:
		return world.Up
	case ActionMoveDown:
		return world.Down
	case ActionMoveLeft:
		return world.Left
	case ActionMoveRight:
		return world.Right
	default:
		return world.None
	}
}

// IntentFor returns the movement intent for a direction
func IntentFor(dir world.Direction) Intent {
	switch dir {
	case world.Up:
		return Intent{Action: ActionMoveUp}
	case world.Down:
		return Intent{Action: ActionMoveDown}
	case world.Left:
		return Intent{Action: ActionMoveLeft}
	case world.Right:
		return Intent{Action: ActionMoveRight}
	default:
		return Intent{Action: ActionNone}
	}
}

// RawInput is the 1st‑layer event emitted directly from an input device.
// Code is a device‑specific identifier (e.g. "arrow_up", "w", "gamepad_dpad_up").
type RawInput struct {
	Device    Device
	Code      string
	Timestamp time.Time
}

// DebouncedInput is the 2nd‑layer representation after debouncing/deduplication.
// Every RawInput is treated as already debounced by the underlying libraries
// (Ebiten, terminal raw mode), but the type keeps the layering explicit.
type DebouncedInput struct {
	Device Device
	Code   string
}

// NewDebouncedInput converts a raw event to a debounced event.
func NewDebouncedInput(raw RawInput) DebouncedInput {
	return DebouncedInput{
		Device: raw.Device,
		Code:   raw.Code,
	}
}

var bindingsMu sync.RWMutex

// bindings maps raw codes to actions (3rd-layer bindings).
// Multiple codes may point to the same Action.
var bindings = map[string]Action{
	// Movement (arrows, WASD, Vim)
	"arrow_up":    ActionMoveUp,
	"w":           ActionMoveUp,
	"k":           ActionMoveUp,
	"arrow_down":  ActionMoveDown,
	"s":           ActionMoveDown,
	"j":           ActionMoveDown,
	"arrow_left":  ActionMoveLeft,
	"a":           ActionMoveLeft,
	"h":           ActionMoveLeft,
	"arrow_right": ActionMoveRight,
	"d":           ActionMoveRight,
	"l":           ActionMoveRight,

	// Quit
	"quit":   ActionQuit,
	"q":      ActionQuit,
	"escape": ActionQuit,
	"ctrl_c": ActionQuit,

	// Restart after game over
	"r":       ActionRestart,
	"restart": ActionRestart,

	// Controller/gamepad specific bindings
	"gamepad_dpad_up":    ActionMoveUp,
	"gamepad_dpad_down":  ActionMoveDown,
	"gamepad_dpad_left":  ActionMoveLeft,
	"gamepad_dpad_right": ActionMoveRight,
	"gamepad_b":          ActionQuit,
	"gamepad_start":      ActionRestart,
}

// reserved codes can never be rebound or unbound
var reserved = map[string]bool{
	"arrow_up":    true,
	"arrow_down":  true,
	"arrow_left":  true,
	"arrow_right": true,
	"ctrl_c":      true,
}

// MapToIntent is the 3rd+4th layer: it applies the current bindings to a
// debounced input and returns a high‑level Intent.
func MapToIntent(ev DebouncedInput) Intent {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()

	if act, ok := bindings[ev.Code]; ok {
		return Intent{Action: act}
	}
	return Intent{Action: ActionNone}
}

// ActionName returns a human-friendly name for an action.
func ActionName(a Action) string {
	switch a {
	case ActionMoveUp:
		return "Move Up"
	case ActionMoveDown:
		return "Move Down"
	case ActionMoveLeft:
		return "Move Left"
	case ActionMoveRight:
		return "Move Right"
	case ActionQuit:
		return "Quit"
	case ActionRestart:
		return "Restart"
	default:
		return "None"
	}
}

// ParseAction returns the action whose ActionName matches name, ignoring
// spaces and case
func ParseAction(name string) (Action, bool) {
	for a := ActionMoveUp; a <= ActionRestart; a++ {
		if normalizeName(ActionName(a)) == normalizeName(name) {
			return a, true
		}
	}
	return ActionNone, false
}

var nameSeparators = strings.NewReplacer(" ", "", "_", "", "-", "")

func normalizeName(s string) string {
	return strings.ToLower(nameSeparators.Replace(s))
}

// GetBindingsByAction returns the current bindings grouped by action.
func GetBindingsByAction() map[Action][]string {
	bindingsMu.RLock()
	defer bindingsMu.RUnlock()

	result := make(map[Action][]string)
	for code, act := range bindings {
		result[act] = append(result[act], code)
	}
	// Stable ordering so help text doesn't flicker.
	for act, codes := range result {
		sort.Strings(codes)
		result[act] = codes
	}
	return result
}

// SetSingleBinding replaces all bindings for the given action with a single
// code. Reserved codes keep their binding.
func SetSingleBinding(action Action, code string) {
	bindingsMu.Lock()
	defer bindingsMu.Unlock()

	for c, a := range bindings {
		if reserved[c] {
			continue
		}
		if a == action {
			delete(bindings, c)
		}
	}
	if code != "" && !reserved[code] {
		bindings[code] = action
	}
}
