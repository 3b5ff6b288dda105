// Package renderer defines how frames leave the game loop and the text shared
// by every front end.
package renderer

import (
	"github.com/leonelquinteros/gotext"

	"snakesearch/pkg/game/state"
)

// Terminal reasons as they appear in snapshots
const (
	ReasonCollided  = "collided"
	ReasonNoPath    = "no_path"
	ReasonNoMove    = "no_move"
	ReasonUserQuit  = "user_quit"
	ReasonStepLimit = "step_limit"
)

// Icons used by text front ends
const (
	IconHead     = "@"
	IconBody     = "o"
	IconFood     = "*"
	IconObstacle = "#"
	IconPath     = "."
	IconEmpty    = " "
)

// InitLocale loads translations from dir for lang. An empty dir keeps the
// built-in English strings.
func InitLocale(dir, lang string) {
	if dir == "" {
		return
	}
	gotext.Configure(dir, lang, "default")
}

// ModeTitle returns the display name of a mode identifier
func ModeTitle(mode string) string {
	switch mode {
	case "manual":
		return gotext.Get("Manual")
	case "random":
		return gotext.Get("Random")
	case "simple_hc":
		return gotext.Get("Simple Hill Climbing")
	case "steepest_ascent_hc":
		return gotext.Get("Steepest Ascent Hill Climbing")
	case "stochastic_hc":
		return gotext.Get("Stochastic Hill Climbing")
	case "bfs":
		return gotext.Get("Breadth-First Search")
	case "dfs":
		return gotext.Get("Depth-First Search")
	case "bestfs":
		return gotext.Get("Best-First Search")
	case "a_star":
		return gotext.Get("A* Search")
	case "hamiltonian":
		return gotext.Get("Hamiltonian Cycle")
	default:
		return mode
	}
}

// StatusLine describes the score line under the board
func StatusLine(s state.Snapshot) string {
	return gotext.Get("%s | Score: %d | Length: %d | Step: %d", ModeTitle(s.Mode), s.Score, len(s.Snake), s.Step)
}

// ReasonText explains why a game ended, or returns "" while it runs
func ReasonText(reason string) string {
	switch reason {
	case ReasonCollided:
		return gotext.Get("Game over: the snake crashed.")
	case ReasonNoPath:
		return gotext.Get("Game over: no path to the food.")
	case ReasonNoMove:
		return gotext.Get("Game over: no move available.")
	case ReasonUserQuit:
		return gotext.Get("Game stopped.")
	case ReasonStepLimit:
		return gotext.Get("Game stopped: step limit reached.")
	default:
		return ""
	}
}

// ControlsHint lists the keys a front end accepts
func ControlsHint(manual bool) string {
	if manual {
		return gotext.Get("Arrows/WASD to steer, R to restart, Q to quit")
	}
	return gotext.Get("R to restart, Q to quit")
}
