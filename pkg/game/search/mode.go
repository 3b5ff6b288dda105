package search

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// Mode identifies a strategy
type Mode string

// Modes
const (
	ModeManual                     Mode = "manual"
	ModeRandom                     Mode = "random"
	ModeSimpleHillClimbing         Mode = "simple_hc"
	ModeSteepestAscentHillClimbing Mode = "steepest_ascent_hc"
	ModeStochasticHillClimbing     Mode = "stochastic_hc"
	ModeBFS                        Mode = "bfs"
	ModeDFS                        Mode = "dfs"
	ModeBestFirst                  Mode = "bestfs"
	ModeAStar                      Mode = "a_star"
	ModeHamiltonian                Mode = "hamiltonian"
)

// ErrUnknownMode is returned for mode identifiers that name no strategy
var ErrUnknownMode = errors.New("unknown mode")

// Modes returns every mode in menu order
func Modes() []Mode {
	return []Mode{
		ModeManual,
		ModeRandom,
		ModeSimpleHillClimbing,
		ModeSteepestAscentHillClimbing,
		ModeStochasticHillClimbing,
		ModeBFS,
		ModeDFS,
		ModeBestFirst,
		ModeAStar,
		ModeHamiltonian,
	}
}

// legacyModes maps the older MODE_* identifiers
var legacyModes = map[string]Mode{
	"MODE_MANUAL":                        ModeManual,
	"MODE_RANDOM":                        ModeRandom,
	"MODE_RANDOM_SEARCH":                 ModeRandom,
	"MODE_SIMPLE_HILL_CLIMBING":          ModeSimpleHillClimbing,
	"MODE_STEEPEST_ASCENT_HILL_CLIMBING": ModeSteepestAscentHillClimbing,
	"MODE_STOCHASTIC_HILL_CLIMBING":      ModeStochasticHillClimbing,
	"MODE_BFS":                           ModeBFS,
	"MODE_DFS":                           ModeDFS,
	"MODE_BEST_FS":                       ModeBestFirst,
	"MODE_ASTAR":                         ModeAStar,
	"MODE_HAMILTONIAN_CYCLE":             ModeHamiltonian,
}

// ParseMode resolves a mode identifier. Identifiers are matched case
// insensitively; the MODE_* forms are accepted too.
func ParseMode(s string) (Mode, error) {
	id := strings.TrimSpace(s)
	if m, ok := legacyModes[strings.ToUpper(id)]; ok {
		return m, nil
	}
	for _, m := range Modes() {
		if strings.EqualFold(id, string(m)) {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// MultiStep reports whether the mode plans whole paths
func (m Mode) MultiStep() bool {
	switch m {
	case ModeBFS, ModeDFS, ModeBestFirst, ModeAStar:
		return true
	}
	return false
}

// New builds the strategy for mode. The result is a Stepper or a Planner.
func New(mode Mode, opts Options) (Strategy, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	switch mode {
	case ModeManual:
		return NewManual(), nil
	case ModeRandom:
		return NewRandom(rng), nil
	case ModeSimpleHillClimbing:
		return NewSimpleHillClimbing(), nil
	case ModeSteepestAscentHillClimbing:
		return NewSteepestAscentHillClimbing(), nil
	case ModeStochasticHillClimbing:
		return NewStochasticHillClimbing(rng), nil
	case ModeBFS:
		return NewBFS(), nil
	case ModeDFS:
		return NewDFS(), nil
	case ModeBestFirst:
		return NewBestFirst(), nil
	case ModeAStar:
		return NewAStar(), nil
	case ModeHamiltonian:
		if opts.Grid == nil {
			return nil, fmt.Errorf("mode %s needs a grid", mode)
		}
		h, err := NewHamiltonian(opts.Grid)
		if err != nil {
			return nil, fmt.Errorf("mode %s: %w", mode, err)
		}
		return h, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMode, string(mode))
}
