package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"snakesearch/pkg/engine/world"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in   string
		want Mode
	}{
		{"manual", ModeManual},
		{"random", ModeRandom},
		{"simple_hc", ModeSimpleHillClimbing},
		{"steepest_ascent_hc", ModeSteepestAscentHillClimbing},
		{"stochastic_hc", ModeStochasticHillClimbing},
		{"bfs", ModeBFS},
		{"dfs", ModeDFS},
		{"bestfs", ModeBestFirst},
		{"a_star", ModeAStar},
		{"hamiltonian", ModeHamiltonian},
		{" BFS ", ModeBFS},
		{"MODE_ASTAR", ModeAStar},
		{"MODE_BEST_FS", ModeBestFirst},
		{"mode_random_search", ModeRandom},
		{"MODE_HAMILTONIAN_CYCLE", ModeHamiltonian},
		{"MODE_STEEPEST_ASCENT_HILL_CLIMBING", ModeSteepestAscentHillClimbing},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestParseMode_Unknown(t *testing.T) {
	for _, in := range []string{"", "dijkstra", "MODE_DIJKSTRA"} {
		_, err := ParseMode(in)
		require.ErrorIs(t, err, ErrUnknownMode, "ParseMode(%q)", in)
	}
}

func TestNew_AllModes(t *testing.T) {
	opts := Options{
		Grid: world.NewGrid(640, 640, 20),
		Rand: rand.New(rand.NewSource(1)),
	}

	for _, mode := range Modes() {
		t.Run(string(mode), func(t *testing.T) {
			s, err := New(mode, opts)
			require.NoError(t, err)
			require.Equal(t, string(mode), s.Name())

			_, isStepper := s.(Stepper)
			_, isPlanner := s.(Planner)
			require.NotEqual(t, isStepper, isPlanner, "a strategy is either a stepper or a planner")
			require.Equal(t, mode.MultiStep(), isPlanner)
		})
	}
}

func TestNew_ManualSteers(t *testing.T) {
	s, err := New(ModeManual, Options{})
	require.NoError(t, err)
	_, ok := s.(Steerer)
	require.True(t, ok)
}

func TestNew_Errors(t *testing.T) {
	_, err := New(Mode("dijkstra"), Options{})
	require.ErrorIs(t, err, ErrUnknownMode)

	_, err = New(ModeHamiltonian, Options{Grid: world.NewGrid(100, 100, 20)})
	require.ErrorIs(t, err, ErrNoHamiltonianCycle)

	_, err = New(ModeHamiltonian, Options{})
	require.Error(t, err)
}
