package search

import (
	"math/rand"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

// SimpleHillClimbing takes the first safe direction, in fixed order, that
// moves strictly closer to the food. It stops on plateaus and local minima.
type SimpleHillClimbing struct{}

// NewSimpleHillClimbing creates a simple hill climber
func NewSimpleHillClimbing() *SimpleHillClimbing {
	return &SimpleHillClimbing{}
}

// Name implements Strategy
func (*SimpleHillClimbing) Name() string { return string(ModeSimpleHillClimbing) }

// NextDirection implements Stepper
func (*SimpleHillClimbing) NextDirection(g *state.Game) world.Direction {
	current := heuristic(g.Head(), g.Food)
	for _, dir := range world.AllDirections() {
		next := g.Grid.Step(g.Head(), dir)
		if heuristic(next, g.Food) < current && g.IsSafeStep(next) {
			return dir
		}
	}
	return world.None
}

// SteepestAscentHillClimbing evaluates every safe direction and takes the
// one closest to the food, provided it improves on the head. Ties go to the
// first direction seen.
type SteepestAscentHillClimbing struct{}

// NewSteepestAscentHillClimbing creates a steepest-ascent hill climber
func NewSteepestAscentHillClimbing() *SteepestAscentHillClimbing {
	return &SteepestAscentHillClimbing{}
}

// Name implements Strategy
func (*SteepestAscentHillClimbing) Name() string { return string(ModeSteepestAscentHillClimbing) }

// NextDirection implements Stepper
func (*SteepestAscentHillClimbing) NextDirection(g *state.Game) world.Direction {
	best := world.None
	bestH := heuristic(g.Head(), g.Food)
	for _, dir := range world.AllDirections() {
		next := g.Grid.Step(g.Head(), dir)
		if !g.IsSafeStep(next) {
			continue
		}
		if h := heuristic(next, g.Food); h < bestH {
			best, bestH = dir, h
		}
	}
	return best
}

// StochasticHillClimbing tries directions in random order and takes the
// first safe one that moves strictly closer to the food.
type StochasticHillClimbing struct {
	rng *rand.Rand
}

// NewStochasticHillClimbing creates a stochastic hill climber drawing from rng
func NewStochasticHillClimbing(rng *rand.Rand) *StochasticHillClimbing {
	return &StochasticHillClimbing{rng: rng}
}

// Name implements Strategy
func (*StochasticHillClimbing) Name() string { return string(ModeStochasticHillClimbing) }

// NextDirection implements Stepper
func (s *StochasticHillClimbing) NextDirection(g *state.Game) world.Direction {
	current := heuristic(g.Head(), g.Food)
	candidates := world.AllDirections()
	for len(candidates) > 0 {
		i := s.rng.Intn(len(candidates))
		dir := candidates[i]
		candidates = append(candidates[:i], candidates[i+1:]...)

		next := g.Grid.Step(g.Head(), dir)
		if heuristic(next, g.Food) < current && g.IsSafeStep(next) {
			return dir
		}
	}
	return world.None
}
