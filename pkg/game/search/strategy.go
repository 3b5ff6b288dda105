// Package search provides the strategies that steer the snake: single-step
// movers (random, hill climbing, Hamiltonian cycle, manual) and path planners
// (BFS, DFS, best-first, A*).
package search

import (
	"math/rand"

	"snakesearch/pkg/engine/input"
	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

// Strategy is implemented by every mode. A concrete strategy is also either
// a Stepper or a Planner.
type Strategy interface {
	Name() string
}

// Stepper picks one move per tick. world.None means no move was found.
type Stepper interface {
	Strategy
	NextDirection(g *state.Game) world.Direction
}

// Planner computes a full route to the food. The returned path excludes the
// head, is ordered head to food and is empty when no route exists or the
// head already sits on the food.
type Planner interface {
	Strategy
	Plan(g *state.Game) []world.Point
}

// Steerer is implemented by strategies that take player input
type Steerer interface {
	Steer(intents []input.Intent)
}

// Options configures strategy construction
type Options struct {
	Grid             *world.Grid
	ObstaclesEnabled bool
	Rand             *rand.Rand
}

// heuristic is the Manhattan distance from p to the food
func heuristic(p, food world.Point) int {
	return world.ManhattanDistance(p, food)
}
