package search

import (
	"math/rand"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

// Random moves in a uniformly random safe direction
type Random struct {
	rng *rand.Rand
}

// NewRandom creates a random mover drawing from rng
func NewRandom(rng *rand.Rand) *Random {
	return &Random{rng: rng}
}

// Name implements Strategy
func (*Random) Name() string { return string(ModeRandom) }

// NextDirection implements Stepper. Directions are drawn without
// replacement until a safe one turns up.
func (r *Random) NextDirection(g *state.Game) world.Direction {
	candidates := world.AllDirections()
	for len(candidates) > 0 {
		i := r.rng.Intn(len(candidates))
		dir := candidates[i]
		if g.IsSafeStep(g.Grid.Step(g.Head(), dir)) {
			return dir
		}
		candidates = append(candidates[:i], candidates[i+1:]...)
	}
	return world.None
}
