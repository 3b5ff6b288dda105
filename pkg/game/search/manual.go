package search

import (
	"snakesearch/pkg/engine/input"
	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

// Manual moves the way the player steers. Without new input the snake keeps
// its heading.
type Manual struct {
	pending []input.Intent
}

// NewManual creates a player-controlled strategy
func NewManual() *Manual {
	return &Manual{}
}

// Name implements Strategy
func (*Manual) Name() string { return string(ModeManual) }

// Steer implements Steerer. Intents are kept until the next move.
func (m *Manual) Steer(intents []input.Intent) {
	m.pending = append(m.pending, intents...)
}

// NextDirection implements Stepper. The most recent movement intent that
// does not reverse the current heading wins; reversals are ignored.
func (m *Manual) NextDirection(g *state.Game) world.Direction {
	pending := m.pending
	m.pending = nil

	for i := len(pending) - 1; i >= 0; i-- {
		dir := pending[i].Direction()
		if !dir.IsValid() {
			continue
		}
		if len(g.Snake) > 1 && dir == g.Direction.Opposite() {
			continue
		}
		return dir
	}
	return g.Direction
}
