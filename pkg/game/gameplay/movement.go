package gameplay

import (
	"fmt"

	"github.com/go-kit/log/level"

	"snakesearch/pkg/engine/input"
	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/search"
)

// Step advances the game by one move. Intents are the player commands
// received since the previous step. Once the game has ended Step keeps
// returning the terminal outcome without moving.
//
// The only error is a failure to place new food, which means the grid is
// full.
func (s *Session) Step(intents ...input.Intent) (Outcome, error) {
	if s.reason.Terminal() {
		return s.outcome(world.None, false), nil
	}
	if quitRequested(intents) {
		return s.finish(ReasonUserQuit), nil
	}
	if st, ok := s.strategy.(search.Steerer); ok {
		st.Steer(intents)
	}

	var dir world.Direction
	switch strategy := s.strategy.(type) {
	case search.Planner:
		dir = s.followPath(strategy)
		if dir == world.None {
			return s.finish(ReasonNoPath), nil
		}
	case search.Stepper:
		dir = strategy.NextDirection(s.Game)
		if !dir.IsValid() {
			return s.finish(ReasonNoMove), nil
		}
	default:
		return Outcome{}, fmt.Errorf("strategy %s can neither step nor plan", s.strategy.Name())
	}

	return s.move(dir)
}

// followPath pops the next cell of the current route, replanning once when
// the route is empty or no longer starts next to the head
func (s *Session) followPath(p search.Planner) world.Direction {
	g := s.Game
	for attempt := 0; attempt < 2; attempt++ {
		if len(g.Path) == 0 || attempt > 0 {
			g.Path = p.Plan(g)
		}
		if len(g.Path) == 0 {
			return world.None
		}

		next := g.Path[0]
		dir := world.DirectionBetween(g.Head(), next)
		if dir.IsValid() && g.Grid.Step(g.Head(), dir) == next {
			g.Path = g.Path[1:]
			return dir
		}
		_ = level.Debug(s.logger).Log("msg", "stale path", "head", g.Head(), "next", next)
	}
	return world.None
}

// move applies one step: push the new head, drop the tail unless the food
// is eaten, then check the head against walls, body and obstacles
func (s *Session) move(dir world.Direction) (Outcome, error) {
	g := s.Game
	next := g.Grid.Step(g.Head(), dir)
	ate := next == g.Food

	g.Direction = dir
	g.Snake = append([]world.Point{next}, g.Snake...)
	if !ate {
		g.Snake = g.Snake[:len(g.Snake)-1]
	}
	s.steps++

	if g.DetectCollision(next) {
		_ = level.Debug(s.logger).Log("msg", "collision", "head", next, "dir", dir)
		out := s.finish(ReasonCollided)
		out.Direction = dir
		return out, nil
	}

	if ate {
		g.Score++
		_ = level.Debug(s.logger).Log("msg", "food eaten", "at", next, "score", g.Score)
		if err := g.GenerateFood(); err != nil {
			return s.outcome(dir, true), fmt.Errorf("placing food after step %d: %w", s.steps, err)
		}
		s.plan()
	}
	return s.outcome(dir, ate), nil
}
