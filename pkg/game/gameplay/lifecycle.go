// Package gameplay provides the traversal engine: it asks the active strategy
// for moves, applies them to the game state and detects when a game ends.
package gameplay

import (
	"fmt"
	"math/rand"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/google/uuid"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/config"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/search"
	"snakesearch/pkg/game/state"
	"snakesearch/pkg/logging"
)

// Reason tells why a game ended. ReasonNone means it is still running.
type Reason int

const (
	ReasonNone Reason = iota
	ReasonCollided
	ReasonNoPath
	ReasonNoMove
	ReasonUserQuit
	ReasonStepLimit
)

// String returns the identifier used in snapshots and logs
func (r Reason) String() string {
	switch r {
	case ReasonCollided:
		return renderer.ReasonCollided
	case ReasonNoPath:
		return renderer.ReasonNoPath
	case ReasonNoMove:
		return renderer.ReasonNoMove
	case ReasonUserQuit:
		return renderer.ReasonUserQuit
	case ReasonStepLimit:
		return renderer.ReasonStepLimit
	default:
		return "running"
	}
}

// Terminal reports whether the reason ends the game
func (r Reason) Terminal() bool {
	return r != ReasonNone
}

// Outcome describes one step
type Outcome struct {
	Reason    Reason
	Direction world.Direction
	Head      world.Point
	Ate       bool
	Score     int
	Step      int
}

// Session owns one game and the strategy that plays it
type Session struct {
	ID   string
	Mode search.Mode
	Game *state.Game

	cfg      config.Config
	strategy search.Strategy
	logger   log.Logger

	steps  int
	reason Reason
	paced  bool
}

// NewSession creates a game from cfg and the strategy for mode. The game and
// any randomised strategy share one source seeded from cfg.Seed. A nil logger
// means the process logger.
func NewSession(cfg config.Config, mode search.Mode, logger log.Logger) (*Session, error) {
	if logger == nil {
		logger = logging.GlobalLogger()
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	g, err := state.NewGame(cfg, rng)
	if err != nil {
		return nil, err
	}

	strategy, err := search.New(mode, search.Options{
		Grid:             g.Grid,
		ObstaclesEnabled: cfg.ObstaclesEnabled,
		Rand:             rng,
	})
	if err != nil {
		return nil, err
	}

	id := uuid.NewString()
	s := &Session{
		ID:       id,
		Mode:     mode,
		Game:     g,
		cfg:      cfg,
		strategy: strategy,
		logger:   log.With(logger, "session", id, "mode", mode),
		paced:    true,
	}
	s.plan()

	_ = level.Debug(s.logger).Log("msg", "session created", "cols", g.Grid.Cols(), "rows", g.Grid.Rows(), "obstacles", len(g.Obstacles()), "seed", cfg.Seed)
	return s, nil
}

// Reset restarts the game in place with fresh food and obstacles
func (s *Session) Reset() error {
	if err := s.Game.Reset(); err != nil {
		return fmt.Errorf("resetting game: %w", err)
	}
	if r, ok := s.strategy.(interface{ Reset() }); ok {
		r.Reset()
	}
	s.steps = 0
	s.reason = ReasonNone
	s.plan()

	_ = level.Debug(s.logger).Log("msg", "session reset")
	return nil
}

// Strategy returns the strategy driving the session
func (s *Session) Strategy() search.Strategy {
	return s.strategy
}

// Reason returns the terminal reason, or ReasonNone while running
func (s *Session) Reason() Reason {
	return s.reason
}

// Steps returns the number of moves made since the game started
func (s *Session) Steps() int {
	return s.steps
}

// SetPaced turns the tick delay in Run on or off. Headless runs switch it off.
func (s *Session) SetPaced(paced bool) {
	s.paced = paced
}

// Snapshot captures the current frame
func (s *Session) Snapshot() state.Snapshot {
	snap := s.Game.Snapshot()
	snap.SessionID = s.ID
	snap.Mode = string(s.Mode)
	snap.Step = s.steps
	if s.reason.Terminal() {
		snap.Reason = s.reason.String()
	}
	return snap
}

// plan precomputes the route for planners
func (s *Session) plan() {
	if p, ok := s.strategy.(search.Planner); ok {
		s.Game.Path = p.Plan(s.Game)
	}
}

func (s *Session) finish(reason Reason) Outcome {
	s.reason = reason
	_ = level.Info(s.logger).Log("msg", "game over", "reason", reason, "score", s.Game.Score, "steps", s.steps, "length", len(s.Game.Snake))
	return s.outcome(world.None, false)
}

func (s *Session) outcome(dir world.Direction, ate bool) Outcome {
	return Outcome{
		Reason:    s.reason,
		Direction: dir,
		Head:      s.Game.Head(),
		Ate:       ate,
		Score:     s.Game.Score,
		Step:      s.steps,
	}
}
