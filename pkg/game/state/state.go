// Package state holds the live game state: the snake, obstacles, food and
// score, plus collision detection and placement of food and obstacles.
package state

import (
	"fmt"
	"math/rand"

	"github.com/zyedidia/generic/mapset"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/config"
)

// Game represents the state of one play session
type Game struct {
	Grid *world.Grid

	Direction world.Direction

	// Snake is ordered head first: Snake[0] is the head, the last element the tail.
	Snake []world.Point

	Food world.Point

	Score int

	// Path is the current precomputed route, head excluded, ordered head to goal.
	Path []world.Point

	ObstaclesEnabled bool
	ObstacleCount    int

	obstacles   []world.Point
	obstacleSet mapset.Set[world.Point]

	rng *rand.Rand
}

// NewGame creates a game from a validated configuration and places its
// obstacles and first food item
func NewGame(cfg config.Config, rng *rand.Rand) (*Game, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(cfg.Seed))
	}

	g := NewEmptyGame(world.NewGrid(cfg.Width, cfg.Height, cfg.CellSize), rng)
	g.ObstaclesEnabled = cfg.ObstaclesEnabled
	g.ObstacleCount = cfg.ObstacleCount

	if err := g.Reset(); err != nil {
		return nil, err
	}
	return g, nil
}

// NewEmptyGame creates a game with a one-segment snake at the grid center and
// nothing else placed. Food sits on the head until placed.
func NewEmptyGame(grid *world.Grid, rng *rand.Rand) *Game {
	if rng == nil {
		rng = rand.New(rand.NewSource(1))
	}
	head := grid.Center()
	return &Game{
		Grid:        grid,
		Direction:   world.Up,
		Snake:       []world.Point{head},
		Food:        head,
		obstacleSet: mapset.New[world.Point](),
		rng:         rng,
	}
}

// Reset restores the game to its starting conditions without recreating it:
// a one-segment snake at the center heading up, score zero, fresh obstacles
// (if enabled) and fresh food.
func (g *Game) Reset() error {
	g.Direction = world.Up
	g.Snake = []world.Point{g.Grid.Center()}
	g.Score = 0
	g.Path = nil
	g.SetObstacles()

	if g.ObstaclesEnabled {
		if err := g.GenerateObstacles(g.ObstacleCount); err != nil {
			return fmt.Errorf("placing obstacles: %w", err)
		}
	}
	if err := g.GenerateFood(); err != nil {
		return fmt.Errorf("placing food: %w", err)
	}
	return nil
}

// Head returns the snake's head
func (g *Game) Head() world.Point {
	return g.Snake[0]
}

// Tail returns the snake's last segment
func (g *Game) Tail() world.Point {
	return g.Snake[len(g.Snake)-1]
}

// Rand returns the game's random source
func (g *Game) Rand() *rand.Rand {
	return g.rng
}

// Obstacles returns the obstacles in placement order. Callers must not modify
// the returned slice.
func (g *Game) Obstacles() []world.Point {
	return g.obstacles
}

// IsObstacle checks if a point holds an obstacle
func (g *Game) IsObstacle(p world.Point) bool {
	return g.obstacleSet.Has(p)
}

// SetObstacles replaces all obstacles with the given points
func (g *Game) SetObstacles(points ...world.Point) {
	g.obstacles = nil
	g.obstacleSet = mapset.New[world.Point]()
	for _, p := range points {
		g.addObstacle(p)
	}
}

func (g *Game) addObstacle(p world.Point) {
	if g.obstacleSet.Has(p) {
		return
	}
	g.obstacleSet.Put(p)
	g.obstacles = append(g.obstacles, p)
}

// SetSnake replaces the snake body, head first, and derives the heading from
// the first two segments when possible
func (g *Game) SetSnake(body ...world.Point) {
	if len(body) == 0 {
		panic("snake must have at least one segment")
	}
	g.Snake = append([]world.Point(nil), body...)
	if len(body) > 1 {
		if dir := world.DirectionBetween(body[1], body[0]); dir.IsValid() {
			g.Direction = dir
		}
	}
}

// OnSnake checks if a point is covered by any snake segment
func (g *Game) OnSnake(p world.Point) bool {
	return containsPoint(g.Snake, p)
}

func containsPoint(points []world.Point, p world.Point) bool {
	for _, q := range points {
		if q == p {
			return true
		}
	}
	return false
}
