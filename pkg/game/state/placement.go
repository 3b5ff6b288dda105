package state

import (
	"errors"

	"github.com/zyedidia/generic/mapset"

	"snakesearch/pkg/engine/world"
)

// ErrNoFreeCell is returned when every cell is covered by the snake or an
// obstacle, so nothing more can be placed
var ErrNoFreeCell = errors.New("no free cell on the grid")

// placementAttemptsPerCell bounds rejection sampling before falling back to
// a scan of the free cells
const placementAttemptsPerCell = 4

// GenerateFood places the food on a uniformly chosen cell that is neither a
// snake segment nor an obstacle
func (g *Game) GenerateFood() error {
	p, err := g.randomFreeCell(g.occupied())
	if err != nil {
		return err
	}
	g.Food = p
	return nil
}

// GenerateObstacles places count obstacles, each on a cell that is not on the
// snake and not already an obstacle
func (g *Game) GenerateObstacles(count int) error {
	occupied := g.occupied()
	for i := 0; i < count; i++ {
		p, err := g.randomFreeCell(occupied)
		if err != nil {
			return err
		}
		g.addObstacle(p)
		occupied.Put(p)
	}
	return nil
}

// FreeCells returns the number of cells not covered by the snake or obstacles
func (g *Game) FreeCells() int {
	return g.Grid.CellCount() - g.occupied().Size()
}

func (g *Game) occupied() mapset.Set[world.Point] {
	occupied := mapset.New[world.Point]()
	for _, p := range g.Snake {
		occupied.Put(p)
	}
	for _, p := range g.obstacles {
		occupied.Put(p)
	}
	return occupied
}

// randomFreeCell samples uniformly with rejection. After a bounded number of
// misses it picks uniformly among the remaining free cells instead, so a
// nearly full grid still terminates and a full grid reports ErrNoFreeCell.
func (g *Game) randomFreeCell(occupied mapset.Set[world.Point]) (world.Point, error) {
	cols, rows := g.Grid.Cols(), g.Grid.Rows()

	attempts := g.Grid.CellCount() * placementAttemptsPerCell
	for i := 0; i < attempts; i++ {
		p := g.Grid.At(g.rng.Intn(cols), g.rng.Intn(rows))
		if !occupied.Has(p) {
			return p, nil
		}
	}

	var free []world.Point
	g.Grid.ForEachCell(func(p world.Point) {
		if !occupied.Has(p) {
			free = append(free, p)
		}
	})
	if len(free) == 0 {
		return world.Point{}, ErrNoFreeCell
	}
	return free[g.rng.Intn(len(free))], nil
}
