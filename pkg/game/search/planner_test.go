package search

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

const cell = 20

func pt(col, row int) world.Point {
	return world.Point{X: col * cell, Y: row * cell}
}

// newTestGame creates a cols x rows game with the given snake (head first),
// food and obstacles
func newTestGame(t *testing.T, cols, rows int, snake []world.Point, food world.Point, obstacles ...world.Point) *state.Game {
	t.Helper()
	g := state.NewEmptyGame(world.NewGrid(cols*cell, rows*cell, cell), rand.New(rand.NewSource(1)))
	g.SetSnake(snake...)
	g.SetObstacles(obstacles...)
	g.Food = food
	return g
}

func planners() []Planner {
	return []Planner{NewBFS(), NewDFS(), NewBestFirst(), NewAStar()}
}

// requireValidPath replays path against g the way the game moves the snake
// and fails on any non-adjacent step, obstacle, wall or self collision.
func requireValidPath(t *testing.T, g *state.Game, path []world.Point) {
	t.Helper()

	snake := append([]world.Point(nil), g.Snake...)
	prev := g.Head()
	for i, p := range path {
		require.Equal(t, cell, world.ManhattanDistance(prev, p), "step %d %v is not adjacent to %v", i, p, prev)
		require.True(t, g.Grid.Contains(p), "step %d %v is outside the grid", i, p)
		require.False(t, g.IsObstacle(p), "step %d %v is an obstacle", i, p)

		eats := p == g.Food
		snake = append([]world.Point{p}, snake...)
		if !eats {
			snake = snake[:len(snake)-1]
		}
		for _, s := range snake[1:] {
			require.NotEqual(t, p, s, "step %d %v runs into the body", i, p)
		}
		prev = p
	}
}

func TestPlanners_SimplePath(t *testing.T) {
	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			g := newTestGame(t, 10, 10, []world.Point{pt(0, 0)}, pt(2, 0))

			path := p.Plan(g)

			require.NotEmpty(t, path)
			require.Equal(t, pt(2, 0), path[len(path)-1])
			requireValidPath(t, g, path)
			if p.Name() == string(ModeBFS) || p.Name() == string(ModeAStar) {
				require.Len(t, path, 2)
			}
		})
	}
}

func TestPlanners_DetourAroundObstacle(t *testing.T) {
	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			g := newTestGame(t, 10, 10, []world.Point{pt(0, 0)}, pt(2, 0), pt(1, 0))

			path := p.Plan(g)

			require.Greater(t, len(path), 2)
			require.NotContains(t, path, pt(1, 0))
			require.Equal(t, pt(2, 0), path[len(path)-1])
			requireValidPath(t, g, path)
		})
	}
}

func TestPlanners_EnclosedFood(t *testing.T) {
	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			g := newTestGame(t, 5, 5, []world.Point{pt(0, 0)}, pt(2, 2),
				pt(1, 2), pt(3, 2), pt(2, 1), pt(2, 3))

			require.Empty(t, p.Plan(g))
		})
	}
}

func TestPlanners_AdjacentFood(t *testing.T) {
	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			g := newTestGame(t, 10, 10, []world.Point{pt(0, 0)}, pt(1, 0))

			require.Equal(t, []world.Point{pt(1, 0)}, p.Plan(g))
		})
	}
}

func TestPlanners_FoodOnHead(t *testing.T) {
	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			g := newTestGame(t, 10, 10, []world.Point{pt(3, 3)}, pt(3, 3))

			require.Empty(t, p.Plan(g))
		})
	}
}

func TestPlanners_TailVacates(t *testing.T) {
	snake := []world.Point{pt(2, 2), pt(3, 2), pt(4, 2)}

	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			g := newTestGame(t, 8, 8, snake, pt(4, 2))

			path := p.Plan(g)

			require.NotEmpty(t, path, "the tail cell must be reachable once the tail moves away")
			require.Equal(t, pt(4, 2), path[len(path)-1])
			require.GreaterOrEqual(t, len(path), 4)
			requireValidPath(t, g, path)
		})
	}

	g := newTestGame(t, 8, 8, snake, pt(4, 2))
	require.Len(t, NewBFS().Plan(g), 4)
}

func TestPlanners_NeckIsBlocked(t *testing.T) {
	// The cell behind the head stays occupied on the first move, so the
	// food there needs a route around.
	g := newTestGame(t, 6, 6, []world.Point{pt(2, 2), pt(3, 2), pt(4, 2), pt(4, 3)}, pt(3, 2))

	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			path := p.Plan(g)
			require.NotEmpty(t, path)
			require.NotEqual(t, []world.Point{pt(3, 2)}, path)
			requireValidPath(t, g, path)
		})
	}
}

func TestPlanners_WaitForBodyToClear(t *testing.T) {
	// Every cell around the food is body. The head has to circle the free
	// top-left corner until the trail behind it has cleared.
	snake := []world.Point{pt(1, 1), pt(2, 1), pt(3, 1), pt(3, 2), pt(2, 2), pt(1, 2), pt(0, 2), pt(0, 3), pt(1, 3)}
	g := newTestGame(t, 4, 4, snake, pt(2, 3))

	require.Empty(t, bfsCells(g), "first discovery of each cell is a dead end here")
	require.Empty(t, aStarCells(g))

	for _, p := range []Planner{NewBFS(), NewAStar()} {
		t.Run(p.Name(), func(t *testing.T) {
			path := p.Plan(g)

			require.Len(t, path, 7)
			require.Equal(t, pt(2, 3), path[len(path)-1])
			requireValidPath(t, g, path)
			require.Equal(t, snake, g.Snake)
		})
	}
}

func TestPlanners_Idempotent(t *testing.T) {
	g := newTestGame(t, 10, 10, []world.Point{pt(5, 5), pt(5, 6), pt(5, 7)}, pt(1, 2), pt(3, 3), pt(4, 4))

	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			require.Equal(t, p.Plan(g), p.Plan(g))
		})
	}
}

func TestPlanners_DoNotMutateGame(t *testing.T) {
	snake := []world.Point{pt(5, 5), pt(5, 6), pt(5, 7), pt(4, 7)}

	for _, p := range planners() {
		t.Run(p.Name(), func(t *testing.T) {
			g := newTestGame(t, 10, 10, snake, pt(0, 0), pt(2, 2))
			p.Plan(g)

			require.Equal(t, snake, g.Snake)
			require.Equal(t, pt(0, 0), g.Food)
			require.Equal(t, []world.Point{pt(2, 2)}, g.Obstacles())
		})
	}
}

// randomLayout scatters obstacles and picks a free head and food
func randomLayout(t *testing.T, rng *rand.Rand, cols, rows, obstacles int) *state.Game {
	t.Helper()
	g := state.NewEmptyGame(world.NewGrid(cols*cell, rows*cell, cell), rng)
	g.SetSnake(pt(rng.Intn(cols), rng.Intn(rows)))
	require.NoError(t, g.GenerateObstacles(obstacles))
	require.NoError(t, g.GenerateFood())
	return g
}

func TestAStar_MatchesBFSLength(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for i := 0; i < 50; i++ {
		g := randomLayout(t, rng, 10, 10, 25)

		bfs := NewBFS().Plan(g)
		astar := NewAStar().Plan(g)

		require.Len(t, astar, len(bfs), "layout %d: head %v food %v obstacles %v", i, g.Head(), g.Food, g.Obstacles())
		requireValidPath(t, g, astar)
	}
}

func TestBFS_NoLongerThanOthers(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 50; i++ {
		g := randomLayout(t, rng, 10, 10, 20)

		bfs := NewBFS().Plan(g)
		for _, p := range []Planner{NewDFS(), NewBestFirst()} {
			other := p.Plan(g)
			require.Equal(t, len(bfs) == 0, len(other) == 0, "layout %d: %s disagrees on reachability", i, p.Name())
			require.LessOrEqual(t, len(bfs), len(other), "layout %d: bfs longer than %s", i, p.Name())
			requireValidPath(t, g, other)
		}
	}
}

// advance moves the snake onto p the way the game does, placing new food when
// p is eaten
func advance(t *testing.T, g *state.Game, p world.Point) {
	t.Helper()
	eats := p == g.Food
	g.Snake = append([]world.Point{p}, g.Snake...)
	if !eats {
		g.Snake = g.Snake[:len(g.Snake)-1]
		return
	}
	g.Score++
	require.NoError(t, g.GenerateFood())
}

func TestPlanners_ReplayedGames(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		g := state.NewEmptyGame(world.NewGrid(8*cell, 8*cell, cell), rand.New(rand.NewSource(seed)))
		require.NoError(t, g.GenerateObstacles(2))
		require.NoError(t, g.GenerateFood())

		for len(g.Snake) <= 12 {
			snake := append([]world.Point(nil), g.Snake...)
			food := g.Food

			bfs := NewBFS().Plan(g)
			astar := NewAStar().Plan(g)
			dfs := NewDFS().Plan(g)
			best := NewBestFirst().Plan(g)

			require.Equal(t, snake, g.Snake, "seed %d: planning moved the snake", seed)
			require.Equal(t, food, g.Food, "seed %d: planning moved the food", seed)
			for _, path := range [][]world.Point{bfs, astar, dfs, best} {
				requireValidPath(t, g, path)
			}
			require.Len(t, astar, len(bfs), "seed %d: snake %v food %v", seed, g.Snake, g.Food)
			if len(dfs) > 0 || len(best) > 0 {
				require.NotEmpty(t, bfs, "seed %d: bfs missed a route for snake %v food %v", seed, g.Snake, g.Food)
			}

			if len(bfs) == 0 {
				break
			}
			for _, p := range bfs {
				advance(t, g, p)
			}
		}
	}
}
