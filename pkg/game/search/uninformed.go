package search

import (
	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"
	"github.com/zyedidia/generic/stack"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

// BFS plans the shortest route by step count, expanding level by level.
// A cell is discovered at most once; the first discovery wins. When that
// finds nothing for a snake longer than its head, BFS retries over whole
// body states, which covers routes that must wait for the body to clear.
type BFS struct{}

// NewBFS creates a breadth-first planner
func NewBFS() *BFS {
	return &BFS{}
}

// Name implements Strategy
func (*BFS) Name() string { return string(ModeBFS) }

// Plan implements Planner
func (*BFS) Plan(g *state.Game) []world.Point {
	if g.Head() == g.Food {
		return nil
	}
	if path := bfsCells(g); len(path) > 0 || len(g.Snake) < 2 {
		return path
	}
	return searchBodies(g)
}

func bfsCells(g *state.Game) []world.Point {
	a := newArena(g)
	discovered := mapset.Of(g.Head())
	frontier := queue.New[int]()
	frontier.Enqueue(a.root())

	for !frontier.Empty() {
		cur := frontier.Dequeue()
		n := a.at(cur)

		for _, next := range g.Grid.Neighbors(n.p) {
			if discovered.Has(next) || a.blocked(cur, next) {
				continue
			}
			discovered.Put(next)
			i := a.add(next, cur, 0)
			if next == g.Food {
				return a.path(i)
			}
			frontier.Enqueue(i)
		}
	}
	return nil
}

// DFS plans a route by always extending the most recently found cell. The
// route is valid but usually far from the shortest.
type DFS struct{}

// NewDFS creates a depth-first planner
func NewDFS() *DFS {
	return &DFS{}
}

// Name implements Strategy
func (*DFS) Name() string { return string(ModeDFS) }

// Plan implements Planner
func (*DFS) Plan(g *state.Game) []world.Point {
	if g.Head() == g.Food {
		return nil
	}

	a := newArena(g)
	closed := mapset.New[world.Point]()
	frontier := stack.New[int]()
	frontier.Push(a.root())

	for frontier.Size() > 0 {
		cur := frontier.Pop()
		n := a.at(cur)
		if closed.Has(n.p) {
			continue
		}
		closed.Put(n.p)

		for _, next := range g.Grid.Neighbors(n.p) {
			if closed.Has(next) || a.blocked(cur, next) {
				continue
			}
			i := a.add(next, cur, 0)
			if next == g.Food {
				return a.path(i)
			}
			frontier.Push(i)
		}
	}
	return nil
}
