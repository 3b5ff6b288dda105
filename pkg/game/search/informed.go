package search

import (
	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/mapset"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

// entry is a frontier item. seq breaks priority ties in insertion order.
type entry struct {
	priority int
	seq      int
	node     int
}

// frontier is a min-priority queue of arena nodes
type frontier struct {
	h   *heap.Heap[entry]
	seq int
}

func newFrontier() *frontier {
	return &frontier{
		h: heap.New(func(a, b entry) bool {
			if a.priority != b.priority {
				return a.priority < b.priority
			}
			return a.seq < b.seq
		}),
	}
}

func (f *frontier) push(node, priority int) {
	f.h.Push(entry{priority: priority, seq: f.seq, node: node})
	f.seq++
}

func (f *frontier) pop() (int, bool) {
	e, ok := f.h.Pop()
	return e.node, ok
}

// BestFirst plans greedily toward the food, always expanding the discovered
// cell closest to it by Manhattan distance.
type BestFirst struct{}

// NewBestFirst creates a greedy best-first planner
func NewBestFirst() *BestFirst {
	return &BestFirst{}
}

// Name implements Strategy
func (*BestFirst) Name() string { return string(ModeBestFirst) }

// Plan implements Planner
func (*BestFirst) Plan(g *state.Game) []world.Point {
	if g.Head() == g.Food {
		return nil
	}

	a := newArena(g)
	discovered := mapset.Of(g.Head())
	open := newFrontier()
	open.push(a.root(), a.at(a.root()).h)

	for {
		cur, ok := open.pop()
		if !ok {
			return nil
		}
		n := a.at(cur)
		if n.p == g.Food {
			return a.path(cur)
		}

		for _, next := range g.Grid.Neighbors(n.p) {
			if discovered.Has(next) || a.blocked(cur, next) {
				continue
			}
			discovered.Put(next)
			h := heuristic(next, g.Food)
			open.push(a.add(next, cur, h), h)
		}
	}
}

// AStar plans the shortest route, expanding by cost so far plus the
// Manhattan distance to the food. A cell is closed the first time it is
// popped and never reopened. Like BFS it retries over whole body states
// when that finds nothing.
type AStar struct{}

// NewAStar creates an A* planner
func NewAStar() *AStar {
	return &AStar{}
}

// Name implements Strategy
func (*AStar) Name() string { return string(ModeAStar) }

// Plan implements Planner
func (*AStar) Plan(g *state.Game) []world.Point {
	if g.Head() == g.Food {
		return nil
	}
	if path := aStarCells(g); len(path) > 0 || len(g.Snake) < 2 {
		return path
	}
	return searchBodies(g)
}

func aStarCells(g *state.Game) []world.Point {
	a := newArena(g)
	closed := mapset.New[world.Point]()
	best := map[world.Point]int{g.Head(): 0}
	open := newFrontier()
	open.push(a.root(), a.at(a.root()).f())

	for {
		cur, ok := open.pop()
		if !ok {
			return nil
		}
		n := a.at(cur)
		if closed.Has(n.p) {
			continue
		}
		if n.p == g.Food {
			return a.path(cur)
		}
		closed.Put(n.p)

		for _, next := range g.Grid.Neighbors(n.p) {
			if closed.Has(next) || a.blocked(cur, next) {
				continue
			}
			cost := a.cost(cur)
			if known, seen := best[next]; seen && known <= cost {
				continue
			}
			best[next] = cost
			i := a.add(next, cur, heuristic(next, g.Food))
			open.push(i, a.at(i).f())
		}
	}
}
