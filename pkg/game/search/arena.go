package search

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

const noOrigin = -1

// maxBodyStates bounds the states searchBodies expands before giving up
const maxBodyStates = 1 << 17

// node is one discovered cell of a single search. Nodes refer to their
// predecessor by index into the arena, so a search never shares or leaks
// scratch state with another. g and h are both in pixels, so a step costs
// one cell edge.
type node struct {
	p      world.Point
	origin int
	g      int
	h      int
}

func (n node) f() int {
	return n.g + n.h
}

// arena holds the nodes of one search together with a private copy of the
// snake, used to simulate the body as the head advances along a chain.
type arena struct {
	nodes []node
	snake []world.Point
	food  world.Point
	step  int
	game  *state.Game
}

func newArena(g *state.Game) *arena {
	a := &arena{
		nodes: make([]node, 0, g.Grid.CellCount()),
		snake: append([]world.Point(nil), g.Snake...),
		food:  g.Food,
		step:  g.Grid.CellSize(),
		game:  g,
	}
	a.nodes = append(a.nodes, node{p: g.Head(), origin: noOrigin, h: heuristic(g.Head(), g.Food)})
	return a
}

// root is the index of the head node
func (a *arena) root() int {
	return 0
}

// add appends a node one step beyond origin
func (a *arena) add(p world.Point, origin, h int) int {
	a.nodes = append(a.nodes, node{p: p, origin: origin, g: a.cost(origin), h: h})
	return len(a.nodes) - 1
}

// cost is g for a step out of node i
func (a *arena) cost(i int) int {
	return a.nodes[i].g + a.step
}

func (a *arena) at(i int) node {
	return a.nodes[i]
}

// blocked reports whether the head, having reached node i, cannot step onto
// p. The body after the chain's moves is the chain itself (newest first)
// followed by the current snake minus its head, cut to the snake's length.
// The tail of that body vacates on the step unless p is the food.
func (a *arena) blocked(i int, p world.Point) bool {
	if !a.game.Grid.Contains(p) || a.game.IsObstacle(p) {
		return true
	}

	limit := len(a.snake)
	if p != a.food {
		limit--
	}

	count := 0
	for j := i; j != noOrigin && count < limit; j = a.nodes[j].origin {
		if a.nodes[j].p == p {
			return true
		}
		count++
	}
	for k := 1; k < len(a.snake) && count < limit; k++ {
		if a.snake[k] == p {
			return true
		}
		count++
	}
	return false
}

// body appends the snake at node i to dst, head first. It is the chain
// followed by what is left of the current snake, cut to the snake's length.
func (a *arena) body(i int, dst []world.Point) []world.Point {
	for j := i; j != noOrigin && len(dst) < len(a.snake); j = a.nodes[j].origin {
		dst = append(dst, a.nodes[j].p)
	}
	for k := 1; k < len(a.snake) && len(dst) < len(a.snake); k++ {
		dst = append(dst, a.snake[k])
	}
	return dst
}

// path walks the backpointers from node i to the root and returns the route
// in head-to-goal order, head excluded
func (a *arena) path(i int) []world.Point {
	var reversed []world.Point
	for j := i; j != noOrigin && a.nodes[j].origin != noOrigin; j = a.nodes[j].origin {
		reversed = append(reversed, a.nodes[j].p)
	}

	path := make([]world.Point, len(reversed))
	for k, p := range reversed {
		path[len(reversed)-1-k] = p
	}
	return path
}

// searchBodies is a breadth-first search over whole-snake states instead of
// cells, so a cell can be entered again after the body has moved off it. It
// returns the shortest route to the food, or nil when there is none or
// maxBodyStates states were expanded first.
func searchBodies(g *state.Game) []world.Point {
	a := newArena(g)
	seed := maphash.MakeSeed()
	seen := mapset.Of(bodyKey(seed, g.Head(), g.Snake[1:]))
	frontier := queue.New[int]()
	frontier.Enqueue(a.root())

	body := make([]world.Point, 0, len(g.Snake))
	for expanded := 0; !frontier.Empty(); expanded++ {
		if expanded == maxBodyStates {
			return nil
		}
		cur := frontier.Dequeue()
		n := a.at(cur)
		body = a.body(cur, body[:0])

		for _, next := range g.Grid.Neighbors(n.p) {
			if a.blocked(cur, next) {
				continue
			}
			if next == g.Food {
				return a.path(a.add(next, cur, 0))
			}
			key := bodyKey(seed, next, body[:len(body)-1])
			if seen.Has(key) {
				continue
			}
			seen.Put(key)
			frontier.Enqueue(a.add(next, cur, 0))
		}
	}
	return nil
}

// bodyKey hashes a snake given as its head and the rest of the body
func bodyKey(seed maphash.Seed, head world.Point, rest []world.Point) uint64 {
	var h maphash.Hash
	h.SetSeed(seed)

	var buf [16]byte
	write := func(p world.Point) {
		binary.LittleEndian.PutUint64(buf[:8], uint64(p.X))
		binary.LittleEndian.PutUint64(buf[8:], uint64(p.Y))
		h.Write(buf[:])
	}
	write(head)
	for _, p := range rest {
		write(p)
	}
	return h.Sum64()
}
