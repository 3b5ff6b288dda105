package search

import (
	"errors"

	"github.com/zyedidia/generic/mapset"
	"github.com/zyedidia/generic/queue"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

// ErrNoHamiltonianCycle is returned for grids the zig-zag construction
// cannot close: it needs an even number of rows and at least two columns.
var ErrNoHamiltonianCycle = errors.New("grid has no zig-zag hamiltonian cycle")

// maxDetourDepth caps the detour search radius, in steps
const maxDetourDepth = 10

// Hamiltonian follows a fixed cycle through every cell of the grid. When the
// next cycle cell is unsafe it searches a short detour back onto a later part
// of the cycle and plays it out step by step.
type Hamiltonian struct {
	cycle  []world.Point
	index  map[world.Point]int
	detour []world.Direction
}

// NewHamiltonian builds the cycle for grid
func NewHamiltonian(grid *world.Grid) (*Hamiltonian, error) {
	cycle, err := BuildCycle(grid)
	if err != nil {
		return nil, err
	}

	index := make(map[world.Point]int, len(cycle))
	for i, p := range cycle {
		index[p] = i
	}
	return &Hamiltonian{cycle: cycle, index: index}, nil
}

// BuildCycle returns the zig-zag cycle: start at the top-left corner, sweep
// row 0 rightward from column 1, alternate direction on each following row
// while leaving column 0 free, step into column 0 on the last row and climb
// column 0 back to the start.
func BuildCycle(grid *world.Grid) ([]world.Point, error) {
	cols, rows := grid.Cols(), grid.Rows()
	if cols < 2 || rows < 2 || rows%2 != 0 {
		return nil, ErrNoHamiltonianCycle
	}

	cycle := make([]world.Point, 0, grid.CellCount())
	cycle = append(cycle, grid.At(0, 0))
	for row := 0; row < rows; row++ {
		if row%2 == 0 {
			for col := 1; col < cols; col++ {
				cycle = append(cycle, grid.At(col, row))
			}
		} else {
			for col := cols - 1; col >= 1; col-- {
				cycle = append(cycle, grid.At(col, row))
			}
		}
	}
	for row := rows - 1; row >= 1; row-- {
		cycle = append(cycle, grid.At(0, row))
	}
	return cycle, nil
}

// Name implements Strategy
func (*Hamiltonian) Name() string { return string(ModeHamiltonian) }

// Cycle returns the cycle in traversal order
func (h *Hamiltonian) Cycle() []world.Point {
	return h.cycle
}

// Detouring reports whether a detour is being played out
func (h *Hamiltonian) Detouring() bool {
	return len(h.detour) > 0
}

// NextDirection implements Stepper
func (h *Hamiltonian) NextDirection(g *state.Game) world.Direction {
	head := g.Head()

	if len(h.detour) > 0 {
		dir := h.detour[0]
		if g.IsSafeStep(g.Grid.Step(head, dir)) {
			h.detour = h.detour[1:]
			return dir
		}
		h.detour = nil
	}

	current := h.index[head]
	next := h.cycle[(current+1)%len(h.cycle)]
	if g.IsSafeStep(next) {
		return world.DirectionBetween(head, next)
	}

	route := h.findDetour(g, current)
	if len(route) == 0 {
		return world.None
	}
	h.detour = route[1:]
	return route[0]
}

// Reset drops any detour in progress
func (h *Hamiltonian) Reset() {
	h.detour = nil
}

// findDetour picks the first safe cycle cell after current and searches a
// route to it within maxDetourDepth steps, treating the snake as fixed
// except for its tail.
func (h *Hamiltonian) findDetour(g *state.Game, current int) []world.Direction {
	target, ok := h.firstSafeAhead(g, current)
	if !ok {
		return nil
	}

	type visit struct {
		p     world.Point
		route []world.Direction
	}

	visited := mapset.Of(g.Head())
	frontier := queue.New[visit]()
	frontier.Enqueue(visit{p: g.Head()})

	for !frontier.Empty() {
		v := frontier.Dequeue()
		if v.p == target {
			return v.route
		}
		if len(v.route) >= maxDetourDepth {
			continue
		}
		for _, dir := range world.AllDirections() {
			next := g.Grid.Step(v.p, dir)
			if visited.Has(next) || !staticSafe(g, next) {
				continue
			}
			visited.Put(next)
			route := append(append([]world.Direction(nil), v.route...), dir)
			frontier.Enqueue(visit{p: next, route: route})
		}
	}
	return nil
}

func (h *Hamiltonian) firstSafeAhead(g *state.Game, current int) (world.Point, bool) {
	for i := 1; i < len(h.cycle); i++ {
		p := h.cycle[(current+i)%len(h.cycle)]
		if staticSafe(g, p) {
			return p, true
		}
	}
	return world.Point{}, false
}

// staticSafe treats every segment but the tail as occupied
func staticSafe(g *state.Game, p world.Point) bool {
	return !g.DetectPointCollision(p, 1)
}
