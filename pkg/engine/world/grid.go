package world

// Grid describes the playing field: an axis-aligned rectangle of uniform
// square cells. Coordinates are in pixels, so every cell origin is a multiple
// of the cell size.
type Grid struct {
	width    int
	height   int
	cellSize int
}

// NewGrid creates a new grid with the given pixel dimensions and cell size
func NewGrid(width, height, cellSize int) *Grid {
	g := &Grid{}
	g.Build(width, height, cellSize)
	return g
}

// Build initializes the grid with the given dimensions
func (g *Grid) Build(width, height, cellSize int) {
	if width <= 0 || height <= 0 || cellSize <= 0 {
		panic("Grid dimensions must be positive")
	}
	if width%cellSize != 0 || height%cellSize != 0 {
		panic("Grid dimensions must be multiples of the cell size")
	}

	g.width = width
	g.height = height
	g.cellSize = cellSize
}

// Width returns the grid width in pixels
func (g *Grid) Width() int {
	return g.width
}

// Height returns the grid height in pixels
func (g *Grid) Height() int {
	return g.height
}

// CellSize returns the side of one cell in pixels
func (g *Grid) CellSize() int {
	return g.cellSize
}

// Cols returns the number of columns in the grid
func (g *Grid) Cols() int {
	return g.width / g.cellSize
}

// Rows returns the number of rows in the grid
func (g *Grid) Rows() int {
	return g.height / g.cellSize
}

// CellCount returns the total number of cells
func (g *Grid) CellCount() int {
	return g.Cols() * g.Rows()
}

// Contains checks if a point is within grid bounds
func (g *Grid) Contains(p Point) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// At returns the point for the given column and row
func (g *Grid) At(col, row int) Point {
	return Point{X: col * g.cellSize, Y: row * g.cellSize}
}

// ColRow returns the column and row of a point
func (g *Grid) ColRow(p Point) (col, row int) {
	return p.X / g.cellSize, p.Y / g.cellSize
}

// Center returns the cell at the center of the grid
func (g *Grid) Center() Point {
	return g.At(g.Cols()/2, g.Rows()/2)
}

// Step returns the point one cell away from p in the given direction.
// The result may lie outside the grid.
func (g *Grid) Step(p Point, dir Direction) Point {
	return p.Move(dir, g.cellSize)
}

// Neighbors returns the in-bounds axis neighbors of p in AllDirections order
func (g *Grid) Neighbors(p Point) []Point {
	neighbors := make([]Point, 0, 4)
	for _, dir := range AllDirections() {
		n := g.Step(p, dir)
		if g.Contains(n) {
			neighbors = append(neighbors, n)
		}
	}
	return neighbors
}

// ForEachCell iterates over all cells in row-major order
func (g *Grid) ForEachCell(fn func(p Point)) {
	for row := 0; row < g.Rows(); row++ {
		for col := 0; col < g.Cols(); col++ {
			fn(g.At(col, row))
		}
	}
}
