// Package world provides the 2D grid primitives shared by the game and the
// search strategies: cell coordinates, directions and grid bounds.
package world

import "fmt"

// Point is a cell coordinate in pixels. Both components are multiples of the
// grid cell size. Points are plain values: equality and map keys use (X, Y)
// only.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// String returns a compact representation of the point
func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Move returns the point one cell away in the given direction
func (p Point) Move(dir Direction, cellSize int) Point {
	dx, dy := dir.Delta()
	return Point{X: p.X + dx*cellSize, Y: p.Y + dy*cellSize}
}

// ManhattanDistance calculates the Manhattan distance between two points
func ManhattanDistance(a, b Point) int {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}
