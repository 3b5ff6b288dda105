package state

import "snakesearch/pkg/engine/world"

// DetectCollision checks a head position against the grid boundary, the
// snake body from index 1 onward and the obstacles. It is meant to be called
// after the head has been pushed (and the tail popped, if the move did not
// eat), so Snake[0] is the head being tested.
func (g *Game) DetectCollision(head world.Point) bool {
	if !g.Grid.Contains(head) || g.IsObstacle(head) {
		return true
	}
	if len(g.Snake) > 1 && containsPoint(g.Snake[1:], head) {
		return true
	}
	return false
}

// DetectPointCollision checks a hypothetical next head position against the
// grid boundary, the obstacles and the snake without its last excludeTail
// segments. Excluding the tail models the tail cell being vacated on a move
// that does not eat.
func (g *Game) DetectPointCollision(p world.Point, excludeTail int) bool {
	if !g.Grid.Contains(p) || g.IsObstacle(p) {
		return true
	}
	if excludeTail < 0 {
		excludeTail = 0
	}
	end := len(g.Snake) - excludeTail
	if end <= 0 {
		return false
	}
	return containsPoint(g.Snake[:end], p)
}

// IsSafeStep reports whether the head can move onto p this step. The tail
// vacates its cell unless p is the food, in which case the snake grows and
// the whole body stays occupied.
func (g *Game) IsSafeStep(p world.Point) bool {
	excludeTail := 1
	if p == g.Food {
		excludeTail = 0
	}
	return !g.DetectPointCollision(p, excludeTail)
}
