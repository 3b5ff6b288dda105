package state

import (
	"testing"

	"snakesearch/pkg/engine/world"
)

func TestDetectCollision(t *testing.T) {
	g := makeSmallGame(t)
	g.SetSnake(
		world.Point{X: 40, Y: 40},
		world.Point{X: 40, Y: 60},
		world.Point{X: 60, Y: 60},
	)
	g.SetObstacles(world.Point{X: 0, Y: 0})

	tests := []struct {
		name string
		head world.Point
		want bool
	}{
		{"free cell", world.Point{X: 20, Y: 20}, false},
		{"current head is ignored", world.Point{X: 40, Y: 40}, false},
		{"body segment", world.Point{X: 40, Y: 60}, true},
		{"tail segment", world.Point{X: 60, Y: 60}, true},
		{"obstacle", world.Point{X: 0, Y: 0}, true},
		{"left of grid", world.Point{X: -20, Y: 40}, true},
		{"right of grid", world.Point{X: 100, Y: 40}, true},
		{"above grid", world.Point{X: 40, Y: -20}, true},
		{"below grid", world.Point{X: 40, Y: 100}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.DetectCollision(tt.head); got != tt.want {
				t.Errorf("DetectCollision(%v) = %v, want %v", tt.head, got, tt.want)
			}
		})
	}
}

func TestDetectPointCollision(t *testing.T) {
	g := makeSmallGame(t)
	g.SetSnake(
		world.Point{X: 40, Y: 40},
		world.Point{X: 40, Y: 60},
		world.Point{X: 60, Y: 60},
	)
	tail := world.Point{X: 60, Y: 60}

	tests := []struct {
		name        string
		p           world.Point
		excludeTail int
		want        bool
	}{
		{"tail included", tail, 0, true},
		{"tail excluded", tail, 1, false},
		{"head included", world.Point{X: 40, Y: 40}, 1, true},
		{"exclude whole body", world.Point{X: 40, Y: 40}, 3, false},
		{"exclude more than body", world.Point{X: 40, Y: 40}, 10, false},
		{"negative treated as zero", tail, -1, true},
		{"out of bounds regardless", world.Point{X: 0, Y: -20}, 3, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := g.DetectPointCollision(tt.p, tt.excludeTail); got != tt.want {
				t.Errorf("DetectPointCollision(%v, %d) = %v, want %v", tt.p, tt.excludeTail, got, tt.want)
			}
		})
	}
}

func TestIsSafeStep_TailVacatesUnlessEating(t *testing.T) {
	g := makeSmallGame(t)
	g.SetSnake(
		world.Point{X: 40, Y: 40},
		world.Point{X: 60, Y: 40},
		world.Point{X: 60, Y: 60},
		world.Point{X: 40, Y: 60},
	)
	tail := world.Point{X: 40, Y: 60}

	g.Food = world.Point{X: 0, Y: 0}
	if !g.IsSafeStep(tail) {
		t.Errorf("IsSafeStep(tail) without food = false, want true")
	}

	g.Food = tail
	if g.IsSafeStep(tail) {
		t.Errorf("IsSafeStep(tail) when the tail cell holds food = true, want false")
	}
}
