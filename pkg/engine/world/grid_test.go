package world

import "testing"

func TestNeighbors_CountByPosition(t *testing.T) {
	grid := NewGrid(100, 60, 20) // 5 cols, 3 rows

	grid.ForEachCell(func(p Point) {
		col, row := grid.ColRow(p)
		want := 4
		onEdgeX := col == 0 || col == grid.Cols()-1
		onEdgeY := row == 0 || row == grid.Rows()-1
		switch {
		case onEdgeX && onEdgeY:
			want = 2
		case onEdgeX || onEdgeY:
			want = 3
		}

		got := grid.Neighbors(p)
		if len(got) != want {
			t.Errorf("Neighbors(%v) returned %d points, want %d", p, len(got), want)
		}
		for _, n := range got {
			if !grid.Contains(n) {
				t.Errorf("Neighbors(%v) contains out-of-bounds %v", p, n)
			}
			if d := ManhattanDistance(p, n); d != grid.CellSize() {
				t.Errorf("Neighbors(%v) contains %v at distance %d, want %d", p, n, d, grid.CellSize())
			}
		}
	})
}

func TestNeighbors_DeterministicOrder(t *testing.T) {
	grid := NewGrid(60, 60, 20)
	got := grid.Neighbors(Point{X: 20, Y: 20})
	want := []Point{{0, 20}, {40, 20}, {20, 0}, {20, 40}}
	if len(got) != len(want) {
		t.Fatalf("Neighbors(center) = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Neighbors(center)[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestContains(t *testing.T) {
	grid := NewGrid(40, 40, 20)
	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"origin", Point{0, 0}, true},
		{"last cell", Point{20, 20}, true},
		{"right edge", Point{40, 0}, false},
		{"bottom edge", Point{0, 40}, false},
		{"negative x", Point{-20, 0}, false},
		{"negative y", Point{0, -20}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grid.Contains(tt.p); got != tt.want {
				t.Errorf("Contains(%v) = %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestCenter(t *testing.T) {
	grid := NewGrid(640, 640, 20)
	if got, want := grid.Center(), (Point{X: 320, Y: 320}); got != want {
		t.Errorf("Center() = %v, want %v", got, want)
	}
	odd := NewGrid(100, 60, 20)
	if got, want := odd.Center(), (Point{X: 40, Y: 20}); got != want {
		t.Errorf("Center() on 5x3 grid = %v, want %v", got, want)
	}
}

func TestNewGrid_PanicsOnInvalidDimensions(t *testing.T) {
	for _, dims := range [][3]int{{0, 20, 20}, {20, 20, 0}, {30, 20, 20}} {
		func() {
			defer func() {
				if recover() == nil {
					t.Errorf("NewGrid(%d, %d, %d) did not panic", dims[0], dims[1], dims[2])
				}
			}()
			NewGrid(dims[0], dims[1], dims[2])
		}()
	}
}
