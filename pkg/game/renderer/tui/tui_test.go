package tui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gookit/color"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/state"
)

func snapshot() state.Snapshot {
	return state.Snapshot{
		Mode:      "bfs",
		Width:     80,
		Height:    60,
		CellSize:  20,
		Snake:     []world.Point{{X: 20, Y: 20}, {X: 40, Y: 20}},
		Head:      world.Point{X: 20, Y: 20},
		Obstacles: []world.Point{{X: 60, Y: 40}},
		Food:      world.Point{X: 0, Y: 40},
		Path:      []world.Point{{X: 0, Y: 20}, {X: 0, Y: 40}},
		Score:     3,
		Step:      12,
	}
}

func TestFrame_Board(t *testing.T) {
	r := New(&bytes.Buffer{})
	lines := strings.Split(color.ClearCode(r.Frame(snapshot())), "\n")

	want := []string{
		"+--------+",
		"|        |",
		"|. @ o   |",
		"|*     ##|",
		"+--------+",
	}
	for i, w := range want {
		if lines[i] != w {
			t.Errorf("line %d = %q, want %q", i, lines[i], w)
		}
	}
	if !strings.Contains(lines[5], "Score: 3") || !strings.Contains(lines[5], "Breadth-First Search") {
		t.Errorf("status line = %q, want mode title and score", lines[5])
	}
}

func TestFrame_HidePath(t *testing.T) {
	r := New(&bytes.Buffer{})
	r.ShowPath = false
	lines := strings.Split(color.ClearCode(r.Frame(snapshot())), "\n")

	if lines[2] != "|  @ o   |" {
		t.Errorf("row with hidden path = %q", lines[2])
	}
}

func TestFrame_GameOver(t *testing.T) {
	r := New(&bytes.Buffer{})
	s := snapshot()
	s.Reason = "no_path"

	out := color.ClearCode(r.Frame(s))
	if !strings.Contains(out, "no path to the food") {
		t.Errorf("Frame() for a finished game = %q, want the reason", out)
	}
}

func TestRenderFrame_WritesCarriageReturns(t *testing.T) {
	var buf bytes.Buffer
	r := New(&buf)
	r.RenderFrame(snapshot())

	if !strings.Contains(buf.String(), "\r\n") {
		t.Error("RenderFrame() output has no carriage returns")
	}
	if strings.Contains(buf.String(), "\033[H\033[2J") {
		t.Error("RenderFrame() cleared the screen with ClearScreen off")
	}
}

func TestFrame_ZeroCellSize(t *testing.T) {
	r := New(&bytes.Buffer{})
	if got := r.Frame(state.Snapshot{}); got != "" {
		t.Errorf("Frame(empty snapshot) = %q, want empty", got)
	}
}
