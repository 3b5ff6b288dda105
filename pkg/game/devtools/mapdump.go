// Package devtools provides developer tools for testing and debugging.
package devtools

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/zyedidia/generic/mapset"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/state"
	"snakesearch/pkg/logging"
)

// cellSymbol returns the single-character symbol for a board cell
func cellSymbol(s state.Snapshot, p world.Point, body, obstacles, path mapset.Set[world.Point]) string {
	switch {
	case len(s.Snake) > 0 && p == s.Head:
		return renderer.IconHead
	case body.Has(p):
		return renderer.IconBody
	case p == s.Food:
		return renderer.IconFood
	case obstacles.Has(p):
		return renderer.IconObstacle
	case path.Has(p):
		return renderer.IconPath
	default:
		return "_"
	}
}

// writeMapGrid writes one line per board row
func writeMapGrid(w io.Writer, s state.Snapshot) {
	body := mapset.Of(s.Snake...)
	obstacles := mapset.Of(s.Obstacles...)
	path := mapset.Of(s.Path...)

	cols, rows := s.Width/s.CellSize, s.Height/s.CellSize
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			p := world.Point{X: col * s.CellSize, Y: row * s.CellSize}
			fmt.Fprint(w, cellSymbol(s, p, body, obstacles, path))
		}
		fmt.Fprintln(w)
	}
}

// WriteBoard writes a debug dump of a frame: metadata, legend and the board.
// Format is human-readable (sections, key: value, consistent structure).
func WriteBoard(w io.Writer, s state.Snapshot) error {
	if s.CellSize <= 0 {
		return fmt.Errorf("no board in frame")
	}

	// --- Metadata ---
	fmt.Fprintln(w, "=== BOARD DUMP ===")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "--- Metadata ---")
	fmt.Fprintf(w, "session: %s\n", s.SessionID)
	fmt.Fprintf(w, "mode: %s\n", s.Mode)
	fmt.Fprintf(w, "grid_cols: %d\n", s.Width/s.CellSize)
	fmt.Fprintf(w, "grid_rows: %d\n", s.Height/s.CellSize)
	fmt.Fprintf(w, "cell_size: %d\n", s.CellSize)
	fmt.Fprintf(w, "step: %d\n", s.Step)
	fmt.Fprintf(w, "score: %d\n", s.Score)
	fmt.Fprintf(w, "length: %d\n", len(s.Snake))
	fmt.Fprintf(w, "head: %s\n", s.Head)
	fmt.Fprintf(w, "food: %s\n", s.Food)
	fmt.Fprintf(w, "direction: %s\n", s.Direction)
	if s.Reason != "" {
		fmt.Fprintf(w, "reason: %s\n", s.Reason)
	}
	fmt.Fprintln(w, "")

	// --- Legend ---
	fmt.Fprintln(w, "--- Legend ---")
	fmt.Fprintf(w, "%s = head  %s = body  %s = food  %s = obstacle  %s = planned path  _ = empty\n",
		renderer.IconHead, renderer.IconBody, renderer.IconFood, renderer.IconObstacle, renderer.IconPath)
	fmt.Fprintln(w, "")

	// --- Board ---
	fmt.Fprintln(w, "--- Board ---")
	writeMapGrid(w, s)
	return nil
}

// DumpBoardToFile writes the dump of s into dir, named after the session and
// step, and returns the absolute path.
func DumpBoardToFile(dir string, s state.Snapshot) (string, error) {
	name := fmt.Sprintf("board-%s-%d.txt", s.SessionID, s.Step)
	absPath, err := filepath.Abs(filepath.Join(dir, name))
	if err != nil {
		return "", err
	}

	f, err := os.Create(absPath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WriteBoard(f, s); err != nil {
		return "", err
	}
	return absPath, nil
}

// DumpSink dumps the final frame of every game to Dir. A nil Logger logs to
// the process logger.
type DumpSink struct {
	Dir    string
	Logger log.Logger
}

// RenderFrame implements renderer.Sink
func (d DumpSink) RenderFrame(s state.Snapshot) {
	if s.Reason == "" {
		return
	}
	logger := d.Logger
	if logger == nil {
		logger = logging.GlobalLogger()
	}

	path, err := DumpBoardToFile(d.Dir, s)
	if err != nil {
		_ = level.Warn(logger).Log("msg", "board dump failed", "dir", d.Dir, "err", err)
		return
	}
	_ = level.Debug(logger).Log("msg", "board dumped", "path", path)
}
