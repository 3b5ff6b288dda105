package state

import "snakesearch/pkg/engine/world"

// Snapshot is the per-step view handed to render sinks. It owns copies of
// every slice, so sinks may keep it after the game moves on.
type Snapshot struct {
	SessionID string          `json:"session_id,omitempty"`
	Mode      string          `json:"mode,omitempty"`
	Width     int             `json:"width"`
	Height    int             `json:"height"`
	CellSize  int             `json:"cell_size"`
	Snake     []world.Point   `json:"snake"`
	Head      world.Point     `json:"head"`
	Obstacles []world.Point   `json:"obstacles"`
	Food      world.Point     `json:"food"`
	Path      []world.Point   `json:"path,omitempty"`
	Direction world.Direction `json:"direction"`
	Score     int             `json:"score"`
	Step      int             `json:"step"`
	Reason    string          `json:"reason,omitempty"`
}

// Snapshot captures the drawable state of the game
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Width:     g.Grid.Width(),
		Height:    g.Grid.Height(),
		CellSize:  g.Grid.CellSize(),
		Snake:     append([]world.Point(nil), g.Snake...),
		Head:      g.Head(),
		Obstacles: append([]world.Point(nil), g.obstacles...),
		Food:      g.Food,
		Path:      append([]world.Point(nil), g.Path...),
		Direction: g.Direction,
		Score:     g.Score,
	}
}
