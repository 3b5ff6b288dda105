package renderer

import (
	"snakesearch/pkg/game/state"
)

// Sink receives one snapshot per completed step.
// Implementations can include TUI (terminal), Ebiten, a websocket hub, etc.
type Sink interface {
	// RenderFrame draws or forwards a frame. The snapshot is owned by the
	// sink once passed in.
	RenderFrame(s state.Snapshot)
}

// SinkFunc adapts a function to Sink
type SinkFunc func(s state.Snapshot)

// RenderFrame implements Sink
func (f SinkFunc) RenderFrame(s state.Snapshot) {
	f(s)
}

// Multi fans every frame out to each sink in order
type Multi []Sink

// RenderFrame implements Sink
func (m Multi) RenderFrame(s state.Snapshot) {
	for _, sink := range m {
		if sink != nil {
			sink.RenderFrame(s)
		}
	}
}

// Nop discards frames
type Nop struct{}

// RenderFrame implements Sink
func (Nop) RenderFrame(state.Snapshot) {}

// Recorder keeps every frame it receives
type Recorder struct {
	Frames []state.Snapshot
}

// RenderFrame implements Sink
func (r *Recorder) RenderFrame(s state.Snapshot) {
	r.Frames = append(r.Frames, s)
}

// Last returns the most recent frame
func (r *Recorder) Last() (state.Snapshot, bool) {
	if len(r.Frames) == 0 {
		return state.Snapshot{}, false
	}
	return r.Frames[len(r.Frames)-1], true
}
