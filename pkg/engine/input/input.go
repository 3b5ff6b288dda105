// Package input turns device events into game intents and queues them for
// the game loop.
package input

import (
	"sync"
	"time"
)

// Source yields the intents received since the previous poll
type Source interface {
	Poll() []Intent
}

// QueueSource is a Source fed by other goroutines. Push may be called
// concurrently with Poll.
type QueueSource struct {
	mu      sync.Mutex
	pending []Intent
}

// NewQueueSource creates an empty queue
func NewQueueSource() *QueueSource {
	return &QueueSource{}
}

// Push appends intents to the queue, dropping ActionNone
func (q *QueueSource) Push(intents ...Intent) {
	q.mu.Lock()
	defer q.mu.Unlock()

	for _, in := range intents {
		if in.Action == ActionNone {
			continue
		}
		q.pending = append(q.pending, in)
	}
}

// PushCode maps a raw device code through the bindings and queues the result
func (q *QueueSource) PushCode(device Device, code string) {
	raw := RawInput{Device: device, Code: code, Timestamp: time.Now()}
	q.Push(MapToIntent(NewDebouncedInput(raw)))
}

// Poll drains the queue
func (q *QueueSource) Poll() []Intent {
	q.mu.Lock()
	defer q.mu.Unlock()

	out := q.pending
	q.pending = nil
	return out
}

// Len returns the number of queued intents
func (q *QueueSource) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.pending)
}

// NopSource never yields anything
type NopSource struct{}

// Poll implements Source
func (NopSource) Poll() []Intent { return nil }

// MultiSource polls each source in order
type MultiSource []Source

// Poll implements Source
func (m MultiSource) Poll() []Intent {
	var out []Intent
	for _, src := range m {
		if src != nil {
			out = append(out, src.Poll()...)
		}
	}
	return out
}
