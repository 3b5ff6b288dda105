package ebiten

import (
	"context"
	"errors"
	"sync"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/hajimehoshi/ebiten/v2"

	engineinput "snakesearch/pkg/engine/input"
	"snakesearch/pkg/game/config"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/state"
	"snakesearch/pkg/logging"
)

// keyRepeatInfo tracks a held key or button
type keyRepeatInfo struct {
	firstPressed int64
	lastRepeat   int64
}

// EbitenRenderer draws the latest snapshot in a window and forwards
// keyboard and gamepad presses to an input queue. It implements both
// renderer.Sink and ebiten.Game.
type EbitenRenderer struct {
	input  *engineinput.QueueSource
	logger log.Logger

	boardWidth  int
	boardHeight int
	cellSize    int

	// ShowPath draws the planned route
	ShowPath bool

	// Manual selects the controls hint for keyboard play
	Manual bool

	frameMutex sync.RWMutex
	frame      state.Snapshot
	hasFrame   bool

	keyRepeatState      map[string]keyRepeatInfo
	keyRepeatStateMutex sync.Mutex

	windowOpenedLogged bool
	done               chan struct{}
}

// New creates a renderer sized for cfg that pushes intents onto src
func New(cfg config.Config, src *engineinput.QueueSource, logger log.Logger) *EbitenRenderer {
	if logger == nil {
		logger = logging.GlobalLogger()
	}
	return &EbitenRenderer{
		input:          src,
		logger:         logger,
		boardWidth:     cfg.Width,
		boardHeight:    cfg.Height,
		cellSize:       cfg.CellSize,
		ShowPath:       true,
		keyRepeatState: make(map[string]keyRepeatInfo),
		done:           make(chan struct{}),
	}
}

// RenderFrame implements renderer.Sink. The frame is drawn on the next
// Draw call.
func (e *EbitenRenderer) RenderFrame(s state.Snapshot) {
	e.frameMutex.Lock()
	defer e.frameMutex.Unlock()
	e.frame = s
	e.hasFrame = true
}

// Frame returns the most recent snapshot
func (e *EbitenRenderer) Frame() (state.Snapshot, bool) {
	e.frameMutex.RLock()
	defer e.frameMutex.RUnlock()
	return e.frame, e.hasFrame
}

// Update handles input (Ebiten interface)
func (e *EbitenRenderer) Update() error {
	select {
	case <-e.done:
		return ebiten.Termination
	default:
	}

	// Log window opening on first update (confirms window is actually running)
	if !e.windowOpenedLogged {
		e.windowOpenedLogged = true
		w, h := ebiten.WindowSize()
		_ = level.Info(e.logger).Log("msg", "window opened", "width", w, "height", h)
	}

	if e.input == nil {
		return nil
	}
	e.input.Push(e.checkGamepadInput()...)
	e.input.Push(e.checkInput()...)
	return nil
}

// Layout returns the logical screen size (Ebiten interface)
func (e *EbitenRenderer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.boardWidth, e.boardHeight + statusHeight
}

// Run opens the window and runs loop on its own goroutine. Ebiten must own
// the calling goroutine, so call Run from main. Closing the window cancels
// the context passed to loop; the window closes once loop returns.
func (e *EbitenRenderer) Run(ctx context.Context, title string, loop func(context.Context) error) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ebiten.SetWindowSize(e.boardWidth, e.boardHeight+statusHeight)
	ebiten.SetWindowTitle(title)

	errc := make(chan error, 1)
	go func() {
		errc <- loop(ctx)
		close(e.done)
	}()

	if err := ebiten.RunGame(e); err != nil && !errors.Is(err, ebiten.Termination) {
		cancel()
		<-errc
		return err
	}
	cancel()
	return <-errc
}

var _ renderer.Sink = (*EbitenRenderer)(nil)
