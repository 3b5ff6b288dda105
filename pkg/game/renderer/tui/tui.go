package tui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/gookit/color"
	"github.com/leonelquinteros/gotext"
	"github.com/zyedidia/generic/mapset"

	"snakesearch/pkg/engine/terminal"
	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/state"
)

// Border icons
const (
	IconCorner     = "+"
	IconHorizontal = "--"
	IconVertical   = "|"
)

// clearScreen moves the cursor home and clears the terminal
const clearScreen = "\033[H\033[2J"

// TUIRenderer is the terminal-based sink. Each board cell is drawn two
// characters wide so the board keeps its proportions.
type TUIRenderer struct {
	out io.Writer

	// ClearScreen clears the terminal before each frame
	ClearScreen bool

	// ShowPath draws the planned route
	ShowPath bool

	// Manual selects the controls hint for keyboard play
	Manual bool

	colorHead     color.Style
	colorBody     color.Style
	colorFood     color.Style
	colorObstacle color.Style
	colorPath     color.Style
	colorBorder   color.Style
	colorStatus   color.Style
	colorDenied   color.Style
	colorSubtle   color.Style

	mu sync.Mutex
}

// New creates a new TUI renderer writing to out
func New(out io.Writer) *TUIRenderer {
	t := &TUIRenderer{out: out, ShowPath: true}
	t.Init()
	return t
}

// Init initializes the colors
func (t *TUIRenderer) Init() {
	t.colorHead = color.Style{color.FgGreen, color.BgBlack, color.OpBold}
	t.colorBody = color.Style{color.FgGreen}
	t.colorFood = color.Style{color.FgRed, color.OpBold}
	t.colorObstacle = color.Style{color.FgGray, color.OpBold}
	t.colorPath = color.Style{color.FgBlue}
	t.colorBorder = color.Style{color.FgGray}
	t.colorStatus = color.Style{color.FgMagenta, color.OpBold}
	t.colorDenied = color.Style{color.FgRed, color.OpBold}
	t.colorSubtle = color.Style{color.FgGray}
}

// RenderFrame implements renderer.Sink
func (t *TUIRenderer) RenderFrame(s state.Snapshot) {
	frame := t.Frame(s)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ClearScreen {
		frame = clearScreen + frame
	}
	// Raw terminal mode needs explicit carriage returns.
	fmt.Fprint(t.out, strings.ReplaceAll(frame, "\n", "\r\n"))
}

// Frame builds the text of one frame
func (t *TUIRenderer) Frame(s state.Snapshot) string {
	var sb strings.Builder

	if s.CellSize <= 0 {
		return ""
	}
	cols, rows := s.Width/s.CellSize, s.Height/s.CellSize

	if t.ClearScreen && !fits(cols, rows) {
		sb.WriteString(t.colorDenied.Sprint(gotext.Get("Terminal too small for a %dx%d board", cols, rows)))
		sb.WriteString("\n")
		sb.WriteString(renderer.StatusLine(s))
		sb.WriteString("\n")
		return sb.String()
	}

	body := mapset.New[world.Point]()
	for _, p := range s.Snake {
		body.Put(p)
	}
	obstacles := mapset.New[world.Point]()
	for _, p := range s.Obstacles {
		obstacles.Put(p)
	}
	path := mapset.New[world.Point]()
	if t.ShowPath {
		for _, p := range s.Path {
			path.Put(p)
		}
	}

	border := t.colorBorder.Sprint(IconCorner + strings.Repeat(IconHorizontal, cols) + IconCorner)
	sb.WriteString(border)
	sb.WriteString("\n")
	for row := 0; row < rows; row++ {
		sb.WriteString(t.colorBorder.Sprint(IconVertical))
		for col := 0; col < cols; col++ {
			p := world.Point{X: col * s.CellSize, Y: row * s.CellSize}
			sb.WriteString(t.cell(s, p, body, obstacles, path))
		}
		sb.WriteString(t.colorBorder.Sprint(IconVertical))
		sb.WriteString("\n")
	}
	sb.WriteString(border)
	sb.WriteString("\n")

	sb.WriteString(t.colorStatus.Sprint(renderer.StatusLine(s)))
	sb.WriteString("\n")
	if msg := renderer.ReasonText(s.Reason); msg != "" {
		sb.WriteString(t.colorDenied.Sprint(msg))
		sb.WriteString("\n")
	}
	sb.WriteString(t.colorSubtle.Sprint(renderer.ControlsHint(t.Manual)))
	sb.WriteString("\n")
	return sb.String()
}

func (t *TUIRenderer) cell(s state.Snapshot, p world.Point, body, obstacles, path mapset.Set[world.Point]) string {
	switch {
	case p == s.Head && len(s.Snake) > 0:
		return t.colorHead.Sprint(renderer.IconHead + " ")
	case body.Has(p):
		return t.colorBody.Sprint(renderer.IconBody + " ")
	case p == s.Food:
		return t.colorFood.Sprint(renderer.IconFood + " ")
	case obstacles.Has(p):
		return t.colorObstacle.Sprint(renderer.IconObstacle + renderer.IconObstacle)
	case path.Has(p):
		return t.colorPath.Sprint(renderer.IconPath + " ")
	default:
		return renderer.IconEmpty + renderer.IconEmpty
	}
}

// fits checks the board against the terminal size, leaving room for the
// border and the status lines
func fits(cols, rows int) bool {
	width, height := terminal.GetSize()
	return cols*2+2 <= width && rows+5 <= height
}
