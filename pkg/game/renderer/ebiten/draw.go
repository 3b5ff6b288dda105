package ebiten

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"snakesearch/pkg/engine/world"
	"snakesearch/pkg/game/renderer"
	"snakesearch/pkg/game/state"
)

// Draw renders the latest frame (Ebiten interface)
func (e *EbitenRenderer) Draw(screen *ebiten.Image) {
	screen.Fill(colorBackground)
	vector.DrawFilledRect(screen, 0, 0, float32(e.boardWidth), float32(e.boardHeight), colorMapBackground, false)

	s, ok := e.Frame()
	if !ok {
		ebitenutil.DebugPrintAt(screen, renderer.ControlsHint(e.Manual), 4, e.boardHeight+4)
		return
	}

	if e.ShowPath {
		for _, p := range s.Path {
			e.drawCell(screen, p, colorPath)
		}
	}
	for _, p := range s.Obstacles {
		e.drawCell(screen, p, colorObstacle)
	}
	e.drawCell(screen, s.Food, colorFood)
	for i, p := range s.Snake {
		if i == 0 {
			e.drawCell(screen, p, colorHead)
			continue
		}
		e.drawCell(screen, p, colorBody)
	}

	e.drawStatus(screen, s)
}

// drawCell fills the board cell whose top-left corner is p
func (e *EbitenRenderer) drawCell(screen *ebiten.Image, p world.Point, clr color.Color) {
	size := float32(e.cellSize - 2*cellInset)
	if size <= 0 {
		size = float32(e.cellSize)
	}
	vector.DrawFilledRect(screen, float32(p.X+cellInset), float32(p.Y+cellInset), size, size, clr, false)
}

// drawStatus writes the status, game-over and controls lines under the board
func (e *EbitenRenderer) drawStatus(screen *ebiten.Image, s state.Snapshot) {
	y := e.boardHeight
	vector.DrawFilledRect(screen, 0, float32(y), float32(e.boardWidth), statusHeight, colorPanelBackground, false)

	ebitenutil.DebugPrintAt(screen, renderer.StatusLine(s), 4, y+2)
	if msg := renderer.ReasonText(s.Reason); msg != "" {
		ebitenutil.DebugPrintAt(screen, msg, 4, y+18)
	}
	ebitenutil.DebugPrintAt(screen, renderer.ControlsHint(e.Manual), 4, y+34)
}
