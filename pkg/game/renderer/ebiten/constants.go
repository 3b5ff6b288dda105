// Package ebiten provides an Ebiten-based 2D graphical renderer for the snake board.
package ebiten

import "image/color"

// Color palette for the board
var (
	colorBackground      = color.RGBA{26, 26, 46, 255}    // Dark blue-gray
	colorMapBackground   = color.RGBA{15, 15, 26, 255}    // Darker for the board
	colorHead            = color.RGBA{0, 255, 0, 255}     // Bright green
	colorBody            = color.RGBA{0, 170, 60, 255}    // Darker green
	colorFood            = color.RGBA{255, 80, 80, 255}   // Bright red
	colorObstacle        = color.RGBA{180, 180, 200, 255} // Light gray-blue
	colorPath            = color.RGBA{60, 90, 160, 255}   // Muted blue
	colorPanelBackground = color.RGBA{30, 30, 50, 220}    // Semi-transparent dark
)

const (
	statusHeight = 56 // room below the board for the status lines
	cellInset    = 1  // gap between neighbouring cells
)

const (
	keyRepeatInitialDelay = 500 // Initial delay before first repeat (milliseconds)
	keyRepeatInterval     = 100 // Interval between repeat events (milliseconds)
)
