// Package config holds the start-of-run settings for a snake game: grid
// geometry, obstacles, tick rates and the random seed. Values are fixed for
// the lifetime of a game.
package config

import (
	"fmt"
	"time"
)

// Defaults matching the classic 32x32 board
const (
	DefaultWidth          = 640
	DefaultHeight         = 640
	DefaultCellSize       = 20
	DefaultObstacleCount  = 15
	DefaultInitialSpeed   = 10
	DefaultSpeedThreshold = 20
	DefaultSpeedUp        = 3
	DefaultAutoSpeed      = 40

	// Validation limits
	MinCells    = 2
	MaxCells    = 256
	MaxTickRate = 1000
)

// Config describes one run of the game
type Config struct {
	Width            int   `json:"width"`
	Height           int   `json:"height"`
	CellSize         int   `json:"cell_size"`
	ObstaclesEnabled bool  `json:"obstacles_enabled"`
	ObstacleCount    int   `json:"obstacle_count"`
	InitialSpeed     int   `json:"initial_speed"`   // manual ticks per second at score 0
	SpeedThreshold   int   `json:"speed_threshold"` // score step between speed-ups
	SpeedUp          int   `json:"speed_up"`        // ticks per second added per step
	AutoSpeed        int   `json:"auto_speed"`      // fixed rate for search modes, cap for manual
	Seed             int64 `json:"seed"`
}

// Default returns the standard configuration
func Default() Config {
	return Config{
		Width:            DefaultWidth,
		Height:           DefaultHeight,
		CellSize:         DefaultCellSize,
		ObstaclesEnabled: false,
		ObstacleCount:    DefaultObstacleCount,
		InitialSpeed:     DefaultInitialSpeed,
		SpeedThreshold:   DefaultSpeedThreshold,
		SpeedUp:          DefaultSpeedUp,
		AutoSpeed:        DefaultAutoSpeed,
		Seed:             time.Now().UnixNano(),
	}
}

// Cols returns the number of grid columns
func (c Config) Cols() int {
	return c.Width / c.CellSize
}

// Rows returns the number of grid rows
func (c Config) Rows() int {
	return c.Height / c.CellSize
}

// Validate checks a configuration for correctness and playability
func Validate(c Config) error {
	if c.CellSize <= 0 {
		return fmt.Errorf("config validation: cell_size must be positive, got %d", c.CellSize)
	}
	if c.Width <= 0 || c.Width%c.CellSize != 0 {
		return fmt.Errorf("config validation: width must be a positive multiple of cell_size (%d), got %d", c.CellSize, c.Width)
	}
	if c.Height <= 0 || c.Height%c.CellSize != 0 {
		return fmt.Errorf("config validation: height must be a positive multiple of cell_size (%d), got %d", c.CellSize, c.Height)
	}

	cols, rows := c.Cols(), c.Rows()
	if cols < MinCells || cols > MaxCells || rows < MinCells || rows > MaxCells {
		return fmt.Errorf("config validation: grid must be between %d and %d cells per side, got %dx%d", MinCells, MaxCells, cols, rows)
	}

	if c.ObstacleCount < 0 {
		return fmt.Errorf("config validation: obstacle_count must not be negative, got %d", c.ObstacleCount)
	}
	// The snake starts on one cell and food needs another
	if c.ObstaclesEnabled && c.ObstacleCount > cols*rows-2 {
		return fmt.Errorf("config validation: obstacle_count %d leaves no room on a %dx%d grid", c.ObstacleCount, cols, rows)
	}

	if c.AutoSpeed <= 0 || c.AutoSpeed > MaxTickRate {
		return fmt.Errorf("config validation: auto_speed must be between 1 and %d, got %d", MaxTickRate, c.AutoSpeed)
	}
	if c.InitialSpeed <= 0 || c.InitialSpeed > c.AutoSpeed {
		return fmt.Errorf("config validation: initial_speed must be between 1 and auto_speed (%d), got %d", c.AutoSpeed, c.InitialSpeed)
	}
	if c.SpeedThreshold <= 0 {
		return fmt.Errorf("config validation: speed_threshold must be positive, got %d", c.SpeedThreshold)
	}
	if c.SpeedUp < 0 {
		return fmt.Errorf("config validation: speed_up must not be negative, got %d", c.SpeedUp)
	}

	return nil
}
