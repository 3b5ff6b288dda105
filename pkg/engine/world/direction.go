package world

import (
	"fmt"
	"strings"
)

// Direction represents one of the four axis-aligned moves on the grid
type Direction int

// Direction constants
const (
	None Direction = iota
	Up
	Down
	Left
	Right
)

// AllDirections returns all valid directions in search order.
// Tie-breaking in every strategy depends on this order, so it must stay fixed.
func AllDirections() []Direction {
	return []Direction{Left, Right, Up, Down}
}

// String returns the string representation of a direction
func (d Direction) String() string {
	switch d {
	case Up:
		return "Up"
	case Down:
		return "Down"
	case Left:
		return "Left"
	case Right:
		return "Right"
	default:
		return "None"
	}
}

// IsValid returns true if the direction is one of the four moves
func (d Direction) IsValid() bool {
	return d >= Up && d <= Right
}

// Opposite returns the opposite direction
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	case Right:
		return Left
	default:
		return d
	}
}

// Delta returns the unit column and row offsets for this direction.
// Screen coordinates: y grows downwards.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	default:
		return 0, 0
	}
}

// DirectionBetween returns the direction of the single axis-aligned step from
// origin to p. It returns None when the points are identical or not aligned.
func DirectionBetween(origin, p Point) Direction {
	switch {
	case p.X == origin.X && p.Y < origin.Y:
		return Up
	case p.X == origin.X && p.Y > origin.Y:
		return Down
	case p.Y == origin.Y && p.X < origin.X:
		return Left
	case p.Y == origin.Y && p.X > origin.X:
		return Right
	default:
		return None
	}
}

// MarshalText encodes the direction by name
func (d Direction) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(d.String())), nil
}

// UnmarshalText decodes a direction name, ignoring case
func (d *Direction) UnmarshalText(text []byte) error {
	for _, candidate := range append(AllDirections(), None) {
		if strings.EqualFold(candidate.String(), string(text)) {
			*d = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown direction %q", text)
}
