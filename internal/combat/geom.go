package combat

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalidDirection = errors.New("invalid direction")

type Dimension struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (d Dimension) Contains(p BoardPoint) bool {
	return p.X >= 0 && p.X < d.Width && p.Y >= 0 && p.Y < d.Height
}

func (d Dimension) Cells() int { return d.Width * d.Height }

type BoardPoint struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p BoardPoint) WithOffset(dir Direction, n int) BoardPoint {
	dx, dy := dir.Offset()
	return BoardPoint{X: p.X + dx*n, Y: p.Y + dy*n}
}

func (p BoardPoint) String() string { return fmt.Sprintf("(%d,%d)", p.X, p.Y) }

type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// Directions lists every facing in clockwise order starting at North.
var Directions = [4]Direction{North, East, South, West}

func (d Direction) Clockwise() Direction        { return (d + 1) % 4 }
func (d Direction) CounterClockwise() Direction { return (d + 3) % 4 }
func (d Direction) Opposite() Direction         { return (d + 2) % 4 }

func (d Direction) Offset() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	}
	return 0, 0
}

// Degrees is the clockwise rotation from North used by renderers.
func (d Direction) Degrees() float64 { return float64(d%4) * 90 }

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n", "up":
		return North, nil
	case "east", "e", "right":
		return East, nil
	case "south", "s", "down":
		return South, nil
	case "west", "w", "left":
		return West, nil
	}
	return North, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}

func (d Direction) MarshalText() ([]byte, error) { return []byte(d.String()), nil }

func (d *Direction) UnmarshalText(b []byte) error {
	v, err := ParseDirection(string(b))
	if err != nil {
		return err
	}
	*d = v
	return nil
}
