package combat

import (
	"errors"
	"testing"

	"pgregory.net/rapid"
)

func TestDirectionOffsets(t *testing.T) {
	tests := []struct {
		dir    Direction
		dx, dy int
	}{
		{North, 0, -1},
		{East, 1, 0},
		{South, 0, 1},
		{West, -1, 0},
	}
	for _, tt := range tests {
		t.Run(tt.dir.String(), func(t *testing.T) {
			dx, dy := tt.dir.Offset()
			if dx != tt.dx || dy != tt.dy {
				t.Fatalf("Offset() = (%d,%d), want (%d,%d)", dx, dy, tt.dx, tt.dy)
			}
		})
	}
}

func TestDirectionRotations(t *testing.T) {
	if got := North.Clockwise(); got != East {
		t.Errorf("North.Clockwise() = %v, want east", got)
	}
	if got := West.Clockwise(); got != North {
		t.Errorf("West.Clockwise() = %v, want north", got)
	}
	if got := North.CounterClockwise(); got != West {
		t.Errorf("North.CounterClockwise() = %v, want west", got)
	}
	if got := South.Opposite(); got != North {
		t.Errorf("South.Opposite() = %v, want north", got)
	}
}

func TestDirectionRotationCycles(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := rapid.SampledFrom(Directions[:]).Draw(t, "dir")
		if d.Clockwise().CounterClockwise() != d {
			t.Fatalf("clockwise then counter-clockwise moved %v", d)
		}
		cw := d
		for range 4 {
			cw = cw.Clockwise()
		}
		if cw != d {
			t.Fatalf("four clockwise turns from %v ended at %v", d, cw)
		}
		dx, dy := d.Offset()
		ox, oy := d.Opposite().Offset()
		if dx+ox != 0 || dy+oy != 0 {
			t.Fatalf("opposite of %v does not cancel its offset", d)
		}
	})
}

func TestParseDirection(t *testing.T) {
	for _, d := range Directions {
		got, err := ParseDirection(d.String())
		if err != nil || got != d {
			t.Errorf("ParseDirection(%q) = %v, %v", d.String(), got, err)
		}
	}
	if _, err := ParseDirection("up-left"); !errors.Is(err, ErrInvalidDirection) {
		t.Errorf("expected ErrInvalidDirection, got %v", err)
	}
}

func TestParseMove(t *testing.T) {
	for _, m := range Moves {
		got, err := ParseMove(m.String())
		if err != nil || got != m {
			t.Errorf("ParseMove(%q) = %v, %v", m.String(), got, err)
		}
	}
	if _, err := ParseMove("jump"); !errors.Is(err, ErrInvalidMove) {
		t.Errorf("expected ErrInvalidMove, got %v", err)
	}
}

func TestBoardPointWithOffset(t *testing.T) {
	p := BoardPoint{X: 5, Y: 10}
	if got := p.WithOffset(East, 3); got != (BoardPoint{X: 8, Y: 10}) {
		t.Errorf("WithOffset(East, 3) = %v", got)
	}
	if got := p.WithOffset(North, 2); got != (BoardPoint{X: 5, Y: 8}) {
		t.Errorf("WithOffset(North, 2) = %v", got)
	}
}
