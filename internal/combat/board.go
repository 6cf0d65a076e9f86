package combat

import (
	"fmt"
	"math/rand"
)

// Board owns the roster and the transient laser/hit markers. Tanks are
// addressed by their roster index; occupied maps every cell holding a tank,
// dead or alive, to that index.
type Board struct {
	dim      Dimension
	rules    Rules
	tanks    []*Tank
	occupied map[BoardPoint]int

	Laser Laser
	Hit   Hit
}

func NewBoard(dim Dimension, rules Rules, tanks []*Tank) (*Board, error) {
	if dim.Width <= 0 || dim.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, dim.Width, dim.Height)
	}
	if len(tanks) > dim.Cells() {
		return nil, fmt.Errorf("%w: %d tanks on %d cells", ErrTooManyTanks, len(tanks), dim.Cells())
	}
	b := &Board{
		dim:      dim,
		rules:    rules,
		tanks:    make([]*Tank, 0, len(tanks)),
		occupied: make(map[BoardPoint]int, len(tanks)),
	}
	for i, t := range tanks {
		if t == nil || t.Strategy == nil {
			return nil, fmt.Errorf("tank %d: %w", i, ErrNilStrategy)
		}
		if !dim.Contains(t.Point) {
			return nil, fmt.Errorf("tank %d at %s: %w", i, t.Point, ErrSpawnOutOfBounds)
		}
		if other, ok := b.occupied[t.Point]; ok {
			return nil, fmt.Errorf("tank %d at %s (tank %d): %w", i, t.Point, other, ErrSpawnOccupied)
		}
		if t.Energy < 0 {
			t.Energy = 0
		}
		if t.Energy > rules.MaxEnergy {
			t.Energy = rules.MaxEnergy
		}
		t.ID = i
		b.tanks = append(b.tanks, t)
		b.occupied[t.Point] = i
	}
	return b, nil
}

func (b *Board) Dimension() Dimension { return b.dim }
func (b *Board) Rules() Rules         { return b.rules }
func (b *Board) Len() int             { return len(b.tanks) }

func (b *Board) Contains(p BoardPoint) bool { return b.dim.Contains(p) }

func (b *Board) Tank(id int) (*Tank, error) {
	if id < 0 || id >= len(b.tanks) {
		return nil, fmt.Errorf("%w: id %d (roster of %d)", ErrUnknownTank, id, len(b.tanks))
	}
	return b.tanks[id], nil
}

func (b *Board) TankAt(p BoardPoint) (*Tank, bool) {
	id, ok := b.occupied[p]
	if !ok {
		return nil, false
	}
	return b.tanks[id], true
}

// Tanks returns the roster in id order. The slice is a copy, the tanks are not.
func (b *Board) Tanks() []*Tank {
	out := make([]*Tank, len(b.tanks))
	copy(out, b.tanks)
	return out
}

func (b *Board) Alive() int {
	n := 0
	for _, t := range b.tanks {
		if t.IsAlive() {
			n++
		}
	}
	return n
}

// Input builds the observation for tank id: its own status plus every other
// tank in roster order.
func (b *Board) Input(id int) (NextMoveInput, error) {
	self, err := b.Tank(id)
	if err != nil {
		return NextMoveInput{}, err
	}
	in := NextMoveInput{
		GameBoard:      b.dim,
		OwnStatus:      self.Status(),
		OpponentStatus: make([]TankStatus, 0, len(b.tanks)-1),
		FireRange:      b.rules.FireRange,
	}
	for _, t := range b.tanks {
		if t.ID == id {
			continue
		}
		in.OpponentStatus = append(in.OpponentStatus, t.Status())
	}
	return in, nil
}

func (b *Board) ResetLaser() { b.Laser = Laser{} }
func (b *Board) ResetHit()   { b.Hit = Hit{} }

// RandomSpawns draws n distinct cells uniformly from dim, avoiding taken.
func RandomSpawns(n int, dim Dimension, rng *rand.Rand, taken ...BoardPoint) ([]BoardPoint, error) {
	if dim.Width <= 0 || dim.Height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimension, dim.Width, dim.Height)
	}
	seen := make(map[BoardPoint]struct{}, n+len(taken))
	for _, p := range taken {
		seen[p] = struct{}{}
	}
	if n+len(seen) > dim.Cells() {
		return nil, fmt.Errorf("%w: %d tanks on %d cells", ErrTooManyTanks, n+len(seen), dim.Cells())
	}
	points := make([]BoardPoint, 0, n)
	for len(points) < n {
		p := BoardPoint{X: rng.Intn(dim.Width), Y: rng.Intn(dim.Height)}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		points = append(points, p)
	}
	return points, nil
}
