package strategy

import (
	"math/rand"

	"robotchallenge/internal/combat"
)

// Cycle replays a fixed list of moves, wrapping around at the end.
type Cycle struct {
	name   string
	author string
	moves  []combat.Move
	next   int
}

// NewCycle copies moves; an empty list makes a tank that only waits.
func NewCycle(name, author string, moves ...combat.Move) *Cycle {
	return &Cycle{name: name, author: author, moves: append([]combat.Move(nil), moves...)}
}

func Dummy() *Cycle {
	return NewCycle("Dummy", "JMH", combat.Fire, combat.TurnLeft, combat.Forward)
}

func Dummy2() *Cycle {
	return NewCycle("Dummy2", "JMH", combat.Fire, combat.TurnRight, combat.Forward)
}

func (c *Cycle) Name() string   { return c.name }
func (c *Cycle) Author() string { return c.author }

func (c *Cycle) NextMove(combat.NextMoveInput) combat.Move {
	if len(c.moves) == 0 {
		return combat.Wait
	}
	m := c.moves[c.next]
	c.next = (c.next + 1) % len(c.moves)
	return m
}

type Slacker struct {
	name   string
	author string
}

func NewSlacker() *Slacker { return &Slacker{name: "Eric Idle", author: "Martin"} }

func (s *Slacker) Name() string                              { return s.name }
func (s *Slacker) Author() string                            { return s.author }
func (s *Slacker) NextMove(combat.NextMoveInput) combat.Move { return combat.Wait }

// Spinner turns right and fires on alternate calls, starting with the turn.
type Spinner struct {
	name   string
	author string
	shoot  bool
}

func NewSpinner() *Spinner { return &Spinner{name: "Spinner", author: "Martin", shoot: true} }

func (s *Spinner) Name() string   { return s.name }
func (s *Spinner) Author() string { return s.author }

func (s *Spinner) NextMove(combat.NextMoveInput) combat.Move {
	s.shoot = !s.shoot
	if s.shoot {
		return combat.Fire
	}
	return combat.TurnRight
}

// Random picks uniformly among all five moves.
type Random struct {
	name   string
	author string
	rng    *rand.Rand
}

func NewRandom(rng *rand.Rand) *Random {
	return &Random{name: "Random", author: "Martin", rng: rng}
}

func (r *Random) Name() string   { return r.name }
func (r *Random) Author() string { return r.author }

func (r *Random) NextMove(combat.NextMoveInput) combat.Move {
	return combat.Moves[r.rng.Intn(len(combat.Moves))]
}
