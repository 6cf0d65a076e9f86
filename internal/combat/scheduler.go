package combat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
)

var ErrNoRandomSource = errors.New("scheduler needs a random source")

type Phase uint8

const (
	PhaseNewRound Phase = iota
	PhaseMoving
	PhaseLaser
	PhaseHit
	PhaseEndGame
	PhaseHalted
)

func (p Phase) String() string {
	switch p {
	case PhaseNewRound:
		return "new_round"
	case PhaseMoving:
		return "moving"
	case PhaseLaser:
		return "laser"
	case PhaseHit:
		return "hit"
	case PhaseEndGame:
		return "end_game"
	case PhaseHalted:
		return "halted"
	}
	return fmt.Sprintf("phase(%d)", uint8(p))
}

func (p Phase) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Phase) UnmarshalText(b []byte) error {
	for v := PhaseNewRound; v <= PhaseHalted; v++ {
		if v.String() == string(b) {
			*p = v
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", b)
}

func (p Phase) Terminal() bool { return p == PhaseEndGame || p == PhaseHalted }

const (
	ReasonLastStanding = "last_standing"
	ReasonNoSurvivors  = "no_survivors"
	ReasonRoundLimit   = "round_limit"
)

type Outcome struct {
	Reason string    `json:"reason"`
	Round  int       `json:"round"`
	Winner *TankView `json:"winner,omitempty"`
}

// Scheduler drives a match as an explicit state machine, one transition per
// Step. It is not safe for concurrent use.
type Scheduler struct {
	board   *Board
	rng     *rand.Rand
	matchID string

	phase   Phase
	round   int
	step    int
	queue   []int
	last    *ActionResult
	outcome *Outcome

	logger    *slog.Logger
	emit      func(Event)
	observers []func(Snapshot)
}

type Option func(*Scheduler)

func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithEmitter(emit func(Event)) Option {
	return func(s *Scheduler) { s.emit = emit }
}

// WithObserver registers fn to receive a snapshot after every step.
func WithObserver(fn func(Snapshot)) Option {
	return func(s *Scheduler) {
		if fn != nil {
			s.observers = append(s.observers, fn)
		}
	}
}

func WithMatchID(id string) Option {
	return func(s *Scheduler) { s.matchID = id }
}

func NewScheduler(board *Board, rng *rand.Rand, opts ...Option) (*Scheduler, error) {
	if board == nil {
		return nil, errors.New("scheduler needs a board")
	}
	if rng == nil {
		return nil, ErrNoRandomSource
	}
	s := &Scheduler{
		board:  board,
		rng:    rng,
		phase:  PhaseNewRound,
		logger: slog.Default(),
		emit:   func(Event) {},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.emit == nil {
		s.emit = func(Event) {}
	}
	return s, nil
}

func (s *Scheduler) Phase() Phase { return s.phase }
func (s *Scheduler) Round() int   { return s.round }
func (s *Scheduler) Steps() int   { return s.step }

// Outcome reports the terminal result; ok is false while the match runs.
func (s *Scheduler) Outcome() (Outcome, bool) {
	if s.outcome == nil {
		return Outcome{}, false
	}
	return *s.outcome, true
}

// Pending returns the ids still waiting to act this round, next mover last.
func (s *Scheduler) Pending() []int {
	out := make([]int, len(s.queue))
	copy(out, s.queue)
	return out
}

func (s *Scheduler) Snapshot() Snapshot {
	snap := Snapshot{
		MatchID: s.matchID,
		Step:    s.step,
		Round:   s.round,
		Phase:   s.phase,
		Board:   s.board.Dimension(),
		Tanks:   s.board.Views(),
		Laser:   s.board.Laser,
		Hit:     s.board.Hit,
		Pending: s.Pending(),
	}
	if s.last != nil {
		last := *s.last
		if last.Shot != nil {
			shot := *last.Shot
			last.Shot = &shot
		}
		snap.Last = &last
	}
	if s.outcome != nil {
		out := *s.outcome
		snap.Outcome = &out
	}
	return snap
}

// Step performs one state transition and reports whether the match is over.
func (s *Scheduler) Step(ctx context.Context) (bool, error) {
	if s.phase.Terminal() {
		return true, nil
	}
	var err error
	switch s.phase {
	case PhaseNewRound:
		s.newRound(ctx)
	case PhaseMoving:
		err = s.moving(ctx)
	case PhaseLaser:
		s.resolveLaser()
	case PhaseHit:
		s.resolveHit()
	}
	if err != nil {
		return false, err
	}
	s.step++
	if len(s.observers) > 0 {
		snap := s.Snapshot()
		for _, fn := range s.observers {
			fn(snap)
		}
	}
	return s.phase.Terminal(), nil
}

// Run steps until the match ends or ctx is cancelled.
func (s *Scheduler) Run(ctx context.Context) (Outcome, error) {
	for {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		done, err := s.Step(ctx)
		if err != nil {
			return Outcome{}, err
		}
		if done {
			return *s.outcome, nil
		}
	}
}

func (s *Scheduler) newRound(ctx context.Context) {
	s.round++
	if s.round >= s.board.rules.MaxRounds {
		s.phase = PhaseHalted
		s.queue = s.queue[:0]
		s.outcome = &Outcome{Reason: ReasonRoundLimit, Round: s.round}
		s.logger.InfoContext(ctx, "round limit reached", "round", s.round)
		s.emit(Event{T: s.step, Round: s.round, Type: "Halt", Payload: map[string]any{
			"reason": ReasonRoundLimit,
		}})
		return
	}

	perm := s.rng.Perm(s.board.Len())
	s.queue = s.queue[:0]
	for _, id := range perm {
		if s.board.tanks[id].IsAlive() {
			s.queue = append(s.queue, id)
		}
	}
	s.logger.DebugContext(ctx, "new round", "round", s.round, "alive", len(s.queue))
	s.emit(Event{T: s.step, Round: s.round, Type: "NewRound", Payload: map[string]any{
		"order": s.Pending(),
	}})

	if len(s.queue) < 2 {
		s.endGame(ctx)
		return
	}
	s.phase = PhaseMoving
}

func (s *Scheduler) moving(ctx context.Context) error {
	if len(s.queue) == 0 {
		s.phase = PhaseNewRound
		return nil
	}
	id := s.queue[len(s.queue)-1]
	s.queue = s.queue[:len(s.queue)-1]

	t, err := s.board.Tank(id)
	if err != nil {
		return err
	}
	move := Wait
	if t.IsAlive() {
		in, err := s.board.Input(id)
		if err != nil {
			return err
		}
		move = t.Strategy.NextMove(in)
	}
	res, err := s.board.Apply(id, move)
	if err != nil {
		return err
	}
	s.last = &res

	payload := map[string]any{"tank": id, "move": res.Move.String(), "moved": res.Moved}
	if res.Move == Forward {
		payload["to"] = []int{res.To.X, res.To.Y}
	}
	if res.Shot != nil {
		payload["length"] = res.Shot.Length
		payload["hit"] = res.Shot.Hit
		if res.Shot.Hit {
			payload["target"] = res.Shot.Target
			payload["scored"] = res.Shot.Scored
			payload["frag"] = res.Shot.Frag
		}
	}
	s.emit(Event{T: s.step, Round: s.round, Type: "Move", Payload: payload})
	s.logger.DebugContext(ctx, "tank moved",
		"round", s.round,
		"tank", id,
		"move", res.Move,
		"point", res.To,
		"direction", t.Direction,
	)

	if res.Move == Fire {
		if res.Shot != nil && res.Shot.Frag {
			s.logger.InfoContext(ctx, "tank fragged", "round", s.round, "shooter", id, "target", res.Shot.Target)
		}
		s.phase = PhaseLaser
	}
	return nil
}

func (s *Scheduler) resolveLaser() {
	hit := s.board.Laser.Hit
	s.board.ResetLaser()
	if hit {
		s.board.Hit.Visible = true
		s.phase = PhaseHit
		return
	}
	s.phase = PhaseMoving
}

func (s *Scheduler) resolveHit() {
	s.board.ResetHit()
	s.phase = PhaseMoving
}

func (s *Scheduler) endGame(ctx context.Context) {
	s.phase = PhaseEndGame
	out := &Outcome{Reason: ReasonNoSurvivors, Round: s.round}
	if n := len(s.queue); n > 0 {
		id := s.queue[n-1]
		s.queue = s.queue[:n-1]
		v := s.board.tanks[id].View()
		out.Reason = ReasonLastStanding
		out.Winner = &v
		s.logger.InfoContext(ctx, "winner decided", "round", s.round, "name", v.Name, "author", v.Author)
	} else {
		s.logger.InfoContext(ctx, "no tank left standing", "round", s.round)
	}
	s.outcome = out
	payload := map[string]any{"reason": out.Reason}
	if out.Winner != nil {
		payload["winner"] = out.Winner.ID
		payload["name"] = out.Winner.Name
		payload["author"] = out.Winner.Author
	}
	s.emit(Event{T: s.step, Round: s.round, Type: "EndGame", Payload: payload})
}
