package combat

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/google/uuid"
)

type Env struct {
	Seed   int64
	Rng    *rand.Rand
	Logger *slog.Logger
}

type MatchResult struct {
	MatchID   string     `json:"match_id"`
	Seed      int64      `json:"seed"`
	Board     Dimension  `json:"board"`
	Rules     Rules      `json:"rules"`
	Outcome   Outcome    `json:"outcome"`
	Rounds    int        `json:"rounds"`
	Steps     int        `json:"steps"`
	Standings []TankView `json:"standings"`
	Events    []Event    `json:"events,omitempty"`
}

// RunMatch plays board to completion. With record set, the full event log
// is attached to the result.
func RunMatch(ctx context.Context, env *Env, board *Board, record bool, opts ...Option) (MatchResult, error) {
	if env == nil || env.Rng == nil {
		return MatchResult{}, ErrNoRandomSource
	}
	logger := env.Logger
	if logger == nil {
		logger = slog.Default()
	}
	matchID := uuid.NewString()
	logger = logger.With("match", matchID)

	var events []Event
	emit := func(ev Event) {
		if record {
			events = append(events, ev)
		}
	}

	for _, t := range board.tanks {
		v := t.View()
		emit(Event{T: 0, Type: "Spawn", Payload: map[string]any{
			"id": v.ID, "name": v.Name, "author": v.Author, "color": v.Color,
			"x": v.Point.X, "y": v.Point.Y, "direction": v.Direction.String(), "energy": v.Energy,
		}})
	}
	logger.InfoContext(ctx, "match started",
		"seed", env.Seed,
		"tanks", board.Len(),
		"width", board.dim.Width,
		"height", board.dim.Height,
	)

	all := append([]Option{WithMatchID(matchID), WithLogger(logger), WithEmitter(emit)}, opts...)
	sched, err := NewScheduler(board, env.Rng, all...)
	if err != nil {
		return MatchResult{}, err
	}
	outcome, err := sched.Run(ctx)
	if err != nil {
		return MatchResult{}, fmt.Errorf("match %s: %w", matchID, err)
	}

	res := MatchResult{
		MatchID:   matchID,
		Seed:      env.Seed,
		Board:     board.dim,
		Rules:     board.rules,
		Outcome:   outcome,
		Rounds:    sched.Round(),
		Steps:     sched.Steps(),
		Standings: board.Views(),
	}
	if record {
		res.Events = events
	}
	attrs := []any{"reason", outcome.Reason, "rounds", res.Rounds, "steps", res.Steps}
	if outcome.Winner != nil {
		attrs = append(attrs, "winner", outcome.Winner.Name, "author", outcome.Winner.Author)
	}
	logger.InfoContext(ctx, "match finished", attrs...)
	return res, nil
}

func MarshalPretty(v any) []byte {
	b, _ := json.MarshalIndent(v, "", "  ")
	return b
}
