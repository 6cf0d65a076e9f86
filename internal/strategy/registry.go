package strategy

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sort"
	"strings"

	"robotchallenge/internal/combat"
	"robotchallenge/internal/config"
)

var ErrUnknownStrategy = errors.New("unknown strategy kind")

// Deps carries what a strategy constructor may draw on.
type Deps struct {
	Rng        *rand.Rand
	MaxVisited int
	Logger     *slog.Logger
}

type factory func(td config.TankDef, deps Deps) (combat.Strategy, error)

var kinds = map[string]factory{
	"dummy":  func(config.TankDef, Deps) (combat.Strategy, error) { return Dummy(), nil },
	"dummy2": func(config.TankDef, Deps) (combat.Strategy, error) { return Dummy2(), nil },
	"cycle": func(td config.TankDef, _ Deps) (combat.Strategy, error) {
		moves, err := td.ParsedMoves()
		if err != nil {
			return nil, err
		}
		return NewCycle("Cycle", "Arena", moves...), nil
	},
	"random": func(_ config.TankDef, deps Deps) (combat.Strategy, error) {
		if deps.Rng == nil {
			return nil, combat.ErrNoRandomSource
		}
		return NewRandom(deps.Rng), nil
	},
	"slacker": func(config.TankDef, Deps) (combat.Strategy, error) { return NewSlacker(), nil },
	"spinner": func(config.TankDef, Deps) (combat.Strategy, error) { return NewSpinner(), nil },
	"firefire": func(_ config.TankDef, deps Deps) (combat.Strategy, error) {
		return NewPlanner(WithMaxVisited(deps.MaxVisited), WithPlannerLogger(deps.Logger)), nil
	},
}

// Kinds lists the registered strategy kinds in sorted order.
func Kinds() []string {
	out := make([]string, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// New builds the strategy named by td.Kind and applies the configured
// name/author overrides.
func New(td config.TankDef, deps Deps) (combat.Strategy, error) {
	f, ok := kinds[strings.ToLower(td.Kind)]
	if !ok {
		return nil, fmt.Errorf("%w: %q (have %s)", ErrUnknownStrategy, td.Kind, strings.Join(Kinds(), ", "))
	}
	s, err := f(td, deps)
	if err != nil {
		return nil, fmt.Errorf("strategy %s: %w", td.Kind, err)
	}
	if td.Name == "" && td.Author == "" {
		return s, nil
	}
	return rename(s, td.Name, td.Author), nil
}

func rename(s combat.Strategy, name, author string) combat.Strategy {
	switch v := s.(type) {
	case *Cycle:
		v.name, v.author = pick(name, v.name), pick(author, v.author)
	case *Slacker:
		v.name, v.author = pick(name, v.name), pick(author, v.author)
	case *Spinner:
		v.name, v.author = pick(name, v.name), pick(author, v.author)
	case *Random:
		v.name, v.author = pick(name, v.name), pick(author, v.author)
	case *Planner:
		WithIdentity(name, author)(v)
	}
	return s
}

func pick(override, def string) string {
	if override != "" {
		return override
	}
	return def
}
