package strategy

import (
	"fmt"
	"log/slog"
	"math/rand"

	"robotchallenge/internal/combat"
	"robotchallenge/internal/config"
)

// Palette is handed out to tanks without a configured colour, by roster index.
var Palette = []string{
	"#FFD6FF", // pink
	"#00FFFF", // aqua
	"#CD853F", // peru
	"#FF6347", // tomato
	"#0000FF", // blue
	"#FF0000", // red
	"#00FF00", // green
}

// BuildRoster turns the configured tank list into ready tanks at full energy.
// Tanks without a spawn get distinct random cells; rng also drives any
// random strategies.
func BuildRoster(cfg *config.ArenaConfig, rng *rand.Rand, logger *slog.Logger) ([]*combat.Tank, error) {
	if rng == nil {
		return nil, combat.ErrNoRandomSource
	}
	if logger == nil {
		logger = slog.Default()
	}
	dim := cfg.Dimension()

	var taken []combat.BoardPoint
	missing := 0
	for _, td := range cfg.Tanks {
		if td.Spawn != nil {
			taken = append(taken, td.SpawnPoint())
		} else {
			missing++
		}
	}
	drawn, err := combat.RandomSpawns(missing, dim, rng, taken...)
	if err != nil {
		return nil, fmt.Errorf("roster spawns: %w", err)
	}

	deps := Deps{Rng: rng, MaxVisited: cfg.Planner.MaxVisited, Logger: logger}
	tanks := make([]*combat.Tank, 0, len(cfg.Tanks))
	for i, td := range cfg.Tanks {
		s, err := New(td, deps)
		if err != nil {
			return nil, fmt.Errorf("tank %d: %w", i, err)
		}
		p := td.SpawnPoint()
		if td.Spawn == nil {
			p, drawn = drawn[0], drawn[1:]
		}
		color := td.Color
		if color == "" {
			color = Palette[i%len(Palette)]
		}
		tanks = append(tanks, combat.NewTank(s, color, p, td.ParsedDirection(), cfg.Rules.MaxEnergy))
	}
	return tanks, nil
}

// NewBoard builds the roster and places it on the configured board.
func NewBoard(cfg *config.ArenaConfig, rng *rand.Rand, logger *slog.Logger) (*combat.Board, error) {
	tanks, err := BuildRoster(cfg, rng, logger)
	if err != nil {
		return nil, err
	}
	return combat.NewBoard(cfg.Dimension(), cfg.CombatRules(), tanks)
}
