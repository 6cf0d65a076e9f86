package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"robotchallenge/internal/combat"
)

var ErrInvalidConfig = errors.New("invalid arena config")

func loadYAML(path string, out any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(b, out)
}

// Load reads an arena file, fills zero values with the defaults and validates
// the result. An empty path yields Default().
func Load(path string) (*ArenaConfig, error) {
	if path == "" {
		return Default(), nil
	}
	var cfg ArenaConfig
	if err := loadYAML(path, &cfg); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	if len(cfg.Tanks) == 0 {
		cfg.Tanks = Default().Tanks
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return &cfg, nil
}

func (c *ArenaConfig) applyDefaults() {
	if c.Board.Width == 0 {
		c.Board.Width = 20
	}
	if c.Board.Height == 0 {
		c.Board.Height = 20
	}
	def := combat.DefaultRules()
	if c.Rules.MaxRounds == 0 {
		c.Rules.MaxRounds = def.MaxRounds
	}
	if c.Rules.MaxEnergy == 0 {
		c.Rules.MaxEnergy = def.MaxEnergy
	}
	if c.Rules.FireRange == 0 {
		c.Rules.FireRange = def.FireRange
	}
	if c.Planner.MaxVisited == 0 {
		c.Planner.MaxVisited = c.Board.Width * c.Board.Height * 4
	}
	for i := range c.Tanks {
		if c.Tanks[i].Direction == "" {
			c.Tanks[i].Direction = combat.North.String()
		}
	}
}

func (c *ArenaConfig) Validate() error {
	if c.Board.Width <= 0 || c.Board.Height <= 0 {
		return fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, c.Board.Width, c.Board.Height)
	}
	if c.Rules.MaxRounds <= 0 || c.Rules.MaxEnergy <= 0 || c.Rules.FireRange <= 0 {
		return fmt.Errorf("%w: rules must be positive, got %+v", ErrInvalidConfig, c.Rules)
	}
	if c.Planner.MaxVisited < 0 {
		return fmt.Errorf("%w: planner max_visited %d", ErrInvalidConfig, c.Planner.MaxVisited)
	}
	dim := c.Dimension()
	if len(c.Tanks) > dim.Cells() {
		return fmt.Errorf("%w: %d tanks on %d cells", ErrInvalidConfig, len(c.Tanks), dim.Cells())
	}
	spawns := make(map[combat.BoardPoint]int, len(c.Tanks))
	for i, td := range c.Tanks {
		if td.Kind == "" {
			return fmt.Errorf("%w: tank %d has no kind", ErrInvalidConfig, i)
		}
		if _, err := combat.ParseDirection(td.Direction); err != nil {
			return fmt.Errorf("%w: tank %d: %w", ErrInvalidConfig, i, err)
		}
		if _, err := td.ParsedMoves(); err != nil {
			return fmt.Errorf("%w: tank %d: %w", ErrInvalidConfig, i, err)
		}
		if td.Spawn == nil {
			continue
		}
		p := td.SpawnPoint()
		if !dim.Contains(p) {
			return fmt.Errorf("%w: tank %d spawn %s outside %dx%d", ErrInvalidConfig, i, p, dim.Width, dim.Height)
		}
		if other, ok := spawns[p]; ok {
			return fmt.Errorf("%w: tanks %d and %d share spawn %s", ErrInvalidConfig, other, i, p)
		}
		spawns[p] = i
	}
	return nil
}

func (c *ArenaConfig) Dimension() combat.Dimension {
	return combat.Dimension{Width: c.Board.Width, Height: c.Board.Height}
}

func (c *ArenaConfig) CombatRules() combat.Rules {
	return combat.Rules{
		MaxRounds: c.Rules.MaxRounds,
		MaxEnergy: c.Rules.MaxEnergy,
		FireRange: c.Rules.FireRange,
	}
}

func (td TankDef) SpawnPoint() combat.BoardPoint {
	if td.Spawn == nil {
		return combat.BoardPoint{}
	}
	return combat.BoardPoint{X: td.Spawn[0], Y: td.Spawn[1]}
}

func (td TankDef) ParsedDirection() combat.Direction {
	d, err := combat.ParseDirection(td.Direction)
	if err != nil {
		return combat.North
	}
	return d
}

func (td TankDef) ParsedMoves() ([]combat.Move, error) {
	out := make([]combat.Move, 0, len(td.Moves))
	for _, s := range td.Moves {
		m, err := combat.ParseMove(s)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, nil
}
