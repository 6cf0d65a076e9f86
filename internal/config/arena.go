package config

type ArenaConfig struct {
	Seed    int64      `yaml:"seed"`
	Board   BoardDef   `yaml:"board"`
	Rules   RulesDef   `yaml:"rules"`
	Planner PlannerDef `yaml:"planner"`
	Tanks   []TankDef  `yaml:"tanks"`
}

type BoardDef struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

type RulesDef struct {
	MaxRounds int `yaml:"max_rounds"`
	MaxEnergy int `yaml:"max_energy"`
	FireRange int `yaml:"fire_range"`
}

type PlannerDef struct {
	// MaxVisited bounds one search; 0 means width*height*4.
	MaxVisited int `yaml:"max_visited"`
}

type TankDef struct {
	Kind      string   `yaml:"kind"` // dummy | dummy2 | cycle | random | slacker | spinner | firefire
	Name      string   `yaml:"name"`
	Author    string   `yaml:"author"`
	Color     string   `yaml:"color"`
	Spawn     *[2]int  `yaml:"spawn"` // x, y; drawn at random when absent
	Direction string   `yaml:"direction"`
	Moves     []string `yaml:"moves"` // cycle only
}

// Default is the arena the simulator plays without a config file: a 20x20
// board and the classic seven-tank roster.
func Default() *ArenaConfig {
	cfg := &ArenaConfig{
		Tanks: []TankDef{
			{Kind: "random"},
			{Kind: "random"},
			{Kind: "firefire"},
			{Kind: "spinner"},
			{Kind: "slacker"},
			{Kind: "random"},
			{Kind: "dummy"},
		},
	}
	cfg.applyDefaults()
	return cfg
}
