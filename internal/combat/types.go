package combat

import "errors"

var (
	ErrUnknownTank      = errors.New("unknown tank")
	ErrInvalidDimension = errors.New("board dimensions must be positive")
	ErrSpawnOutOfBounds = errors.New("spawn point outside board")
	ErrSpawnOccupied    = errors.New("spawn point already occupied")
	ErrNilStrategy      = errors.New("tank has no strategy")
	ErrTooManyTanks     = errors.New("more tanks than board cells")
)

type Event struct {
	T       int            `json:"t"`
	Round   int            `json:"round"`
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload,omitempty"`
}

type Rules struct {
	MaxRounds int `json:"max_rounds"`
	MaxEnergy int `json:"max_energy"`
	FireRange int `json:"fire_range"`
}

func DefaultRules() Rules {
	return Rules{MaxRounds: 100, MaxEnergy: 5, FireRange: 5}
}

type Tank struct {
	ID        int
	Strategy  Strategy
	Color     string
	Energy    int
	Hits      int
	Frags     int
	Shots     int
	Point     BoardPoint
	Direction Direction
}

func NewTank(s Strategy, color string, p BoardPoint, dir Direction, energy int) *Tank {
	return &Tank{Strategy: s, Color: color, Energy: energy, Point: p, Direction: dir}
}

func (t *Tank) IsAlive() bool { return t.Energy > 0 }

func (t *Tank) Status() TankStatus {
	return TankStatus{Direction: t.Direction, Location: t.Point, IsAlive: t.IsAlive()}
}

// Laser is the transient trace of the last shot. The zero value is the
// invisible reset state.
type Laser struct {
	Point     BoardPoint `json:"point"`
	Direction Direction  `json:"direction"`
	Length    int        `json:"length"`
	Hit       bool       `json:"hit"`
	Visible   bool       `json:"visible"`
}

type Hit struct {
	Point   BoardPoint `json:"point"`
	Visible bool       `json:"visible"`
}

// Shot is what Combat Resolution reports about one Fire.
type Shot struct {
	Length int  `json:"length"`
	Hit    bool `json:"hit"`
	Target int  `json:"target"` // -1 when nothing was struck
	Scored bool `json:"scored"`
	Frag   bool `json:"frag"`
}

type ActionResult struct {
	Tank  int        `json:"tank"`
	Move  Move       `json:"move"`
	Moved bool       `json:"moved"`
	From  BoardPoint `json:"from"`
	To    BoardPoint `json:"to"`
	Shot  *Shot      `json:"shot,omitempty"`
}
