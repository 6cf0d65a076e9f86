package combat

import (
	"errors"
	"fmt"
	"strings"
)

//go:generate go tool mockgen -destination=./mocks/strategy_mock.go -package=mocks . Strategy

// Strategy decides one move per call for the tank it drives.
// Implementations may keep private state between calls but must return
// synchronously and must not hold on to the input.
type Strategy interface {
	Name() string
	Author() string
	NextMove(in NextMoveInput) Move
}

var ErrInvalidMove = errors.New("invalid move")

type Move uint8

const (
	Fire Move = iota
	TurnLeft
	Forward
	TurnRight
	Wait
)

// Moves lists every move in declaration order.
var Moves = [5]Move{Fire, TurnLeft, Forward, TurnRight, Wait}

func (m Move) String() string {
	switch m {
	case Fire:
		return "fire"
	case TurnLeft:
		return "turn_left"
	case Forward:
		return "forward"
	case TurnRight:
		return "turn_right"
	case Wait:
		return "wait"
	}
	return fmt.Sprintf("move(%d)", uint8(m))
}

func ParseMove(s string) (Move, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "fire":
		return Fire, nil
	case "turn_left", "left":
		return TurnLeft, nil
	case "forward":
		return Forward, nil
	case "turn_right", "right":
		return TurnRight, nil
	case "wait":
		return Wait, nil
	}
	return Wait, fmt.Errorf("%w: %q", ErrInvalidMove, s)
}

func (m Move) MarshalText() ([]byte, error) { return []byte(m.String()), nil }

func (m *Move) UnmarshalText(b []byte) error {
	v, err := ParseMove(string(b))
	if err != nil {
		return err
	}
	*m = v
	return nil
}

type TankStatus struct {
	Direction Direction  `json:"direction"`
	Location  BoardPoint `json:"location"`
	IsAlive   bool       `json:"is_alive"`
}

// NextMoveInput is the observation handed to a strategy. It is rebuilt for
// every call, so strategies never see the live board.
type NextMoveInput struct {
	GameBoard      Dimension    `json:"game_board"`
	OwnStatus      TankStatus   `json:"own_status"`
	OpponentStatus []TankStatus `json:"opponent_status"`
	FireRange      int          `json:"fire_range"`
}
