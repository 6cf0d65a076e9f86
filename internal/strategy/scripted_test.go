package strategy

import (
	"math/rand"
	"testing"

	"robotchallenge/internal/combat"
)

func play(s combat.Strategy, n int) []combat.Move {
	out := make([]combat.Move, n)
	for i := range out {
		out[i] = s.NextMove(combat.NextMoveInput{})
	}
	return out
}

func sameMoves(a, b []combat.Move) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestScriptedSequences(t *testing.T) {
	tests := []struct {
		name   string
		s      combat.Strategy
		who    string
		author string
		want   []combat.Move
	}{
		{"dummy", Dummy(), "Dummy", "JMH",
			[]combat.Move{combat.Fire, combat.TurnLeft, combat.Forward, combat.Fire, combat.TurnLeft}},
		{"dummy2", Dummy2(), "Dummy2", "JMH",
			[]combat.Move{combat.Fire, combat.TurnRight, combat.Forward, combat.Fire}},
		{"slacker", NewSlacker(), "Eric Idle", "Martin",
			[]combat.Move{combat.Wait, combat.Wait, combat.Wait}},
		{"spinner", NewSpinner(), "Spinner", "Martin",
			[]combat.Move{combat.TurnRight, combat.Fire, combat.TurnRight, combat.Fire}},
		{"empty cycle", NewCycle("Idle", "x"), "Idle", "x",
			[]combat.Move{combat.Wait, combat.Wait}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.s.Name() != tt.who || tt.s.Author() != tt.author {
				t.Errorf("identity = %s/%s, want %s/%s", tt.s.Name(), tt.s.Author(), tt.who, tt.author)
			}
			if got := play(tt.s, len(tt.want)); !sameMoves(got, tt.want) {
				t.Fatalf("moves = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCycleCopiesItsScript(t *testing.T) {
	script := []combat.Move{combat.Forward, combat.Fire}
	c := NewCycle("c", "a", script...)
	script[0] = combat.Wait
	if got := c.NextMove(combat.NextMoveInput{}); got != combat.Forward {
		t.Fatalf("first move = %v, want forward", got)
	}
}

func TestRandom_SeededAndCovering(t *testing.T) {
	a := play(NewRandom(rand.New(rand.NewSource(3))), 200)
	b := play(NewRandom(rand.New(rand.NewSource(3))), 200)
	if !sameMoves(a, b) {
		t.Fatal("same seed gave different sequences")
	}
	seen := map[combat.Move]int{}
	for _, m := range a {
		seen[m]++
	}
	for _, m := range combat.Moves {
		if seen[m] == 0 {
			t.Errorf("move %v never drawn in 200 calls", m)
		}
	}
}
