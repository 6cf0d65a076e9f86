package combat

import (
	"testing"

	"pgregory.net/rapid"
)

func TestFire_HitsFirstTankInLine(t *testing.T) {
	a := tankAt(5, 10, East)
	b := tankAt(8, 10, North)
	board := newTestBoard(t, 20, 20, a, b)

	shot, err := board.Fire(0)
	if err != nil {
		t.Fatalf("Fire: %v", err)
	}
	if board.Laser.Length != 2 || !board.Laser.Hit || !board.Laser.Visible {
		t.Fatalf("laser = %+v, want length 2 hit visible", board.Laser)
	}
	if board.Hit.Point != (BoardPoint{X: 8, Y: 10}) {
		t.Errorf("hit point = %v, want (8,10)", board.Hit.Point)
	}
	if b.Energy != 4 {
		t.Errorf("target energy = %d, want 4", b.Energy)
	}
	if a.Hits != 1 || a.Frags != 0 || a.Shots != 1 {
		t.Errorf("shooter tallies = hits %d frags %d shots %d", a.Hits, a.Frags, a.Shots)
	}
	if !shot.Hit || !shot.Scored || shot.Frag || shot.Target != 1 {
		t.Errorf("shot = %+v", shot)
	}
}

func TestFire_ClearLineUsesFullRange(t *testing.T) {
	a := tankAt(2, 2, South)
	board := newTestBoard(t, 20, 20, a, tankAt(3, 3, North))

	shot, _ := board.Fire(0)
	if board.Laser.Length != 5 || board.Laser.Hit {
		t.Fatalf("laser = %+v, want full-length miss", board.Laser)
	}
	if shot.Target != -1 || shot.Hit {
		t.Errorf("shot = %+v, want a miss", shot)
	}
	if a.Shots != 1 || a.Hits != 0 {
		t.Errorf("shooter tallies = shots %d hits %d", a.Shots, a.Hits)
	}
}

func TestFire_TruncatedAtEdge(t *testing.T) {
	tests := []struct {
		name string
		at   BoardPoint
		dir  Direction
		want int
	}{
		{"two cells to east edge", BoardPoint{X: 17, Y: 4}, East, 2},
		{"on north edge", BoardPoint{X: 4, Y: 0}, North, 0},
		{"one cell from west edge", BoardPoint{X: 1, Y: 9}, West, 1},
		{"exactly range to edge", BoardPoint{X: 4, Y: 14}, South, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			board := newTestBoard(t, 20, 20, tankAt(tt.at.X, tt.at.Y, tt.dir))
			board.Fire(0)
			if board.Laser.Length != tt.want || board.Laser.Hit {
				t.Fatalf("laser = %+v, want length %d", board.Laser, tt.want)
			}
		})
	}
}

func TestFire_AdjacentTargetGivesZeroLength(t *testing.T) {
	a := tankAt(5, 5, West)
	b := tankAt(4, 5, North)
	board := newTestBoard(t, 20, 20, a, b)

	board.Fire(0)
	if board.Laser.Length != 0 || !board.Laser.Hit {
		t.Fatalf("laser = %+v, want zero-length hit", board.Laser)
	}
	if b.Energy != 4 {
		t.Errorf("target energy = %d, want 4", b.Energy)
	}
}

func TestFire_DeadTargetBlocksWithoutScoring(t *testing.T) {
	a := tankAt(5, 10, East)
	corpse := tankAt(7, 10, North)
	corpse.Energy = 0
	behind := tankAt(9, 10, North)
	board := newTestBoard(t, 20, 20, a, corpse, behind)

	shot, _ := board.Fire(0)
	if !shot.Hit || shot.Scored || shot.Target != 1 {
		t.Fatalf("shot = %+v, want unscored hit on the wreck", shot)
	}
	if board.Laser.Length != 1 {
		t.Errorf("laser length = %d, want 1", board.Laser.Length)
	}
	if corpse.Energy != 0 || behind.Energy != 5 {
		t.Errorf("energies = %d, %d", corpse.Energy, behind.Energy)
	}
	if a.Hits != 0 || a.Frags != 0 {
		t.Errorf("shooter scored on a dead tank: hits %d frags %d", a.Hits, a.Frags)
	}
}

func TestFire_LastEnergyCountsFrag(t *testing.T) {
	a := tankAt(0, 0, South)
	b := tankAt(0, 3, North)
	b.Energy = 1
	board := newTestBoard(t, 20, 20, a, b)

	shot, _ := board.Fire(0)
	if !shot.Frag || b.IsAlive() {
		t.Fatalf("shot = %+v, target alive = %v", shot, b.IsAlive())
	}
	if a.Hits != 1 || a.Frags != 1 {
		t.Errorf("shooter tallies = hits %d frags %d, want 1 1", a.Hits, a.Frags)
	}
	// The wreck stays on the board and keeps its cell.
	if got, ok := board.TankAt(BoardPoint{X: 0, Y: 3}); !ok || got != b {
		t.Error("dead tank left its cell")
	}
}

func TestApply_ForwardStopsAtEdge(t *testing.T) {
	a := tankAt(0, 10, West)
	board := newTestBoard(t, 20, 20, a)

	res, err := board.Apply(0, Forward)
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if res.Moved || a.Point != (BoardPoint{X: 0, Y: 10}) {
		t.Fatalf("tank left the board: %+v at %v", res, a.Point)
	}
}

func TestApply_ForwardBlockedByTank(t *testing.T) {
	a := tankAt(5, 5, East)
	b := tankAt(6, 5, South)
	b.Energy = 0
	board := newTestBoard(t, 20, 20, a, b)

	res, _ := board.Apply(0, Forward)
	if res.Moved || a.Point != (BoardPoint{X: 5, Y: 5}) {
		t.Fatalf("tank drove into a wreck: %+v", res)
	}
	if a.Direction != East || a.Energy != 5 {
		t.Errorf("blocked advance changed state: %+v", a)
	}
}

func TestApply_ForwardUpdatesIndex(t *testing.T) {
	a := tankAt(3, 3, North)
	board := newTestBoard(t, 20, 20, a)

	res, _ := board.Apply(0, Forward)
	if !res.Moved || res.From != (BoardPoint{X: 3, Y: 3}) || res.To != (BoardPoint{X: 3, Y: 2}) {
		t.Fatalf("result = %+v", res)
	}
	if _, ok := board.TankAt(BoardPoint{X: 3, Y: 3}); ok {
		t.Error("old cell still occupied")
	}
	if got, ok := board.TankAt(BoardPoint{X: 3, Y: 2}); !ok || got != a {
		t.Error("new cell not indexed")
	}
}

func TestApply_TurnsAndWait(t *testing.T) {
	a := tankAt(3, 3, North)
	board := newTestBoard(t, 20, 20, a)

	board.Apply(0, TurnLeft)
	if a.Direction != West {
		t.Fatalf("after turn_left facing %v, want west", a.Direction)
	}
	board.Apply(0, TurnRight)
	board.Apply(0, TurnRight)
	if a.Direction != East {
		t.Fatalf("after two turn_right facing %v, want east", a.Direction)
	}
	res, _ := board.Apply(0, Wait)
	if res.Moved || a.Point != (BoardPoint{X: 3, Y: 3}) || a.Direction != East {
		t.Errorf("wait changed state: %+v", res)
	}
	res, _ = board.Apply(0, Move(42))
	if res.Move != Wait {
		t.Errorf("unknown move resolved as %v, want wait", res.Move)
	}
}

func TestApply_TanksNeverShareOrLeave(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.IntRange(1, 8).Draw(t, "w")
		h := rapid.IntRange(1, 8).Draw(t, "h")
		dim := Dimension{Width: w, Height: h}
		n := rapid.IntRange(1, min(6, dim.Cells())).Draw(t, "n")

		cells := make([]BoardPoint, 0, dim.Cells())
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				cells = append(cells, BoardPoint{X: x, Y: y})
			}
		}
		spawns := rapid.Permutation(cells).Draw(t, "spawns")[:n]

		var tanks []*Tank
		for _, p := range spawns {
			dir := rapid.SampledFrom(Directions[:]).Draw(t, "dir")
			tk := NewTank(&stubStrategy{}, "", p, dir, rapid.IntRange(0, 5).Draw(t, "energy"))
			tanks = append(tanks, tk)
		}
		board, err := NewBoard(dim, DefaultRules(), tanks)
		if err != nil {
			t.Fatalf("NewBoard: %v", err)
		}

		steps := rapid.IntRange(1, 60).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			id := rapid.IntRange(0, n-1).Draw(t, "id")
			m := rapid.SampledFrom(Moves[:]).Draw(t, "move")
			if _, err := board.Apply(id, m); err != nil {
				t.Fatalf("Apply: %v", err)
			}
			held := map[BoardPoint]int{}
			for _, tk := range board.Tanks() {
				if !dim.Contains(tk.Point) {
					t.Fatalf("tank %d left the board at %v", tk.ID, tk.Point)
				}
				if other, ok := held[tk.Point]; ok {
					t.Fatalf("tanks %d and %d share %v", other, tk.ID, tk.Point)
				}
				held[tk.Point] = tk.ID
				if tk.Energy < 0 || tk.Energy > 5 {
					t.Fatalf("tank %d energy %d out of range", tk.ID, tk.Energy)
				}
			}
		}
	})
}
