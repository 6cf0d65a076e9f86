package strategy

import (
	"log/slog"

	"robotchallenge/internal/combat"
)

// Planner searches breadth-first over (cell, facing) states for the nearest
// spot from which a shot reaches a living opponent, and returns the first
// move towards it. Nothing is cached between calls.
type Planner struct {
	name       string
	author     string
	maxVisited int
	logger     *slog.Logger
}

type PlannerOption func(*Planner)

func WithIdentity(name, author string) PlannerOption {
	return func(p *Planner) {
		if name != "" {
			p.name = name
		}
		if author != "" {
			p.author = author
		}
	}
}

// WithMaxVisited caps the states one search may expand; 0 means
// width*height*4 of the observed board.
func WithMaxVisited(n int) PlannerOption {
	return func(p *Planner) { p.maxVisited = n }
}

func WithPlannerLogger(l *slog.Logger) PlannerOption {
	return func(p *Planner) {
		if l != nil {
			p.logger = l
		}
	}
}

func NewPlanner(opts ...PlannerOption) *Planner {
	p := &Planner{name: "FireFire", author: "Johan", logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Planner) Name() string   { return p.name }
func (p *Planner) Author() string { return p.author }

const (
	cellEmpty uint8 = iota
	cellAlive
	cellDead
)

type node struct {
	point combat.BoardPoint
	dir   combat.Direction
	first combat.Move
	root  bool
}

func (p *Planner) NextMove(in combat.NextMoveInput) combat.Move {
	move, _ := p.plan(in)
	return move
}

// plan returns the chosen move and the number of states expanded.
func (p *Planner) plan(in combat.NextMoveInput) (combat.Move, int) {
	dim := in.GameBoard
	if dim.Width <= 0 || dim.Height <= 0 {
		return combat.Forward, 0
	}
	limit := p.maxVisited
	if limit <= 0 {
		limit = dim.Cells() * 4
	}

	cells := make([]uint8, dim.Cells())
	visited := make([]bool, dim.Cells()*4)
	index := func(pt combat.BoardPoint) int { return pt.Y*dim.Width + pt.X }
	state := func(pt combat.BoardPoint, d combat.Direction) int { return index(pt)*4 + int(d) }

	for _, o := range in.OpponentStatus {
		if !dim.Contains(o.Location) {
			continue
		}
		i := index(o.Location)
		// A wreck marks its cell as blocking even if a living tank is reported there too.
		if o.IsAlive && cells[i] != cellDead {
			cells[i] = cellAlive
		} else if !o.IsAlive {
			cells[i] = cellDead
		}
		for _, d := range combat.Directions {
			visited[state(o.Location, d)] = true
		}
	}

	// The goal scan stops short of the full fire range.
	inSight := func(pt combat.BoardPoint, d combat.Direction) bool {
		for i := 1; i < in.FireRange; i++ {
			probe := pt.WithOffset(d, i)
			if !dim.Contains(probe) {
				return false
			}
			switch cells[index(probe)] {
			case cellDead:
				return false
			case cellAlive:
				return true
			}
		}
		return false
	}

	start := node{point: in.OwnStatus.Location, dir: in.OwnStatus.Direction, root: true}
	if dim.Contains(start.point) {
		visited[state(start.point, start.dir)] = true
	}
	queue := []node{start}
	expanded := 0
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		expanded++

		if inSight(cur.point, cur.dir) {
			if cur.root {
				return combat.Fire, expanded
			}
			p.logger.Debug("plan found", "name", p.name, "first", cur.first, "expanded", expanded)
			return cur.first, expanded
		}
		if expanded >= limit {
			p.logger.Debug("plan search capped", "name", p.name, "expanded", expanded)
			return combat.Forward, expanded
		}

		next := [3]node{
			{point: cur.point.WithOffset(cur.dir, 1), dir: cur.dir, first: combat.Forward},
			{point: cur.point, dir: cur.dir.Clockwise(), first: combat.TurnRight},
			{point: cur.point, dir: cur.dir.CounterClockwise(), first: combat.TurnLeft},
		}
		for _, n := range next {
			if !dim.Contains(n.point) {
				continue
			}
			s := state(n.point, n.dir)
			if visited[s] {
				continue
			}
			visited[s] = true
			if !cur.root {
				n.first = cur.first
			}
			queue = append(queue, n)
		}
	}
	return combat.Forward, expanded
}
