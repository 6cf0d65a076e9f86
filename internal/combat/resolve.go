package combat

// Apply resolves one decided move for tank id. A blocked advance is not an
// error: the result simply reports Moved=false.
func (b *Board) Apply(id int, m Move) (ActionResult, error) {
	t, err := b.Tank(id)
	if err != nil {
		return ActionResult{}, err
	}
	res := ActionResult{Tank: id, Move: m, From: t.Point, To: t.Point}
	switch m {
	case TurnLeft:
		t.Direction = t.Direction.CounterClockwise()
		res.Moved = true
	case TurnRight:
		t.Direction = t.Direction.Clockwise()
		res.Moved = true
	case Forward:
		res.Moved = b.advance(t)
		res.To = t.Point
	case Fire:
		shot := b.fire(t)
		res.Shot = &shot
	case Wait:
	default:
		// Unknown values from a misbehaving strategy count as waiting.
		res.Move = Wait
	}
	return res, nil
}

func (b *Board) advance(t *Tank) bool {
	next := t.Point.WithOffset(t.Direction, 1)
	if !b.dim.Contains(next) {
		return false
	}
	if _, ok := b.occupied[next]; ok {
		return false
	}
	delete(b.occupied, t.Point)
	t.Point = next
	b.occupied[next] = t.ID
	return true
}

// Fire resolves a shot from tank id along its current facing.
func (b *Board) Fire(id int) (Shot, error) {
	t, err := b.Tank(id)
	if err != nil {
		return Shot{}, err
	}
	return b.fire(t), nil
}

func (b *Board) fire(shooter *Tank) Shot {
	reach := b.rules.FireRange
	b.Laser = Laser{
		Point:     shooter.Point,
		Direction: shooter.Direction,
		Length:    reach,
		Visible:   true,
	}
	shooter.Shots++
	shot := Shot{Length: reach, Target: -1}
	for i := 1; i <= reach; i++ {
		probe := shooter.Point.WithOffset(shooter.Direction, i)
		if !b.dim.Contains(probe) {
			b.Laser.Length = i - 1
			shot.Length = i - 1
			break
		}
		target, ok := b.TankAt(probe)
		if !ok {
			continue
		}
		b.Laser.Length = i - 1
		b.Laser.Hit = true
		b.Hit.Point = probe
		shot.Length = i - 1
		shot.Hit = true
		shot.Target = target.ID
		if target.Energy > 0 {
			target.Energy--
			shot.Scored = true
			shot.Frag = target.Energy == 0
			shooter.Hits++
			if shot.Frag {
				shooter.Frags++
			}
		}
		break
	}
	return shot
}
