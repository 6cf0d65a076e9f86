package combat

// TankView is a read-only copy of one tank for renderers and score tables.
type TankView struct {
	ID        int        `json:"id"`
	Name      string     `json:"name"`
	Author    string     `json:"author"`
	Color     string     `json:"color,omitempty"`
	Point     BoardPoint `json:"point"`
	Direction Direction  `json:"direction"`
	Energy    int        `json:"energy"`
	Hits      int        `json:"hits"`
	Frags     int        `json:"frags"`
	Shots     int        `json:"shots"`
	Alive     bool       `json:"alive"`
}

func (t *Tank) View() TankView {
	v := TankView{
		ID:        t.ID,
		Color:     t.Color,
		Point:     t.Point,
		Direction: t.Direction,
		Energy:    t.Energy,
		Hits:      t.Hits,
		Frags:     t.Frags,
		Shots:     t.Shots,
		Alive:     t.IsAlive(),
	}
	if t.Strategy != nil {
		v.Name = t.Strategy.Name()
		v.Author = t.Strategy.Author()
	}
	return v
}

func (b *Board) Views() []TankView {
	out := make([]TankView, len(b.tanks))
	for i, t := range b.tanks {
		out[i] = t.View()
	}
	return out
}

// Snapshot is the state exposed after each resolved scheduler step.
type Snapshot struct {
	MatchID string        `json:"match_id,omitempty"`
	Step    int           `json:"step"`
	Round   int           `json:"round"`
	Phase   Phase         `json:"phase"`
	Board   Dimension     `json:"board"`
	Tanks   []TankView    `json:"tanks"`
	Laser   Laser         `json:"laser"`
	Hit     Hit           `json:"hit"`
	Pending []int         `json:"pending"`
	Last    *ActionResult `json:"last,omitempty"`
	Outcome *Outcome      `json:"outcome,omitempty"`
}
