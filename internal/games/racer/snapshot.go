package racer

// ObstacleView is the presentation view of one obstacle.
type ObstacleView struct {
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
	W    float64 `json:"w" msgpack:"w"`
	H    float64 `json:"h" msgpack:"h"`
	Kind Kind    `json:"kind" msgpack:"kind"`
}

// PlayerView is the presentation view of one car.
type PlayerView struct {
	X     float64 `json:"x" msgpack:"x"`
	Alive bool    `json:"alive" msgpack:"alive"`
}

// Snapshot captures the observable state after a tick. It is what the
// presentation layers render and what determinism tests compare.
type Snapshot struct {
	Phase      Phase          `json:"phase" msgpack:"phase"`
	Mode       Mode           `json:"mode" msgpack:"mode"`
	Difficulty Difficulty     `json:"difficulty" msgpack:"difficulty"`
	Tick       uint64         `json:"tick" msgpack:"tick"`
	Score      int            `json:"score" msgpack:"score"`
	Best       int            `json:"best" msgpack:"best"`
	Speed      float64        `json:"speed" msgpack:"speed"`
	Obstacles  []ObstacleView `json:"obstacles" msgpack:"obstacles"`
	Players    []PlayerView   `json:"players" msgpack:"players"`
	Outcome    Outcome        `json:"outcome,omitempty" msgpack:"outcome,omitempty"`
}

// Snapshot returns the current observable state of a State.
func (s State) Snapshot() Snapshot {
	snap := Snapshot{
		Mode:      s.Mode,
		Tick:      s.Ticks,
		Score:     s.Score,
		Speed:     s.Speed,
		Obstacles: make([]ObstacleView, len(s.Obstacles)),
		Players:   make([]PlayerView, s.PlayerCount()),
		Outcome:   s.Outcome,
	}
	for i, o := range s.Obstacles {
		snap.Obstacles[i] = ObstacleView{X: o.X, Y: o.Y, W: o.W, H: o.H, Kind: o.Kind}
	}
	for i := range snap.Players {
		snap.Players[i] = PlayerView{X: s.Players[i].X, Alive: s.Players[i].Alive}
	}
	return snap
}

// Snapshot returns the machine's observable state, including the phase and
// the session best.
func (m *Machine) Snapshot() Snapshot {
	snap := m.state.Snapshot()
	snap.Phase = m.phase
	snap.Mode = m.mode
	snap.Difficulty = m.difficulty
	snap.Best = m.best
	return snap
}
