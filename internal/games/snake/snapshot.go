package snake

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64 `json:"tick" msgpack:"tick"`
	Status   Status `json:"status" msgpack:"status"`
	Score    int    `json:"score" msgpack:"score"`
	Best     int    `json:"best" msgpack:"best"`
	SnakeLen int    `json:"length" msgpack:"length"`
	HeadX    int    `json:"head_x" msgpack:"head_x"`
	HeadY    int    `json:"head_y" msgpack:"head_y"`
	Dir      Point  `json:"dir" msgpack:"dir"`
	FoodX    int    `json:"food_x" msgpack:"food_x"`
	FoodY    int    `json:"food_y" msgpack:"food_y"`
	Won      bool   `json:"won" msgpack:"won"`
}

// Snapshot returns the observable state of a round.
func (s State) Snapshot() Snapshot {
	head := s.Head()
	return Snapshot{
		Tick:     s.Ticks,
		Status:   s.Status,
		Score:    s.Score,
		SnakeLen: len(s.Body),
		HeadX:    head.X,
		HeadY:    head.Y,
		Dir:      s.Dir,
		FoodX:    s.Food.X,
		FoodY:    s.Food.Y,
		Won:      s.Won,
	}
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	snap := g.state.Snapshot()
	snap.Best = g.best
	return snap
}
