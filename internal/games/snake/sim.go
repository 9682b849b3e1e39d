package snake

import (
	"time"
)

// Rand is the random source used for food placement. *rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
}

// Point represents a grid cell or a unit direction.
type Point struct {
	X, Y int
}

// Add returns p moved by d.
func (p Point) Add(d Point) Point {
	return Point{X: p.X + d.X, Y: p.Y + d.Y}
}

// Directions.
var (
	DirNone  = Point{}
	DirUp    = Point{X: 0, Y: -1}
	DirDown  = Point{X: 0, Y: 1}
	DirLeft  = Point{X: -1, Y: 0}
	DirRight = Point{X: 1, Y: 0}
)

func isUnit(d Point) bool {
	return (d.X == 0) != (d.Y == 0) && d.X >= -1 && d.X <= 1 && d.Y >= -1 && d.Y <= 1
}

// Status is the state of the snake machine.
type Status string

const (
	StatusIdle    Status = "idle"    // not moving yet, direction is zero
	StatusRunning Status = "running" // moving every tick
	StatusOver    Status = "over"    // hit a wall or itself, or filled the board
)

// Params holds the board rules.
type Params struct {
	Width      int
	Height     int
	Start      Point
	FirstFood  Point
	FoodPoints int
	Interval   time.Duration
}

// DefaultParams returns the standard 20x20 board.
func DefaultParams() Params {
	return Params{
		Width:      20,
		Height:     20,
		Start:      Point{X: 10, Y: 10},
		FirstFood:  Point{X: 15, Y: 10},
		FoodPoints: 10,
		Interval:   150 * time.Millisecond,
	}
}

// State is one round of snake. Body[0] is the head.
type State struct {
	Params Params
	Body   []Point
	Dir    Point // direction applied on the last move
	Next   Point // direction the next move will use
	Food   Point
	Score  int
	Status Status
	Won    bool
	Ticks  uint64
}

// NewState builds the opening board with food on the fixed first cell.
func NewState(p Params) State {
	return State{
		Params: p,
		Body:   []Point{p.Start},
		Food:   p.FirstFood,
		Status: StatusIdle,
	}
}

// Restart builds a fresh board with food on a random empty cell.
func Restart(p Params, rng Rand) State {
	s := NewState(p)
	s.Food, _ = randomEmpty(p, s.Body, rng)
	return s
}

// Head returns the head cell.
func (s State) Head() Point {
	return s.Body[0]
}

// Occupies reports whether the body covers c.
func (s State) Occupies(c Point) bool {
	return contains(s.Body, c)
}

// Turn requests a new direction for the next move. From idle any unit
// direction starts the round. While running only a turn onto the other axis
// is accepted; reversals, repeats and non-unit vectors are ignored. The check
// is against the last applied direction, so two quick turns cannot fold the
// snake back onto itself before it moves.
func Turn(prev State, d Point) State {
	if !isUnit(d) {
		return prev
	}

	switch prev.Status {
	case StatusIdle:
		s := prev
		s.Next = d
		s.Status = StatusRunning
		return s
	case StatusRunning:
		if prev.Dir != DirNone && (d.X == 0) == (prev.Dir.X == 0) {
			return prev
		}
		s := prev
		s.Next = d
		return s
	default:
		return prev
	}
}

// Tick moves the snake one cell. Only a running snake moves.
func Tick(prev State, rng Rand) State {
	if prev.Status != StatusRunning {
		return prev
	}

	s := prev
	s.Ticks++
	dir := s.Next
	head := prev.Head().Add(dir)

	if head.X < 0 || head.X >= s.Params.Width || head.Y < 0 || head.Y >= s.Params.Height || contains(prev.Body, head) {
		s.Status = StatusOver
		return s
	}

	body := make([]Point, 0, len(prev.Body)+1)
	body = append(body, head)
	body = append(body, prev.Body...)
	s.Dir = dir

	if head == prev.Food {
		s.Score += s.Params.FoodPoints
		s.Body = body
		food, ok := randomEmpty(s.Params, body, rng)
		if !ok {
			s.Status = StatusOver
			s.Won = true
			return s
		}
		s.Food = food
		return s
	}

	s.Body = body[:len(body)-1]
	return s
}

// randomEmpty picks a uniformly random cell not covered by body.
func randomEmpty(p Params, body []Point, rng Rand) (Point, bool) {
	empty := make([]Point, 0, max(p.Width*p.Height-len(body), 0))
	for y := 0; y < p.Height; y++ {
		for x := 0; x < p.Width; x++ {
			c := Point{X: x, Y: y}
			if !contains(body, c) {
				empty = append(empty, c)
			}
		}
	}
	if len(empty) == 0 {
		return Point{X: -1, Y: -1}, false
	}
	return empty[rng.Intn(len(empty))], true
}

func contains(body []Point, c Point) bool {
	for _, seg := range body {
		if seg == c {
			return true
		}
	}
	return false
}
