// Package racer implements a lane-dodging racer for one or two local players.
//
// The simulation is a pure function: Tick takes the previous State, the input
// events queued since the last tick and a random source, and returns the next
// State without mutating the previous one. Machine wraps it with the
// menu/playing/gameover phases, and Game adapts it to the registry.
package racer

import (
	"github.com/vovakirdan/gamebox/internal/core"
)

// Rand is the random source used for spawning. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// Params holds the arena geometry and the scoring rules shared by all tiers.
// Units are arena pixels.
type Params struct {
	ArenaW float64
	ArenaH float64

	CarW      float64
	CarH      float64
	CarLift   float64 // gap between the car sprite and the arena bottom
	CarInsetX float64 // hitbox shrink on the left and right
	CarInsetY float64 // hitbox shrink on the top and bottom

	ObstacleW     float64
	ObstacleH     float64
	ObstacleInset float64
	SpawnY        float64
	SpawnScaling  float64 // added to the spawn rate per score point

	ExitPoints     int
	SpeedThreshold int
	SpeedIncrement float64
	MidlineGap     float64

	// TapStep is the nudge applied by one tap. Zero means the tier step.
	TapStep float64
}

// DefaultParams returns the standard 360x500 arena.
func DefaultParams() Params {
	return Params{
		ArenaW:         360,
		ArenaH:         500,
		CarW:           30,
		CarH:           50,
		CarLift:        10,
		CarInsetX:      8,
		CarInsetY:      5,
		ObstacleW:      40,
		ObstacleH:      40,
		ObstacleInset:  5,
		SpawnY:         -50,
		SpawnScaling:   0.00005,
		ExitPoints:     10,
		SpeedThreshold: 200,
		SpeedIncrement: 0.2,
		MidlineGap:     2,
	}
}

// Tier bundles the per-difficulty parameters.
type Tier struct {
	Speed     float64 // initial scroll speed per tick
	SpawnRate float64 // base spawn probability per tick
	Step      float64 // player movement per tick while a key is held
}

// Kind is the cosmetic type of an obstacle.
type Kind string

const (
	KindRock    Kind = "rock"
	KindBarrier Kind = "barrier"
)

// Obstacle is a falling box.
type Obstacle struct {
	X, Y float64
	W, H float64
	Kind Kind
}

// Rect returns the sprite bounds.
func (o Obstacle) Rect() core.RectF {
	return core.NewRectF(o.X, o.Y, o.W, o.H)
}

// Player is one car.
type Player struct {
	X     float64
	Alive bool
}

// Range is an inclusive lateral interval for a car's X.
type Range struct {
	Min, Max float64
}

// Clamp limits x to the range.
func (r Range) Clamp(x float64) float64 {
	return core.ClampF(x, r.Min, r.Max)
}

// EventKind distinguishes input events.
type EventKind int

const (
	EventKeyDown EventKind = iota
	EventKeyUp
	EventTap
)

// Event is one discrete input signal queued between ticks.
type Event struct {
	Kind EventKind
	Key  Key
	Zone Zone
}

// KeyDown returns a key press event.
func KeyDown(k Key) Event { return Event{Kind: EventKeyDown, Key: k} }

// KeyUp returns a key release event.
func KeyUp(k Key) Event { return Event{Kind: EventKeyUp, Key: k} }

// Tap returns a touch zone event.
func Tap(z Zone) Event { return Event{Kind: EventTap, Zone: z} }

// State is the complete simulation state of one round.
type State struct {
	Params Params
	Tier   Tier
	Mode   Mode

	Players   [2]Player // Players[1] is unused in single mode
	Obstacles []Obstacle
	Speed     float64
	Score     int
	Held      KeySet
	Ticks     uint64

	Over    bool
	Outcome Outcome
}

// NewState builds the opening state of a round.
func NewState(p Params, mode Mode, tier Tier) State {
	s := State{
		Params: p,
		Tier:   tier,
		Mode:   mode,
		Speed:  tier.Speed,
	}

	if mode == ModeVersus {
		s.Players[0] = Player{X: p.ArenaW/4 - p.CarW/2, Alive: true}
		s.Players[1] = Player{X: 3*p.ArenaW/4 - p.CarW/2, Alive: true}
	} else {
		s.Players[0] = Player{X: p.ArenaW/2 - p.CarW/2, Alive: true}
	}
	return s
}

// PlayerCount returns how many cars take part in the round.
func (s State) PlayerCount() int {
	if s.Mode == ModeVersus {
		return 2
	}
	return 1
}

// Ranges returns the allowed X interval for each car in the given mode.
// In versus mode each car keeps to its own half and the midline gap belongs
// to neither.
func Ranges(p Params, mode Mode) [2]Range {
	if mode != ModeVersus {
		full := Range{Min: 0, Max: p.ArenaW - p.CarW}
		return [2]Range{full, full}
	}
	half := p.ArenaW / 2
	return [2]Range{
		{Min: 0, Max: half - p.CarW - p.MidlineGap},
		{Min: half + p.MidlineGap, Max: p.ArenaW - p.CarW},
	}
}

// CarRect returns the sprite bounds of a car at x.
func CarRect(p Params, x float64) core.RectF {
	return core.NewRectF(x, p.ArenaH-p.CarH-p.CarLift, p.CarW, p.CarH)
}

// CarHitbox returns the shrunk collision box of a car at x.
func CarHitbox(p Params, x float64) core.RectF {
	return CarRect(p, x).Inset(p.CarInsetX, p.CarInsetY)
}

// ObstacleHitbox returns the shrunk collision box of an obstacle.
func ObstacleHitbox(p Params, o Obstacle) core.RectF {
	return o.Rect().Inset(p.ObstacleInset, p.ObstacleInset)
}

// Tick advances the round by one step. A finished round is returned as is.
func Tick(prev State, events []Event, rng Rand) State {
	if prev.Over {
		return prev
	}

	s := prev
	s.Obstacles = nil
	ranges := Ranges(s.Params, s.Mode)

	// 1. Input: drain the queue, then apply held keys.
	for _, ev := range events {
		switch ev.Kind {
		case EventKeyDown:
			s.Held = s.Held.With(ev.Key)
		case EventKeyUp:
			s.Held = s.Held.Without(ev.Key)
		case EventTap:
			s.applyTap(ev.Zone, ranges)
		}
	}
	s.applyHeld(ranges)

	// 2. Spawn.
	obstacles := make([]Obstacle, 0, len(prev.Obstacles)+1)
	obstacles = append(obstacles, prev.Obstacles...)
	if rng.Float64() < s.Tier.SpawnRate+float64(s.Score)*s.Params.SpawnScaling {
		kind := KindBarrier
		x := rng.Float64() * (s.Params.ArenaW - s.Params.ObstacleW)
		if rng.Float64() > 0.5 {
			kind = KindRock
		}
		obstacles = append(obstacles, Obstacle{
			X:    x,
			Y:    s.Params.SpawnY,
			W:    s.Params.ObstacleW,
			H:    s.Params.ObstacleH,
			Kind: kind,
		})
	}

	// 3. Advance, 4. cull and score.
	kept := obstacles[:0]
	exited := 0
	for _, o := range obstacles {
		o.Y += s.Speed
		if o.Y >= s.Params.ArenaH {
			exited++
			continue
		}
		kept = append(kept, o)
	}
	s.Obstacles = kept

	before := s.Score
	s.Score += exited * s.Params.ExitPoints
	if t := s.Params.SpeedThreshold; t > 0 {
		crossed := s.Score/t - before/t
		s.Speed += float64(crossed) * s.Params.SpeedIncrement
	}

	// 5. Collision.
	for i := 0; i < s.PlayerCount(); i++ {
		if !s.Players[i].Alive {
			continue
		}
		hb := CarHitbox(s.Params, s.Players[i].X)
		for _, o := range s.Obstacles {
			if hb.Intersects(ObstacleHitbox(s.Params, o)) {
				s.Players[i].Alive = false
				break
			}
		}
	}

	s.Ticks++

	// 6. Terminal check.
	s.Outcome = s.outcome()
	s.Over = s.Outcome != OutcomeNone
	return s
}

func (s State) outcome() Outcome {
	p1, p2 := s.Players[0].Alive, s.Players[1].Alive
	if s.Mode != ModeVersus {
		if !p1 {
			return OutcomeGameOver
		}
		return OutcomeNone
	}
	switch {
	case !p1 && !p2:
		return OutcomeDraw
	case !p1:
		return OutcomeP2
	case !p2:
		return OutcomeP1
	default:
		return OutcomeNone
	}
}

// nudge moves car i by dx within its range. Dead cars ignore input.
func (s *State) nudge(i int, dx float64, ranges [2]Range) {
	if !s.Players[i].Alive {
		return
	}
	s.Players[i].X = ranges[i].Clamp(s.Players[i].X + dx)
}

func (s *State) applyHeld(ranges [2]Range) {
	step := s.Tier.Step
	if s.Mode != ModeVersus {
		if s.Held.Has(KeyA) || s.Held.Has(KeyArrowLeft) {
			s.nudge(0, -step, ranges)
		}
		if s.Held.Has(KeyD) || s.Held.Has(KeyArrowRight) {
			s.nudge(0, step, ranges)
		}
		return
	}

	if s.Held.Has(KeyA) {
		s.nudge(0, -step, ranges)
	}
	if s.Held.Has(KeyD) {
		s.nudge(0, step, ranges)
	}
	if s.Held.Has(KeyArrowLeft) {
		s.nudge(1, -step, ranges)
	}
	if s.Held.Has(KeyArrowRight) {
		s.nudge(1, step, ranges)
	}
}

func (s *State) applyTap(z Zone, ranges [2]Range) {
	if !z.Valid() {
		return
	}
	step := s.Params.TapStep
	if step <= 0 {
		step = s.Tier.Step
	}

	dx := step
	if z == ZoneP1Left || z == ZoneP2Left {
		dx = -step
	}

	switch {
	case s.Mode != ModeVersus:
		s.nudge(0, dx, ranges)
	case z == ZoneP1Left || z == ZoneP1Right:
		s.nudge(0, dx, ranges)
	case z == ZoneP2Left || z == ZoneP2Right:
		s.nudge(1, dx, ranges)
	}
}
