package racer

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/gamebox/internal/config"
	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/registry"
)

const defaultHoldTicks = 12

// Package-level knobs set by the CLI before registry.Create.
var (
	configPath      string
	startMode       = ModeSingle
	startDifficulty = Normal
)

var keyActions = []struct {
	action core.Action
	key    Key
}{
	{core.ActionAltLeft, KeyA},
	{core.ActionAltRight, KeyD},
	{core.ActionLeft, KeyArrowLeft},
	{core.ActionRight, KeyArrowRight},
}

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset preselects the tier shown in the menu.
// Unknown names keep the current selection.
func SetDifficultyPreset(preset string) {
	if d, err := ParseTier(preset); err == nil {
		startDifficulty = d
	}
}

// SetMode preselects the player count shown in the menu.
func SetMode(m Mode) {
	if m.Valid() {
		startMode = m
	}
}

// ParamsFromConfig converts a loaded configuration into simulation parameters.
func ParamsFromConfig(cfg config.RacerConfig) (Params, map[Difficulty]Tier) {
	p := Params{
		ArenaW:         cfg.Arena.Width,
		ArenaH:         cfg.Arena.Height,
		CarW:           cfg.Car.Width,
		CarH:           cfg.Car.Height,
		CarLift:        cfg.Car.Lift,
		CarInsetX:      cfg.Car.InsetX,
		CarInsetY:      cfg.Car.InsetY,
		ObstacleW:      cfg.Obstacles.Width,
		ObstacleH:      cfg.Obstacles.Height,
		ObstacleInset:  cfg.Obstacles.Inset,
		SpawnY:         cfg.Obstacles.SpawnY,
		SpawnScaling:   cfg.Obstacles.SpawnScaling,
		ExitPoints:     cfg.Scoring.ExitPoints,
		SpeedThreshold: cfg.Scoring.SpeedThreshold,
		SpeedIncrement: cfg.Scoring.SpeedIncrement,
		MidlineGap:     cfg.Arena.MidlineGap,
		TapStep:        cfg.Input.TapStep,
	}

	tiers := make(map[Difficulty]Tier, len(Difficulties))
	for _, d := range Difficulties {
		t := cfg.Tier(config.DifficultyPreset(d))
		tiers[d] = Tier{Speed: t.Speed, SpawnRate: t.SpawnRate, Step: t.Step}
	}
	return p, tiers
}

// Game adapts Machine to the registry. Terminals report key presses but
// never releases, so a press counts as held for a number of ticks and
// auto-repeat keeps refreshing it.
type Game struct {
	machine   *Machine
	holdTicks int
	hold      map[Key]int
	cursor    Mode
	layout    layout
	screenW   int
	screenH   int
}

// New creates a new racer instance.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("racer", func() registry.Game {
		return New()
	})
}

// ID returns the unique identifier for this game.
func (g *Game) ID() string {
	return "racer"
}

// Title returns the display name for this game.
func (g *Game) Title() string {
	return "Lane Racer"
}

// Reset initializes the session and shows the menu.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	cfg, err := config.LoadRacer(configPath)
	if err != nil {
		cfg = config.DefaultRacerConfig()
	}

	params, tiers := ParamsFromConfig(cfg)
	g.machine = NewMachine(params, tiers, rand.New(rand.NewSource(runtime.Seed)))
	_ = g.machine.SelectTier(startDifficulty)

	g.holdTicks = cfg.Input.HoldTicks
	if g.holdTicks <= 0 {
		g.holdTicks = defaultHoldTicks
	}
	g.hold = make(map[Key]int, len(keyActions))
	g.cursor = startMode
	g.screenW = runtime.ScreenW
	g.screenH = runtime.ScreenH
	g.layout = computeLayout(params, g.screenW, g.screenH)
}

// Machine exposes the underlying state machine.
func (g *Game) Machine() *Machine {
	return g.machine
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	switch g.machine.Phase() {
	case PhaseMenu:
		g.stepMenu(in)
	case PhasePlaying:
		g.stepPlaying(in)
	case PhaseGameOver:
		if in.Has(core.ActionRestart) {
			g.machine.Restart()
		} else if in.Has(core.ActionConfirm) {
			g.machine.Menu()
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) stepMenu(in core.InputFrame) {
	if in.Has(core.ActionUp) {
		g.cursor = ModeSingle
	}
	if in.Has(core.ActionDown) {
		g.cursor = ModeVersus
	}
	if in.Has(core.ActionLeft) || in.Has(core.ActionAltLeft) {
		g.cycleTier(-1)
	}
	if in.Has(core.ActionRight) || in.Has(core.ActionAltRight) {
		g.cycleTier(1)
	}
	if in.Has(core.ActionConfirm) {
		_ = g.machine.Start(Command{Mode: g.cursor, Difficulty: g.machine.Difficulty()})
		clear(g.hold)
	}
}

func (g *Game) cycleTier(dir int) {
	cur := 0
	for i, d := range Difficulties {
		if d == g.machine.Difficulty() {
			cur = i
		}
	}
	next := (cur + dir + len(Difficulties)) % len(Difficulties)
	_ = g.machine.SelectTier(Difficulties[next])
}

func (g *Game) stepPlaying(in core.InputFrame) {
	for _, ka := range keyActions {
		switch {
		case in.Has(ka.action):
			if g.hold[ka.key] == 0 {
				g.machine.KeyDown(ka.key)
			}
			g.hold[ka.key] = g.holdTicks
		case g.hold[ka.key] > 0:
			g.hold[ka.key]--
			if g.hold[ka.key] == 0 {
				g.machine.KeyUp(ka.key)
			}
		}
	}

	for _, c := range in.Clicks {
		if z, ok := g.layout.zoneAt(c, g.machine.Mode()); ok {
			g.machine.Tap(z)
		}
	}

	if !g.machine.Advance() {
		clear(g.hold)
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.machine == nil {
		return core.GameState{}
	}
	st := core.GameState{
		Score:    g.machine.State().Score,
		GameOver: g.machine.Phase() == PhaseGameOver,
		Idle:     g.machine.Phase() == PhaseMenu,
	}
	if res, ok := g.machine.Result(); ok {
		st.Outcome = string(res.Outcome)
		st.Detail = fmt.Sprintf("%s/%s", res.Mode, res.Difficulty)
	}
	return st
}

// Snapshot returns the machine snapshot.
func (g *Game) Snapshot() Snapshot {
	return g.machine.Snapshot()
}
