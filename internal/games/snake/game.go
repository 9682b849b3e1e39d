// Package snake implements the classic grid snake.
//
// Tick and Turn are pure functions over State; Game adapts them to the
// registry and steps on its own fixed interval.
package snake

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vovakirdan/gamebox/internal/config"
	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/registry"
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// ParamsFromConfig converts a loaded configuration into board rules.
func ParamsFromConfig(cfg config.SnakeConfig) Params {
	p := Params{
		Width:      cfg.Grid.Width,
		Height:     cfg.Grid.Height,
		Start:      Point{X: cfg.Start.X, Y: cfg.Start.Y},
		FirstFood:  Point{X: cfg.FirstFood.X, Y: cfg.FirstFood.Y},
		FoodPoints: cfg.FoodPoints,
		Interval:   time.Duration(cfg.IntervalMS) * time.Millisecond,
	}
	def := DefaultParams()
	if p.Width <= 0 || p.Height <= 0 {
		p.Width, p.Height = def.Width, def.Height
	}
	if p.Interval <= 0 {
		p.Interval = def.Interval
	}
	return p
}

// Game implements the Snake game.
type Game struct {
	params  Params
	rng     *rand.Rand
	state   State
	best    int
	paused  bool
	board   core.Rect // inner board area on screen, 2 columns per cell
	screenW int
	screenH int
}

// New creates a new Snake game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("snake", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "snake"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Snake"
}

// TickInterval makes the platform step snake on its own clock.
func (g *Game) TickInterval() time.Duration {
	if g.params.Interval > 0 {
		return g.params.Interval
	}
	return DefaultParams().Interval
}

// Reset initializes the session. The first board always puts food on the
// configured cell; restarts place it at random.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	sc, err := config.LoadSnake(configPath)
	if err != nil {
		sc = config.DefaultSnakeConfig()
	}
	g.params = ParamsFromConfig(sc)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.state = NewState(g.params)
	g.best = 0
	g.paused = false
	g.layout(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h
	cols := g.params.Width * 2
	g.board = core.NewRect(max((w-cols-2)/2, 0)+1, 2, cols, g.params.Height)
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if g.state.Status == StatusOver {
		if in.Has(core.ActionRestart) || in.Has(core.ActionConfirm) {
			g.state = Restart(g.params, g.rng)
			g.paused = false
		}
		return core.StepResult{State: g.State()}
	}

	if in.Has(core.ActionPause) && g.state.Status == StatusRunning {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	if d, ok := directionFrom(in); ok {
		g.state = Turn(g.state, d)
	}
	for _, c := range in.Clicks {
		if d, ok := g.clickDirection(c); ok {
			g.state = Turn(g.state, d)
		}
	}

	g.state = Tick(g.state, g.rng)
	if g.state.Status == StatusOver {
		g.best = max(g.best, g.state.Score)
	}
	return core.StepResult{State: g.State()}
}

func directionFrom(in core.InputFrame) (Point, bool) {
	switch {
	case in.Has(core.ActionUp):
		return DirUp, true
	case in.Has(core.ActionDown):
		return DirDown, true
	case in.Has(core.ActionLeft), in.Has(core.ActionAltLeft):
		return DirLeft, true
	case in.Has(core.ActionRight), in.Has(core.ActionAltRight):
		return DirRight, true
	}
	return DirNone, false
}

// clickDirection turns toward the side of the board that was clicked,
// measured from the board centre. Cells are two columns wide.
func (g *Game) clickDirection(c core.Click) (Point, bool) {
	cx, cy := g.board.Center()
	dx := (c.X - cx) / 2
	dy := c.Y - cy
	if dx == 0 && dy == 0 {
		return DirNone, false
	}
	if core.Abs(dx) >= core.Abs(dy) {
		if dx < 0 {
			return DirLeft, true
		}
		return DirRight, true
	}
	if dy < 0 {
		return DirUp, true
	}
	return DirDown, true
}

// Render draws the game to the screen.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.layout(dst.Width(), dst.Height())
	}

	dst.DrawText(1, 0, fmt.Sprintf("Snake  Score: %d  Best: %d  Length: %d", g.state.Score, g.best, len(g.state.Body)))

	if dst.Width() < g.board.W+2 || dst.Height() < g.board.Bottom()+1 {
		dst.DrawMessageBox("Window too small", "Resize to continue")
		return
	}

	dst.DrawBox(core.NewRect(g.board.X-1, g.board.Y-1, g.board.W+2, g.board.H+2))

	if f := g.state.Food; f.X >= 0 {
		dst.SetColor(g.board.X+f.X*2, g.board.Y+f.Y, '●', core.ColorBrightRed)
	}
	for i, seg := range g.state.Body {
		color := core.ColorGreen
		if i == 0 {
			color = core.ColorBrightGreen
		}
		x := g.board.X + seg.X*2
		dst.SetColor(x, g.board.Y+seg.Y, '█', color)
		dst.SetColor(x+1, g.board.Y+seg.Y, '█', color)
	}

	switch {
	case g.state.Won:
		dst.DrawMessageBox("You filled the board!", fmt.Sprintf("Score %d  R to play again", g.state.Score))
	case g.state.Status == StatusOver:
		dst.DrawMessageBox("Game Over", fmt.Sprintf("Score %d  R to play again", g.state.Score))
	case g.state.Status == StatusIdle:
		dst.DrawMessageBox("Snake", "Press an arrow key to start")
	case g.paused:
		dst.DrawMessageBox("Paused", "Press P to continue")
	}
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.Status == StatusOver,
		Paused:   g.paused,
	}
	if st.GameOver {
		st.Outcome = "GAME_OVER"
		if g.state.Won {
			st.Outcome = "WON"
		}
	}
	return st
}

// Board returns the current round state.
func (g *Game) Board() State {
	return g.state
}

// Best returns the best score of the session.
func (g *Game) Best() int {
	return g.best
}
