// Package memory implements a 16-card memory match.
package memory

import (
	"fmt"
	"math/rand"
	"unicode/utf8"

	"github.com/vovakirdan/gamebox/internal/config"
	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/registry"
)

const (
	cols  = 4
	cardW = 5
	cardH = 3
	gapX  = 1
)

// configPath stores the custom config path set via CLI
var configPath string

// SetConfigPath sets the custom config path for loading.
func SetConfigPath(path string) {
	configPath = path
}

// ParamsFromConfig converts a loaded configuration into table rules. The
// flip back delay is converted to ticks at tickRate.
func ParamsFromConfig(cfg config.MemoryConfig, tickRate int) Params {
	p := DefaultParams()
	if len(cfg.Symbols) > 0 {
		p.Symbols = cfg.Symbols
	}
	if tickRate <= 0 {
		tickRate = 60
	}
	if cfg.FlipBackMS > 0 {
		p.LockTicks = max(cfg.FlipBackMS*tickRate/1000, 1)
	}
	p.MatchPoints = cfg.MatchPoints
	p.MissPenalty = cfg.MissPenalty
	return p
}

// Game implements the registry adapter.
type Game struct {
	params  Params
	rng     *rand.Rand
	state   State
	cursor  int
	best    int
	originX int
	originY int
	screenW int
	screenH int
}

// New creates a new memory game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("memory", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "memory"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Memory Match"
}

// Reset loads the rules and deals a fresh table.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	mc, err := config.LoadMemory(configPath)
	if err != nil {
		mc = config.DefaultMemoryConfig()
	}
	g.params = ParamsFromConfig(mc, cfg.TickRate)
	g.rng = rand.New(rand.NewSource(cfg.Seed))
	g.best = 0
	g.deal()
	g.layout(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) deal() {
	g.state = Shuffle(g.params, g.rng)
	g.cursor = 0
}

func (g *Game) rows() int {
	return (len(g.state.Cards) + cols - 1) / cols
}

func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h
	gridW := cols*(cardW+gapX) - gapX
	g.originX = max((w-gridW)/2, 0)
	g.originY = 3
}

func (g *Game) cardRect(i int) core.Rect {
	return core.NewRect(g.originX+(i%cols)*(cardW+gapX), g.originY+(i/cols)*cardH, cardW, cardH)
}

// Step applies input, then advances the flip back timer.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) || (g.state.Won && in.Has(core.ActionConfirm)) {
		g.deal()
		return core.StepResult{State: g.State()}
	}

	n := len(g.state.Cards)
	if n > 0 {
		switch {
		case in.Has(core.ActionUp):
			g.cursor = (g.cursor - cols + n) % n
		case in.Has(core.ActionDown):
			g.cursor = (g.cursor + cols) % n
		case in.Has(core.ActionLeft), in.Has(core.ActionAltLeft):
			g.cursor = (g.cursor - 1 + n) % n
		case in.Has(core.ActionRight), in.Has(core.ActionAltRight):
			g.cursor = (g.cursor + 1) % n
		}
	}

	if in.Has(core.ActionConfirm) {
		g.state = Choose(g.state, g.cursor)
	}
	for _, c := range in.Clicks {
		for i := range g.state.Cards {
			if g.cardRect(i).Contains(c.X, c.Y) {
				g.cursor = i
				g.state = Choose(g.state, i)
				break
			}
		}
	}

	g.state = Tick(g.state)
	if g.state.Won {
		g.best = max(g.best, g.state.Score)
	}
	return core.StepResult{State: g.State()}
}

// Render draws the table.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.layout(dst.Width(), dst.Height())
	}

	dst.DrawTextCentered(0, "MEMORY MATCH")
	dst.DrawTextCentered(1, fmt.Sprintf("Score: %d  Best: %d  Turns: %d  Pairs: %d/%d",
		g.state.Score, g.best, g.state.Turns, g.state.Matched()/2, len(g.state.Cards)/2))

	if dst.Height() < g.originY+g.rows()*cardH+1 {
		dst.DrawMessageBox("Window too small", "Resize to continue")
		return
	}

	for i, card := range g.state.Cards {
		r := g.cardRect(i)
		dst.DrawBox(r)
		cx, cy := r.X+cardW/2, r.Y+1
		switch {
		case card.Matched:
			g.drawSymbol(dst, cx, cy, card.Symbol, core.ColorBrightYellow)
		case g.state.FaceUp(i):
			g.drawSymbol(dst, cx, cy, card.Symbol, core.ColorBrightWhite)
		default:
			dst.SetColor(cx-1, cy, '▒', core.ColorMagenta)
			dst.SetColor(cx, cy, '▒', core.ColorMagenta)
			dst.SetColor(cx+1, cy, '▒', core.ColorMagenta)
		}
		if i == g.cursor {
			dst.SetColor(r.X, cy, '▶', core.ColorBrightCyan)
		}
	}

	if g.state.Won {
		dst.DrawMessageBox("All pairs found!", fmt.Sprintf("%d turns, score %d  R to reshuffle", g.state.Turns, g.state.Score))
	}
}

func (g *Game) drawSymbol(dst *core.Screen, x, y int, sym string, c core.Color) {
	r, _ := utf8.DecodeRuneInString(sym)
	dst.SetColor(x, y, r, c)
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	st := core.GameState{
		Score:    g.state.Score,
		GameOver: g.state.Won,
	}
	if g.state.Won {
		st.Outcome = "WON"
	}
	return st
}

// Table returns the current table.
func (g *Game) Table() State {
	return g.state
}

// Best returns the best score of the session.
func (g *Game) Best() int {
	return g.best
}
