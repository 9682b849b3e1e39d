// Package tictactoe implements two-player tic-tac-toe on one keyboard.
package tictactoe

import (
	"fmt"

	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/registry"
)

const (
	cellW  = 4 // cell plus its right separator
	cellH  = 2 // cell plus its bottom separator
	boardW = 3*cellW - 1
	boardH = 3*cellH - 1
)

// Tally counts decided games in a session.
type Tally struct {
	X, O, Draws int
}

// Game implements the registry adapter.
type Game struct {
	state   State
	cursor  int
	tally   Tally
	boardX  int
	boardY  int
	screenW int
	screenH int
}

// New creates a new tic-tac-toe game.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("tictactoe", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	return "tictactoe"
}

// Title returns the display name.
func (g *Game) Title() string {
	return "Tic-Tac-Toe"
}

// Reset starts a new session.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.state = NewState()
	g.cursor = 4
	g.tally = Tally{}
	g.layout(cfg.ScreenW, cfg.ScreenH)
}

func (g *Game) layout(w, h int) {
	g.screenW, g.screenH = w, h
	g.boardX = max((w-boardW)/2, 0)
	g.boardY = 4
}

// Step applies one frame of input. Nothing happens without input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) || (g.state.Over() && in.Has(core.ActionConfirm)) {
		g.state = NewState()
		return core.StepResult{State: g.State()}
	}

	row, col := g.cursor/3, g.cursor%3
	switch {
	case in.Has(core.ActionUp):
		row = (row + 2) % 3
	case in.Has(core.ActionDown):
		row = (row + 1) % 3
	case in.Has(core.ActionLeft), in.Has(core.ActionAltLeft):
		col = (col + 2) % 3
	case in.Has(core.ActionRight), in.Has(core.ActionAltRight):
		col = (col + 1) % 3
	}
	g.cursor = row*3 + col

	if in.Has(core.ActionConfirm) {
		g.play(g.cursor)
	}
	for _, c := range in.Clicks {
		if cell, ok := g.cellAt(c.X, c.Y); ok {
			g.cursor = cell
			g.play(cell)
		}
	}
	return core.StepResult{State: g.State()}
}

func (g *Game) play(cell int) {
	wasOver := g.state.Over()
	g.state = Play(g.state, cell)
	if wasOver || !g.state.Over() {
		return
	}
	switch g.state.Winner {
	case X:
		g.tally.X++
	case O:
		g.tally.O++
	default:
		g.tally.Draws++
	}
}

// cellAt maps a screen position to a board cell. Separators map to nothing.
func (g *Game) cellAt(x, y int) (int, bool) {
	dx, dy := x-g.boardX, y-g.boardY
	if dx < 0 || dy < 0 || dx >= boardW || dy >= boardH {
		return 0, false
	}
	if dx%cellW == cellW-1 || dy%cellH == cellH-1 {
		return 0, false
	}
	return (dy/cellH)*3 + dx/cellW, true
}

// Render draws the board, the cursor and the result line.
func (g *Game) Render(dst *core.Screen) {
	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.layout(dst.Width(), dst.Height())
	}

	dst.DrawTextCentered(1, "TIC-TAC-TOE")
	dst.DrawTextCentered(2, fmt.Sprintf("X %d   O %d   Draws %d", g.tally.X, g.tally.O, g.tally.Draws))

	for i := 1; i < 3; i++ {
		dst.DrawHLine(g.boardX, g.boardY+i*cellH-1, boardW, '─')
		dst.DrawVLine(g.boardX+i*cellW-1, g.boardY, boardH, '│')
	}
	for i := 1; i < 3; i++ {
		for j := 1; j < 3; j++ {
			dst.Set(g.boardX+i*cellW-1, g.boardY+j*cellH-1, '┼')
		}
	}

	for cell, m := range g.state.Board {
		x := g.boardX + (cell%3)*cellW
		y := g.boardY + (cell/3)*cellH
		color := core.ColorDefault
		switch {
		case g.state.OnLine(cell):
			color = core.ColorBrightGreen
		case m == X:
			color = core.ColorBrightCyan
		case m == O:
			color = core.ColorBrightMagenta
		}
		if cell == g.cursor && !g.state.Over() {
			dst.SetColor(x, y, '[', core.ColorYellow)
			dst.SetColor(x+2, y, ']', core.ColorYellow)
		}
		dst.SetColor(x+1, y, []rune(m.String())[0], color)
	}

	status := fmt.Sprintf("Player %s to move", g.state.Next)
	switch {
	case g.state.Winner != Empty:
		status = fmt.Sprintf("Player %s wins!  Enter or R to play again", g.state.Winner)
	case g.state.Draw:
		status = "Draw!  Enter or R to play again"
	}
	dst.DrawTextCentered(g.boardY+boardH+1, status)
}

// State returns the current game state. Tic-tac-toe keeps no score; the
// outcome names the winning mark.
func (g *Game) State() core.GameState {
	st := core.GameState{
		GameOver: g.state.Over(),
		Detail:   "versus",
	}
	switch {
	case g.state.Winner != Empty:
		st.Outcome = g.state.Winner.String()
	case g.state.Draw:
		st.Outcome = "DRAW"
	}
	return st
}

// Board returns the current game.
func (g *Game) Board() State {
	return g.state
}

// Tally returns the session results.
func (g *Game) Tally() Tally {
	return g.tally
}
