package racer

import (
	"fmt"
	"math"

	"github.com/vovakirdan/gamebox/internal/core"
)

// Visual characters for rendering
const (
	RockChar    = '▓'
	BarrierChar = '▒'
	CarChar     = '█'
	WreckChar   = 'x'
	MidlineChar = '┊'
)

const (
	hudRows    = 2
	footerRows = 1
)

// layout maps arena pixels to screen cells. The inner area excludes the border.
type layout struct {
	x0, y0 int
	cols   int
	rows   int
	arenaW float64
	arenaH float64
}

// computeLayout fits the arena below the HUD, keeping its aspect ratio with
// terminal cells counted as twice as tall as they are wide.
func computeLayout(p Params, screenW, screenH int) layout {
	rows := max(screenH-hudRows-footerRows-2, 4)
	cols := int(math.Round(float64(rows) * p.ArenaW / p.ArenaH * 2))
	cols = max(min(cols, screenW-2), 8)

	return layout{
		x0:     max((screenW-cols-2)/2, 0) + 1,
		y0:     hudRows + 1,
		cols:   cols,
		rows:   rows,
		arenaW: p.ArenaW,
		arenaH: p.ArenaH,
	}
}

// cell converts an arena rectangle to the screen cells it covers, clipped to the arena.
func (l layout) cell(r core.RectF) (core.Rect, bool) {
	c0 := int(math.Floor(r.X / l.arenaW * float64(l.cols)))
	c1 := int(math.Ceil(r.Right() / l.arenaW * float64(l.cols)))
	r0 := int(math.Floor(r.Y / l.arenaH * float64(l.rows)))
	r1 := int(math.Ceil(r.Bottom() / l.arenaH * float64(l.rows)))

	c0, c1 = max(c0, 0), min(c1, l.cols)
	r0, r1 = max(r0, 0), min(r1, l.rows)
	if c0 >= c1 || r0 >= r1 {
		return core.Rect{}, false
	}
	return core.NewRect(l.x0+c0, l.y0+r0, c1-c0, r1-r0), true
}

// zoneAt maps a click inside the arena to a tap zone: quarters in versus
// mode, halves in single mode.
func (l layout) zoneAt(c core.Click, mode Mode) (Zone, bool) {
	inner := core.NewRect(l.x0, l.y0, l.cols, l.rows)
	if !inner.Contains(c.X, c.Y) {
		return "", false
	}
	frac := float64(c.X-l.x0) / float64(l.cols)

	if mode != ModeVersus {
		if frac < 0.5 {
			return ZoneP1Left, true
		}
		return ZoneP1Right, true
	}
	zones := [4]Zone{ZoneP1Left, ZoneP1Right, ZoneP2Left, ZoneP2Right}
	return zones[core.Clamp(int(frac*4), 0, 3)], true
}

// Render draws the current game state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	params := g.machine.Params()
	if dst.Width() != g.screenW || dst.Height() != g.screenH {
		g.screenW, g.screenH = dst.Width(), dst.Height()
		g.layout = computeLayout(params, g.screenW, g.screenH)
	}
	l := g.layout
	snap := g.machine.Snapshot()

	dst.DrawText(1, 0, fmt.Sprintf("Score: %d  Best: %d", snap.Score, snap.Best))
	info := fmt.Sprintf("%s  %s  speed %.1f", snap.Mode, snap.Difficulty, snap.Speed)
	dst.DrawText(max(dst.Width()-len(info)-1, 0), 0, info)

	dst.DrawBox(core.NewRect(l.x0-1, l.y0-1, l.cols+2, l.rows+2))

	if snap.Phase == PhaseMenu {
		g.renderMenu(dst, snap)
		return
	}

	if snap.Mode == ModeVersus {
		dst.DrawVLineColor(l.x0+l.cols/2, l.y0, l.rows, MidlineChar, core.ColorGray)
	}

	for _, o := range g.machine.State().Obstacles {
		r, ok := l.cell(o.Rect())
		if !ok {
			continue
		}
		if o.Kind == KindRock {
			dst.DrawRectColor(r, RockChar, core.ColorGray)
		} else {
			dst.DrawRectColor(r, BarrierChar, core.ColorOrange)
		}
	}

	colors := [2]core.Color{core.ColorBrightRed, core.ColorBrightCyan}
	for i, p := range snap.Players {
		r, ok := l.cell(CarRect(params, p.X))
		if !ok {
			continue
		}
		if p.Alive {
			dst.DrawRectColor(r, CarChar, colors[i])
		} else {
			dst.DrawRectColor(r, WreckChar, core.ColorGray)
		}
	}

	footer := "A/D or ←/→ steer"
	if snap.Mode == ModeVersus {
		footer = "P1: A/D   P2: ←/→   click lanes to nudge"
	}

	if snap.Phase == PhaseGameOver {
		dst.DrawMessageBox(outcomeTitle(snap.Outcome), fmt.Sprintf("Score %d  R restart  Enter menu", snap.Score))
		footer = "R restart  Enter menu  B lobby"
	}
	dst.DrawTextCentered(dst.Height()-1, footer)
}

func (g *Game) renderMenu(dst *core.Screen, snap Snapshot) {
	mid := g.layout.y0 + g.layout.rows/2 - 3
	dst.DrawTextCentered(mid, "LANE RACER")

	single, versus := "  1 Player ", "  2 Players"
	if g.cursor == ModeVersus {
		versus = "> 2 Players"
	} else {
		single = "> 1 Player "
	}
	dst.DrawTextCentered(mid+2, single)
	dst.DrawTextCentered(mid+3, versus)
	dst.DrawTextCentered(mid+5, fmt.Sprintf("< %s >", snap.Difficulty))
	dst.DrawTextCentered(dst.Height()-1, "↑/↓ players  ←/→ difficulty  Enter start")
}

func outcomeTitle(o Outcome) string {
	switch o {
	case OutcomeDraw:
		return "DRAW"
	case OutcomeP1:
		return "PLAYER 1 WINS"
	case OutcomeP2:
		return "PLAYER 2 WINS"
	default:
		return "GAME OVER"
	}
}
