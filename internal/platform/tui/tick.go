// Package tui provides the Bubble Tea integration for the game box.
// It handles the terminal UI loop, input mapping, and game orchestration.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/gamebox/internal/loop"
)

// TickMsg is sent to trigger a game simulation tick. It carries the clock
// generation that scheduled it.
type TickMsg loop.Tick

// tickCmd schedules the next tick of the clock's current generation.
func tickCmd(clock *loop.Clock) tea.Cmd {
	gen := clock.Generation()
	return tea.Tick(clock.Interval(), func(t time.Time) tea.Msg {
		return TickMsg{Gen: gen, Time: t}
	})
}
