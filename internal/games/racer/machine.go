package racer

import (
	"fmt"
)

// Phase is the top-level state of a Machine.
type Phase string

const (
	PhaseMenu     Phase = "menu"
	PhasePlaying  Phase = "playing"
	PhaseGameOver Phase = "gameover"
)

// Command starts a round.
type Command struct {
	Mode       Mode
	Difficulty Difficulty
}

// Result is the end-of-round summary.
type Result struct {
	Outcome    Outcome
	Score      int
	Mode       Mode
	Difficulty Difficulty
	Ticks      uint64
}

// Machine owns one racer session: the current phase, the round state and
// the input queued since the last Advance. It is not safe for concurrent
// use; callers that enqueue input from another goroutine must serialize
// access themselves.
type Machine struct {
	params Params
	tiers  map[Difficulty]Tier
	rng    Rand

	phase      Phase
	mode       Mode
	difficulty Difficulty
	state      State
	pending    []Event

	best   int
	result Result
}

// NewMachine creates a machine in the menu phase with the normal tier
// selected. Missing tiers fall back to the built-in presets.
func NewMachine(p Params, tiers map[Difficulty]Tier, rng Rand) *Machine {
	merged := DefaultTiers()
	for d, t := range tiers {
		merged[d] = t
	}
	return &Machine{
		params:     p,
		tiers:      merged,
		rng:        rng,
		phase:      PhaseMenu,
		mode:       ModeSingle,
		difficulty: Normal,
	}
}

// Phase returns the current phase.
func (m *Machine) Phase() Phase { return m.phase }

// Mode returns the mode of the current or last round.
func (m *Machine) Mode() Mode { return m.mode }

// Difficulty returns the selected tier.
func (m *Machine) Difficulty() Difficulty { return m.difficulty }

// Best returns the best score of the session.
func (m *Machine) Best() int { return m.best }

// State returns the current round state.
func (m *Machine) State() State { return m.state }

// Params returns the arena parameters.
func (m *Machine) Params() Params { return m.params }

// Start begins a round from the menu. A malformed command is rejected with
// an error; a well-formed command outside the menu is ignored.
func (m *Machine) Start(cmd Command) error {
	if !cmd.Mode.Valid() {
		return fmt.Errorf("racer: start mode %d: %w", int(cmd.Mode), ErrInvalidMode)
	}
	d, err := ParseTier(string(cmd.Difficulty))
	if err != nil {
		return err
	}
	if m.phase != PhaseMenu {
		return nil
	}

	m.mode = cmd.Mode
	m.difficulty = d
	m.begin()
	return nil
}

// Restart replays the last mode and tier after a round ended.
func (m *Machine) Restart() {
	if m.phase != PhaseGameOver {
		return
	}
	m.begin()
}

// Menu returns to the menu after a round ended.
func (m *Machine) Menu() {
	if m.phase != PhaseGameOver {
		return
	}
	m.phase = PhaseMenu
	m.pending = nil
}

// SelectTier changes the tier. Only honoured in the menu.
func (m *Machine) SelectTier(d Difficulty) error {
	parsed, err := ParseTier(string(d))
	if err != nil {
		return err
	}
	if m.phase == PhaseMenu {
		m.difficulty = parsed
	}
	return nil
}

// KeyDown queues a key press for the next tick.
func (m *Machine) KeyDown(k Key) { m.enqueue(KeyDown(k)) }

// KeyUp queues a key release for the next tick.
func (m *Machine) KeyUp(k Key) { m.enqueue(KeyUp(k)) }

// Tap queues a touch nudge for the next tick.
func (m *Machine) Tap(z Zone) { m.enqueue(Tap(z)) }

func (m *Machine) enqueue(ev Event) {
	if m.phase != PhasePlaying {
		return
	}
	m.pending = append(m.pending, ev)
}

// Advance runs one tick while playing and reports whether the round is
// still running afterwards.
func (m *Machine) Advance() bool {
	if m.phase != PhasePlaying {
		return false
	}

	m.state = Tick(m.state, m.pending, m.rng)
	m.pending = m.pending[:0]

	if !m.state.Over {
		return true
	}

	m.phase = PhaseGameOver
	m.best = max(m.best, m.state.Score)
	m.result = Result{
		Outcome:    m.state.Outcome,
		Score:      m.state.Score,
		Mode:       m.mode,
		Difficulty: m.difficulty,
		Ticks:      m.state.Ticks,
	}
	return false
}

// Result returns the summary of the last finished round.
func (m *Machine) Result() (Result, bool) {
	return m.result, m.phase == PhaseGameOver
}

func (m *Machine) begin() {
	m.state = NewState(m.params, m.mode, m.tiers[m.difficulty])
	m.pending = nil
	m.result = Result{}
	m.phase = PhasePlaying
}
