package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/loop"
	"github.com/vovakirdan/gamebox/internal/multiplayer"
	"github.com/vovakirdan/gamebox/internal/registry"
	"github.com/vovakirdan/gamebox/internal/storage"
)

// GameModel runs one game: it owns the screen buffer, forwards input frames
// on every accepted tick and records finished rounds.
type GameModel struct {
	game       registry.Game
	screen     *core.Screen
	config     core.RuntimeConfig
	clock      *loop.Clock
	recorder   *multiplayer.Recorder
	inputFrame *core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	logger     *log.Logger
	standalone bool // back quits the program instead of returning to a lobby
	quitting   bool
	backToMenu bool
}

// saverFor keeps a nil store from becoming a non-nil interface.
func saverFor(store *storage.Store) multiplayer.MatchResultSaver {
	if store == nil {
		return nil
	}
	return store
}

// NewGameModel creates a game runner. The clock is shared with whoever
// drives the program so ticks of a previous game are never accepted.
func NewGameModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, clock *loop.Clock, session multiplayer.SessionID, logger *log.Logger) GameModel {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	frame := core.NewInputFrame()

	return GameModel{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		clock:      clock,
		recorder:   multiplayer.NewRecorder(game.ID(), session, saverFor(store), logger),
		inputFrame: &frame,
		keyMapper:  NewKeyMapper(),
		logger:     logger,
	}
}

// Init resets the game and starts a new clock generation at its pace.
func (m GameModel) Init() tea.Cmd {
	m.game.Reset(m.config)
	m.clock.SetInterval(registry.TickInterval(m.game, loop.RateInterval(m.config.TickRate)))
	m.clock.Start()
	m.logger.Info("game started", "game", m.game.ID(), "seed", m.config.Seed)
	return tickCmd(m.clock)
}

// Update handles messages.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		if c, ok := m.keyMapper.MapMouse(msg); ok {
			m.inputFrame.Click(c.X, c.Y)
		}
		return m, nil
	case tea.WindowSizeMsg:
		// Games re-layout on the next render; the round keeps going.
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil
	case TickMsg:
		return m.handleTick(loop.Tick(msg))
	}
	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.keyMapper.MapKeyToFrame(msg, m.inputFrame) {
		m.quitting = true
		m.clock.Stop()
		return m, tea.Quit
	}

	if m.inputFrame.Has(core.ActionBack) {
		m.backToMenu = true
		m.clock.Stop()
		m.logger.Info("left game", "game", m.game.ID(), "score", m.gameState.Score)
		if m.standalone {
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleTick steps the game once per accepted tick. Ticks of a stopped or
// superseded generation are dropped without rescheduling.
func (m GameModel) handleTick(t loop.Tick) (tea.Model, tea.Cmd) {
	if !m.clock.Accept(t) {
		return m, nil
	}

	result := m.game.Step(*m.inputFrame)
	m.gameState = result.State
	m.recorder.Observe(m.gameState)

	m.inputFrame.Clear()
	return m, tickCmd(m.clock)
}

// View renders the game.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// IsQuitting returns true if user requested to quit entirely.
func (m GameModel) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if user requested to go back to the lobby.
func (m GameModel) BackToMenu() bool {
	return m.backToMenu
}

// State returns the state after the last tick.
func (m GameModel) State() core.GameState {
	return m.gameState
}

// Run plays a single game until the player quits or backs out.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig, logger *log.Logger) error {
	clock := loop.NewClock(loop.RateInterval(cfg.TickRate))
	model := NewGameModel(game, store, cfg, &clock, multiplayer.NewSessionID(), logger)
	model.standalone = true

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(), // clicks become taps
	)

	_, err := p.Run()
	return err
}
