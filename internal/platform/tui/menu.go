package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/registry"
	"github.com/vovakirdan/gamebox/internal/storage"
)

// lobbyOrder is the display order of known games; anything else registered
// is listed after them.
var lobbyOrder = []string{"racer", "snake", "tictactoe", "memory"}

var lobbyBlurbs = map[string]string{
	"racer":     "dodge traffic, solo or two on one keyboard",
	"snake":     "eat, grow, don't bite yourself",
	"tictactoe": "X and O, pass the keyboard",
	"memory":    "find the eight pairs",
}

var (
	lobbyTitleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	lobbySelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57"))
	lobbyDimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// MenuItem represents a selectable game in the lobby.
type MenuItem struct {
	GameID string
	Title  string
	Blurb  string
	Best   int
}

// MenuModel is the Bubble Tea model for the game lobby.
type MenuModel struct {
	items          []MenuItem
	cursor         int
	width          int
	height         int
	config         core.RuntimeConfig
	keyMapper      *KeyMapper
	quitting       bool
	selected       *MenuItem // Set when user selects a game
	openScoreboard bool      // True if user pressed Tab for scoreboard
}

// lobbyItems lists the registered games in lobby order.
func lobbyItems(store *storage.Store) []MenuItem {
	byID := make(map[string]registry.GameInfo)
	for _, g := range registry.List() {
		byID[g.ID] = g
	}

	var items []MenuItem
	add := func(g registry.GameInfo) {
		item := MenuItem{GameID: g.ID, Title: g.Title, Blurb: lobbyBlurbs[g.ID]}
		if store != nil {
			item.Best, _ = store.HighScore(g.ID)
		}
		items = append(items, item)
		delete(byID, g.ID)
	}
	for _, id := range lobbyOrder {
		if g, ok := byID[id]; ok {
			add(g)
		}
	}
	for _, g := range registry.List() {
		if _, ok := byID[g.ID]; ok {
			add(g)
		}
	}
	return items
}

// NewMenuModel creates a new lobby model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig) MenuModel {
	return MenuModel{
		items:     lobbyItems(store),
		width:     cfg.ScreenW,
		height:    cfg.ScreenH,
		config:    cfg,
		keyMapper: NewKeyMapper(),
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if c, ok := m.keyMapper.MapMouse(msg); ok {
			if i, hit := m.itemAt(c.Y); hit {
				m.cursor = i
				selected := m.items[i]
				m.selected = &selected
			}
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true
	}

	return m, nil
}

// itemRow is the first screen row of the game list.
const itemRow = 5

// itemAt maps a clicked row to a game. Every game takes two rows.
func (m MenuModel) itemAt(y int) (int, bool) {
	if y < itemRow {
		return 0, false
	}
	i := (y - itemRow) / 2
	return i, i < len(m.items)
}

// View renders the lobby.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(lobbyTitleStyle.Render("G A M E B O X"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select a game", m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := fmt.Sprintf("  %-14s", item.Title)
		if item.Best > 0 {
			line += fmt.Sprintf(" best %d", item.Best)
		}
		if i == m.cursor {
			line = lobbySelectedStyle.Render("> " + strings.TrimPrefix(line, "  "))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
		b.WriteString(centerText(lobbyDimStyle.Render(item.Blurb), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Enter: Select  |  Tab: Scores  |  B/Esc: Back  |  Q: Quit"
	b.WriteString(centerText(lobbyDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width. Styled text is measured
// without its escape sequences.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}
