package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gamebox/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the lobby with a game picker",
	Long: `Start gamebox in interactive lobby mode.

Use arrow keys or the mouse to pick a game, Enter to start it.
B/Esc in a game returns to the lobby; Tab opens the scoreboard.

Controls:
  Up/Down/j/k  - Navigate lobby
  Enter/Space  - Select game
  Tab          - Scoreboard
  Q            - Quit

Examples:
  gamebox menu
  gamebox menu --fps 30
  gamebox menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Racer tier preselected in its menu")
	menuCmd.Flags().IntVar(&flagMode, "mode", 0, "Racer players preselected in its menu: 1 or 2")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := configureGames(""); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.RunMenu(store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running lobby: %w", err)
	}
	return nil
}
