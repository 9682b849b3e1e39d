package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gamebox/internal/config"
	"github.com/vovakirdan/gamebox/internal/games/memory"
	"github.com/vovakirdan/gamebox/internal/games/racer"
	"github.com/vovakirdan/gamebox/internal/games/snake"
	"github.com/vovakirdan/gamebox/internal/platform/tui"
	"github.com/vovakirdan/gamebox/internal/registry"
)

var (
	flagConfig     string
	flagDifficulty string
	flagMode       int
)

var playCmd = &cobra.Command{
	Use:   "play <game>",
	Short: "Play a game",
	Long: `Start playing the specified game.

Controls:
  Arrows     - Move (racer: player 2 in versus, player 1 solo)
  A/D        - Racer player 1
  Enter      - Confirm / flip / place mark
  Mouse      - Click cells, cards, or racer tap zones
  P          - Pause
  R          - Restart
  B/Esc      - Back
  Q/Ctrl+C   - Quit

Racer tiers:
  easy, normal, hard

Examples:
  gamebox play racer
  gamebox play racer --mode 2 --difficulty hard
  gamebox play snake --config ./my-snake.yaml
  gamebox play memory --config ./memory.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config (YAML or TOML)")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Racer tier: easy, normal, hard")
	playCmd.Flags().IntVar(&flagMode, "mode", 0, "Racer players preselected in the menu: 1 or 2")
}

// configureGames applies the play flags to the games before creation.
// The config path only applies to gameID; the others keep their defaults.
func configureGames(gameID string) error {
	if _, err := config.ParsePreset(flagDifficulty); err != nil {
		return err
	}
	if flagMode != 0 && !racer.Mode(flagMode).Valid() {
		return fmt.Errorf("invalid --mode %d: %w", flagMode, racer.ErrInvalidMode)
	}

	racer.SetDifficultyPreset(flagDifficulty)
	racer.SetMode(racer.Mode(flagMode))

	switch gameID {
	case "racer":
		racer.SetConfigPath(flagConfig)
	case "snake":
		snake.SetConfigPath(flagConfig)
	case "memory":
		memory.SetConfigPath(flagConfig)
	}
	return nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'gamebox list' to see available games.")
		return fmt.Errorf("unknown game %q", gameID)
	}
	if err := configureGames(gameID); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(false)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	if err := tui.Run(game, store, runtimeConfig(), logger); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
