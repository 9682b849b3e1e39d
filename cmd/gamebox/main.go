// gamebox is a small game collection for the terminal, remote SSH play and
// browser clients.
//
// Usage:
//
//	gamebox list              - List available games
//	gamebox play <game>       - Play a game
//	gamebox menu              - Start the lobby to pick games interactively
//	gamebox serve             - Start SSH server for remote play
//	gamebox web               - Serve the racer to browsers over WebSocket
//	gamebox scores <game>     - Show high scores for a game
//	gamebox sim racer|snake   - Run a headless round and print the result
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Keep scores in a file (default: in memory)
//	--log-level <level> - debug, info, warn or error
//	--log-file <path>   - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gamebox/internal/core"
	"github.com/vovakirdan/gamebox/internal/storage"

	// Import games to register them
	_ "github.com/vovakirdan/gamebox/internal/games/memory"
	_ "github.com/vovakirdan/gamebox/internal/games/racer"
	_ "github.com/vovakirdan/gamebox/internal/games/snake"
	_ "github.com/vovakirdan/gamebox/internal/games/tictactoe"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagLogFile  string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gamebox",
	Short: "gamebox - Small arcade games for terminals and browsers",
	Long: `gamebox bundles a lane racer, snake, tic-tac-toe and memory match.

Available commands:
  list     - Show all available games
  play     - Play a specific game directly
  menu     - Interactive lobby
  serve    - Start SSH server for remote play
  web      - Serve the racer over WebSocket
  scores   - View high scores
  sim      - Headless deterministic run

Scores are kept for the current session unless --db names a file.

Examples:
  gamebox list
  gamebox play racer --mode 2 --difficulty hard
  gamebox menu --db ~/.gamebox/scores.db
  gamebox serve --ssh :2222
  gamebox web --addr :8080
  gamebox sim snake --seed 42`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to scores database (empty = in memory)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(webCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simCmd)
}

// newLogger builds the process logger. Full-screen commands pass
// toStderr=false: without --log-file their logs are discarded, since
// writing to the terminal would corrupt the alternate screen.
func newLogger(toStderr bool) (*log.Logger, func(), error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid --log-level: %w", err)
	}

	var w io.Writer = io.Discard
	closeFn := func() {}
	switch {
	case flagLogFile != "":
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case toStderr:
		w = os.Stderr
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          "gamebox",
		Level:           level,
	})
	return logger, closeFn, nil
}

// openStore opens the score store. Failure is not fatal: games still run
// without persistence.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database", "path", flagDBPath, "err", err)
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		return nil
	}
	return store
}

// runtimeConfig reads the terminal size, falling back to 80x24.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     seed,
	}
}
