package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gamebox/internal/registry"
)

var scoresCmd = &cobra.Command{
	Use:   "scores <game>",
	Short: "Show high scores for a game",
	Long: `Display the top 10 high scores and the latest rounds of a game.

Scores live in memory unless --db names a file, so this command is
useful with a database file shared with play, menu, serve or web.

Examples:
  gamebox scores snake --db ~/.gamebox/scores.db
  gamebox scores racer --db ~/.gamebox/scores.db --clear
  gamebox scores tictactoe --db ./scores.db`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

var flagClear bool

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all scores and rounds of the game")
}

func runScores(cmd *cobra.Command, args []string) error {
	gameID := args[0]

	if !registry.Exists(gameID) {
		fmt.Fprintln(os.Stderr, "Run 'gamebox list' to see available games.")
		return fmt.Errorf("unknown game %q", gameID)
	}
	game, err := registry.Create(gameID)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	if hint := sessionOnlyHint(flagDBPath); hint != "" {
		fmt.Fprintln(os.Stderr, hint)
	}

	store := openStore(logger)
	if store == nil {
		return fmt.Errorf("no scores database")
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearScores(gameID); err != nil {
			return err
		}
		fmt.Printf("Cleared scores for %s.\n", game.Title())
		return nil
	}

	scores, err := store.TopScores(gameID, 10)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
	} else {
		fmt.Printf("  %-4s  %-10s  %s\n", "Rank", "Score", "When")
		fmt.Printf("  %-4s  %-10s  %s\n", "----", "-----", "----")
		for i, entry := range scores {
			fmt.Printf("  %-4d  %-10s  %s\n", i+1, humanize.Comma(int64(entry.Score)), humanize.Time(entry.CreatedAt))
		}
	}

	stats, err := store.GetGameStats(gameID)
	if err != nil {
		return err
	}
	if stats.GamesCount > 0 {
		fmt.Println()
		fmt.Printf("Played %s rounds, average score %.1f, last %s\n",
			humanize.Comma(int64(stats.GamesCount)), stats.AvgScore, humanize.Time(stats.LastPlayed))
	}

	counts, err := store.OutcomeCounts(gameID)
	if err != nil {
		return err
	}
	if len(counts) > 0 {
		outcomes := make([]string, 0, len(counts))
		for o := range counts {
			outcomes = append(outcomes, o)
		}
		sort.Strings(outcomes)

		parts := make([]string, 0, len(outcomes))
		for _, o := range outcomes {
			parts = append(parts, fmt.Sprintf("%s %d", o, counts[o]))
		}
		fmt.Println()
		fmt.Printf("Rounds: %s\n", strings.Join(parts, ", "))
	}

	recent, err := store.RecentMatches(gameID, 5)
	if err != nil {
		return err
	}
	if len(recent) > 0 {
		fmt.Println()
		fmt.Println("Latest rounds:")
		for _, m := range recent {
			tier := m.Tier
			if tier == "" {
				tier = "-"
			}
			fmt.Printf("  %-10s  %-6s  %-6s  %8s  %s\n",
				m.Outcome, m.Mode, tier, humanize.Comma(int64(m.Score)), humanize.Time(m.CreatedAt))
		}
	}
	return nil
}

// sessionOnlyHint explains why a fresh process sees no scores without --db.
func sessionOnlyHint(dbPath string) string {
	if dbPath != "" {
		return ""
	}
	return "Scores are session-only; pass --db to keep them and read them back."
}
