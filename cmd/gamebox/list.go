package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/gamebox/internal/registry"
	"github.com/vovakirdan/gamebox/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available games",
	Long: `Shows a list of all games registered in the box.

With --db, also shows how many rounds of each game the database holds.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No games available.")
		return
	}

	fmt.Println("Available games:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	played := playedRounds()

	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "ID", "Title", "Rounds")
	fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, "--", "-----", "------")
	for _, g := range games {
		rounds := "-"
		if st, ok := played[g.ID]; ok {
			rounds = humanize.Comma(int64(st.GamesCount))
		}
		fmt.Printf("  %-*s  %-16s  %s\n", maxIDLen, g.ID, g.Title, rounds)
	}

	fmt.Println()
	fmt.Println("Run 'gamebox play <id>' to play a game.")
}

// playedRounds reads per-game stats from --db. The in-memory default is
// always empty, so it is not opened.
func playedRounds() map[string]*storage.GameStats {
	if flagDBPath == "" {
		return nil
	}
	store := openStore(log.New(io.Discard))
	if store == nil {
		return nil
	}
	defer store.Close()

	stats, err := store.GetAllGamesStats()
	if err != nil {
		return nil
	}
	return stats
}
