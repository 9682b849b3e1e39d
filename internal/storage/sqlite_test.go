package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/gamebox/internal/multiplayer"
)

func openMemory(t *testing.T) *Store {
	t.Helper()
	store, err := Open("")
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreOpenFile(t *testing.T) {
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "subdir", "deep", "test.db")

	store, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() with nested path failed: %v", err)
	}
	if _, err := store.SaveScore("snake", 40); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Fatal("Database file was not created in nested directory")
	}

	reopened, err := Open(dbPath)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer reopened.Close()
	if high, _ := reopened.HighScore("snake"); high != 40 {
		t.Errorf("HighScore() after reopen = %d, expected 40", high)
	}
}

func TestStoreMemoryIsSessionOnly(t *testing.T) {
	first := openMemory(t)
	first.SaveScore("racer", 500)

	second := openMemory(t)
	if high, _ := second.HighScore("racer"); high != 0 {
		t.Errorf("a new in-memory store should start empty, got %d", high)
	}
	if high, _ := first.HighScore("racer"); high != 500 {
		t.Errorf("HighScore() = %d, expected 500", high)
	}
}

func TestStoreSaveAndRetrieve(t *testing.T) {
	store := openMemory(t)

	for _, s := range []int{100, 50, 200} {
		if _, err := store.SaveScore("racer", s); err != nil {
			t.Fatalf("SaveScore() failed: %v", err)
		}
	}
	store.SaveScore("snake", 500)

	scores, err := store.TopScores("racer", 10)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("Expected 3 scores, got %d", len(scores))
	}
	for i, want := range []int{200, 100, 50} {
		if scores[i].Score != want {
			t.Errorf("scores[%d] = %d, expected %d", i, scores[i].Score, want)
		}
	}

	snakeScores, _ := store.TopScores("snake", 10)
	if len(snakeScores) != 1 {
		t.Errorf("Expected 1 snake score, got %d", len(snakeScores))
	}
}

func TestStoreTopScoresLimit(t *testing.T) {
	store := openMemory(t)
	for i := 0; i < 5; i++ {
		store.SaveScore("test", (i+1)*100)
	}

	scores, err := store.TopScores("test", 3)
	if err != nil {
		t.Fatalf("TopScores() failed: %v", err)
	}
	if len(scores) != 3 || scores[0].Score != 500 || scores[2].Score != 300 {
		t.Errorf("Scores not in expected order: %v", scores)
	}
}

func TestStoreHighScore(t *testing.T) {
	store := openMemory(t)

	high, err := store.HighScore("memory")
	if err != nil {
		t.Fatalf("HighScore() failed: %v", err)
	}
	if high != 0 {
		t.Errorf("Expected high score of 0 for empty game, got %d", high)
	}

	store.SaveScore("memory", 100)
	store.SaveScore("memory", 300)
	store.SaveScore("memory", 200)

	if high, _ = store.HighScore("memory"); high != 300 {
		t.Errorf("Expected high score of 300, got %d", high)
	}
}

func TestStoreSaveMatchResult(t *testing.T) {
	store := openMemory(t)

	res := multiplayer.MatchResultData{
		MatchID:    "m-1",
		GameID:     "racer",
		Mode:       "versus",
		Tier:       "hard",
		Outcome:    "P2",
		Score:      120,
		DurationMS: 2500,
	}
	if err := store.SaveMatchResult(res); err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}

	got, err := store.MatchByID("m-1")
	if err != nil || got == nil {
		t.Fatalf("MatchByID() = %v, %v", got, err)
	}
	if got.Mode != "versus" || got.Tier != "hard" || got.Outcome != "P2" || got.Score != 120 {
		t.Errorf("MatchByID() = %+v", got)
	}
	if got.Duration != 2500*time.Millisecond {
		t.Errorf("Duration = %v, expected 2.5s", got.Duration)
	}
	if high, _ := store.HighScore("racer"); high != 120 {
		t.Errorf("a match should also feed the leaderboard, HighScore() = %d", high)
	}

	if err := store.SaveMatchResult(res); err == nil {
		t.Error("saving the same match ID twice should fail")
	}
	if high, _ := store.TopScores("racer", 10); len(high) != 1 {
		t.Errorf("a failed save must not leave a score row, got %d", len(high))
	}
}

func TestStoreZeroScoreSkipsLeaderboard(t *testing.T) {
	store := openMemory(t)

	err := store.SaveMatchResult(multiplayer.MatchResultData{MatchID: "t-1", GameID: "tictactoe", Mode: "versus", Outcome: "X"})
	if err != nil {
		t.Fatalf("SaveMatchResult() failed: %v", err)
	}
	if scores, _ := store.TopScores("tictactoe", 10); len(scores) != 0 {
		t.Errorf("zero scores should not be ranked, got %v", scores)
	}

	counts, err := store.OutcomeCounts("tictactoe")
	if err != nil || counts["X"] != 1 {
		t.Errorf("OutcomeCounts() = %v, %v", counts, err)
	}
}

func TestStoreRecentMatches(t *testing.T) {
	store := openMemory(t)
	for i := 0; i < 5; i++ {
		store.SaveMatchResult(multiplayer.MatchResultData{
			MatchID: fmt.Sprintf("r-%d", i),
			GameID:  "racer",
			Outcome: "GAME_OVER",
			Score:   i * 10,
		})
	}
	store.SaveMatchResult(multiplayer.MatchResultData{MatchID: "s-1", GameID: "snake", Outcome: "GAME_OVER"})

	recent, err := store.RecentMatches("racer", 3)
	if err != nil {
		t.Fatalf("RecentMatches() failed: %v", err)
	}
	if len(recent) != 3 || recent[0].MatchID != "r-4" {
		t.Errorf("RecentMatches() = %+v", recent)
	}
	if recent[0].Mode != "solo" {
		t.Errorf("missing mode should default to solo, got %q", recent[0].Mode)
	}

	all, _ := store.RecentMatches("", 0)
	if len(all) != 6 || all[0].GameID != "snake" {
		t.Errorf("RecentMatches(all) returned %d rows", len(all))
	}

	if m, err := store.MatchByID("missing"); m != nil || err != nil {
		t.Errorf("MatchByID(missing) = %v, %v", m, err)
	}
}

func TestStoreClearScores(t *testing.T) {
	store := openMemory(t)

	store.SaveScore("racer", 100)
	store.SaveMatchResult(multiplayer.MatchResultData{MatchID: "a", GameID: "racer", Outcome: "GAME_OVER", Score: 200})
	store.SaveScore("snake", 300)

	if err := store.ClearScores("racer"); err != nil {
		t.Fatalf("ClearScores() failed: %v", err)
	}

	if scores, _ := store.TopScores("racer", 10); len(scores) != 0 {
		t.Errorf("Expected 0 racer scores after clear, got %d", len(scores))
	}
	if recent, _ := store.RecentMatches("racer", 10); len(recent) != 0 {
		t.Errorf("Expected 0 racer matches after clear, got %d", len(recent))
	}
	if scores, _ := store.TopScores("snake", 10); len(scores) != 1 {
		t.Error("snake scores should not be affected by clearing racer")
	}
}

func TestStoreGameStats(t *testing.T) {
	store := openMemory(t)
	for i, s := range []int{10, 30, 20} {
		store.SaveMatchResult(multiplayer.MatchResultData{
			MatchID: fmt.Sprintf("g-%d", i),
			GameID:  "snake",
			Outcome: "GAME_OVER",
			Score:   s,
		})
	}

	stats, err := store.GetGameStats("snake")
	if err != nil {
		t.Fatalf("GetGameStats() failed: %v", err)
	}
	if stats.GamesCount != 3 || stats.HighScore != 30 || stats.TotalScore != 60 || stats.AvgScore != 20 {
		t.Errorf("GetGameStats() = %+v", stats)
	}

	empty, err := store.GetGameStats("memory")
	if err != nil || empty.GamesCount != 0 || !empty.LastPlayed.IsZero() {
		t.Errorf("GetGameStats(empty) = %+v, %v", empty, err)
	}

	all, err := store.GetAllGamesStats()
	if err != nil {
		t.Fatalf("GetAllGamesStats() failed: %v", err)
	}
	if len(all) != 1 || all["snake"].HighScore != 30 {
		t.Errorf("GetAllGamesStats() = %v", all)
	}
}
