package config

import (
	"embed"
)

//go:embed defaults/*.yaml
var defaultFiles embed.FS

// DefaultRacerConfig returns the default racer configuration.
func DefaultRacerConfig() RacerConfig {
	return RacerConfig{
		Arena: RacerArena{
			Width:      360,
			Height:     500,
			MidlineGap: 2,
		},
		Car: RacerCar{
			Width:  30,
			Height: 50,
			Lift:   10,
			InsetX: 8,
			InsetY: 5,
		},
		Obstacles: RacerObstacles{
			Width:        40,
			Height:       40,
			Inset:        5,
			SpawnY:       -50,
			SpawnScaling: 0.00005,
		},
		Scoring: RacerScoring{
			ExitPoints:     10,
			SpeedThreshold: 200,
			SpeedIncrement: 0.2,
		},
		Input: RacerInput{
			TapStep:   0,
			HoldTicks: 12,
		},
		Tiers: map[string]TierConfig{
			string(DifficultyEasy):   {Speed: 2, SpawnRate: 0.015, Step: 4},
			string(DifficultyNormal): {Speed: 3.5, SpawnRate: 0.02, Step: 5},
			string(DifficultyHard):   {Speed: 6, SpawnRate: 0.035, Step: 6},
		},
	}
}

// DefaultSnakeConfig returns the default snake configuration.
func DefaultSnakeConfig() SnakeConfig {
	return SnakeConfig{
		Grid:       SnakeGrid{Width: 20, Height: 20},
		IntervalMS: 150,
		Start:      GridPoint{X: 10, Y: 10},
		FirstFood:  GridPoint{X: 15, Y: 10},
		FoodPoints: 10,
	}
}

// DefaultMemoryConfig returns the default memory match configuration.
func DefaultMemoryConfig() MemoryConfig {
	return MemoryConfig{
		Symbols:     []string{"♠", "♥", "♦", "♣", "★", "●", "▲", "◆"},
		FlipBackMS:  800,
		MatchPoints: 20,
		MissPenalty: 5,
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	data, err := defaultFiles.ReadFile("defaults/" + gameID + ".yaml")
	if err != nil {
		return nil
	}
	return data
}
