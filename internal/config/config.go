// Package config provides YAML and TOML game configuration loading and
// difficulty presets for the game box.
package config

// RacerConfig contains all configuration for the lane racer.
type RacerConfig struct {
	Arena     RacerArena            `yaml:"arena" toml:"arena"`
	Car       RacerCar              `yaml:"car" toml:"car"`
	Obstacles RacerObstacles        `yaml:"obstacles" toml:"obstacles"`
	Scoring   RacerScoring          `yaml:"scoring" toml:"scoring"`
	Input     RacerInput            `yaml:"input" toml:"input"`
	Tiers     map[string]TierConfig `yaml:"tiers" toml:"tiers"`
}

// RacerArena defines the playing field in arena pixels.
type RacerArena struct {
	Width      float64 `yaml:"width" toml:"width"`
	Height     float64 `yaml:"height" toml:"height"`
	MidlineGap float64 `yaml:"midline_gap" toml:"midline_gap"` // neutral strip on each side of the midline in versus mode
}

// RacerCar defines the car sprite and its hitbox shrink.
type RacerCar struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
	Lift   float64 `yaml:"lift" toml:"lift"` // distance from the arena bottom
	InsetX float64 `yaml:"inset_x" toml:"inset_x"`
	InsetY float64 `yaml:"inset_y" toml:"inset_y"`
}

// RacerObstacles defines obstacle size and spawning.
type RacerObstacles struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	Inset        float64 `yaml:"inset" toml:"inset"`
	SpawnY       float64 `yaml:"spawn_y" toml:"spawn_y"`
	SpawnScaling float64 `yaml:"spawn_scaling" toml:"spawn_scaling"` // added to the spawn rate per score point
}

// RacerScoring defines points and speed-up rules.
type RacerScoring struct {
	ExitPoints     int     `yaml:"exit_points" toml:"exit_points"`
	SpeedThreshold int     `yaml:"speed_threshold" toml:"speed_threshold"`
	SpeedIncrement float64 `yaml:"speed_increment" toml:"speed_increment"`
}

// RacerInput defines how device input maps to the simulation.
type RacerInput struct {
	TapStep   float64 `yaml:"tap_step" toml:"tap_step"`     // 0 = the tier step
	HoldTicks int     `yaml:"hold_ticks" toml:"hold_ticks"` // terminal key hold emulation
}

// TierConfig is one difficulty preset.
type TierConfig struct {
	Speed     float64 `yaml:"speed" toml:"speed"`
	SpawnRate float64 `yaml:"spawn_rate" toml:"spawn_rate"`
	Step      float64 `yaml:"step" toml:"step"`
}

// SnakeConfig contains all configuration for snake.
type SnakeConfig struct {
	Grid       SnakeGrid `yaml:"grid" toml:"grid"`
	IntervalMS int       `yaml:"interval_ms" toml:"interval_ms"`
	Start      GridPoint `yaml:"start" toml:"start"`
	FirstFood  GridPoint `yaml:"first_food" toml:"first_food"`
	FoodPoints int       `yaml:"food_points" toml:"food_points"`
}

// SnakeGrid is the board size in cells.
type SnakeGrid struct {
	Width  int `yaml:"width" toml:"width"`
	Height int `yaml:"height" toml:"height"`
}

// GridPoint is a cell coordinate.
type GridPoint struct {
	X int `yaml:"x" toml:"x"`
	Y int `yaml:"y" toml:"y"`
}

// MemoryConfig contains all configuration for memory match.
type MemoryConfig struct {
	Symbols     []string `yaml:"symbols" toml:"symbols"`
	FlipBackMS  int      `yaml:"flip_back_ms" toml:"flip_back_ms"`
	MatchPoints int      `yaml:"match_points" toml:"match_points"`
	MissPenalty int      `yaml:"miss_penalty" toml:"miss_penalty"` // score never drops below zero
}
