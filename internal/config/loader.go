package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// LoadRacer loads the racer configuration.
// Search order: customPath -> ~/.gamebox/configs/racer.{yaml,toml} -> ./configs/racer.{yaml,toml} -> embedded default
func LoadRacer(customPath string) (RacerConfig, error) {
	return load("racer", customPath, DefaultRacerConfig)
}

// LoadSnake loads the snake configuration.
// Search order: customPath -> ~/.gamebox/configs/snake.{yaml,toml} -> ./configs/snake.{yaml,toml} -> embedded default
func LoadSnake(customPath string) (SnakeConfig, error) {
	return load("snake", customPath, DefaultSnakeConfig)
}

// LoadMemory loads the memory match configuration.
func LoadMemory(customPath string) (MemoryConfig, error) {
	return load("memory", customPath, DefaultMemoryConfig)
}

// load decodes the first config found for a game over its hardcoded
// defaults, so a file only needs the keys it changes. Only an explicit
// customPath can fail; unreadable files further down the search path are
// skipped.
func load[T any](gameID, customPath string, defaults func() T) (T, error) {
	if customPath != "" {
		cfg := defaults()
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := decode(customPath, data, &cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	for _, dir := range searchDirs() {
		for _, ext := range []string{".yaml", ".toml"} {
			path := filepath.Join(dir, gameID+ext)
			data, err := os.ReadFile(path)
			if err != nil {
				continue
			}
			cfg := defaults()
			if err := decode(path, data, &cfg); err == nil {
				return cfg, nil
			}
		}
	}

	cfg := defaults()
	if data := GetDefaultYAML(gameID); data != nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return defaults(), nil // Fallback to hardcoded if embed fails
		}
	}
	return cfg, nil
}

// decode picks the syntax from the file extension; YAML is the default.
func decode(path string, data []byte, out any) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.Decode(string(data), out); err != nil {
			return fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
		return nil
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

func searchDirs() []string {
	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, filepath.Join(home, ".gamebox", "configs"))
	}
	return append(dirs, "configs")
}
