// Package config loads run configuration from a TOML file.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/chazu/cardstock/pkg/card"
)

// DefaultPath is where Load looks when no path is given.
const DefaultPath = "cardstock.toml"

// Render holds preview output settings.
type Render struct {
	Size        int    `toml:"size"`
	Supersample int    `toml:"supersample"`
	Output      string `toml:"output"`
}

// Config is the full run configuration.
type Config struct {
	Card   card.Spec `toml:"card"`
	Render Render    `toml:"render"`
	Kernel string    `toml:"kernel"` // "prism" (exact counts) or "sdf"
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Card: card.DefaultSpec(),
		Render: Render{
			Size:        512,
			Supersample: 2,
			Output:      "card.webp",
		},
		Kernel: "prism",
	}
}

// Load reads configuration from path, or DefaultPath when path is empty.
// A missing file is not an error: defaults are returned. A present but
// malformed file is an error, so typos do not silently fall back.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
