// Package config loads the hamlet configuration from YAML. Every field has a
// default, so a config file only needs to name what it changes.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/talgya/hamlet/internal/geom"
	"github.com/talgya/hamlet/internal/settlement"
	"github.com/talgya/hamlet/internal/world"
)

// ErrUnknownLevel is returned for log levels other than debug, info, warn
// and error.
var ErrUnknownLevel = errors.New("unknown log level")

// Config is the full generator configuration.
type Config struct {
	Seed     int64     `yaml:"seed"`      // Seed for settlement generation
	Origin   geom.Vec2 `yaml:"origin"`    // World position of a single settlement
	LogLevel string    `yaml:"log_level"` // debug, info, warn or error
	DBPath   string    `yaml:"db_path"`   // SQLite file; empty disables persistence

	// RandomOrgKey enables random.org seeds for dynamic content.
	RandomOrgKey string `yaml:"random_org_key"`

	World      world.GenConfig   `yaml:"world"`
	Sites      world.SiteConfig  `yaml:"sites"`
	Settlement settlement.Params `yaml:"settlement"`
	Colors     settlement.Colors `yaml:"colors"`
	API        APIConfig         `yaml:"api"`
}

// APIConfig configures the HTTP server. The admin key is never read from
// the file; it comes from HAMLET_ADMIN_KEY.
type APIConfig struct {
	Port          int `yaml:"port"`
	GenerateLimit int `yaml:"generate_limit"` // Generation requests per client per hour
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Seed:       42,
		LogLevel:   "info",
		World:      world.DefaultGenConfig(),
		Sites:      world.DefaultSiteConfig(),
		Settlement: settlement.DefaultParams(),
		Colors:     settlement.DefaultColors(),
		API: APIConfig{
			Port:          8080,
			GenerateLimit: 60,
		},
	}
}

// Load reads a config file over the defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config YAML: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// ParseLevel maps a level name to its slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("%w: %q", ErrUnknownLevel, s)
}
