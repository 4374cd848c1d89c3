// Package config loads the application configuration from a TOML file,
// falling back to defaults when the file is absent.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/mweber/cadence/internal/constants"
)

// Config holds user-tunable application settings.
type Config struct {
	// Storage is a sqlite file path or a PostgreSQL connection string.
	Storage string `toml:"storage"`
	// DefaultUser is the username acted as when --user is not given.
	DefaultUser string `toml:"default_user"`
	// Timezone is an IANA timezone name used to resolve "today".
	Timezone string `toml:"timezone"`
	// TopStreaks is the length of the overview's streak ranking.
	TopStreaks int `toml:"top_streaks"`
	// StreakGracePeriods is the number of fully missed periods
	// tolerated before a current streak resets. 0 means a habit must
	// be completed in the current or immediately preceding period.
	StreakGracePeriods int `toml:"streak_grace_periods"`
	// Debug widens log output and mirrors it to stderr.
	Debug bool `toml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage:            constants.DefaultStoragePath,
		Timezone:           constants.DefaultTimezone,
		TopStreaks:         constants.DefaultTopStreaks,
		StreakGracePeriods: constants.DefaultStreakGracePeriods,
	}
}

// Load reads the configuration file at path. A missing file is not an
// error; defaults are returned. Fields absent from the file keep their
// default values.
func Load(path string) (Config, error) {
	cfg := Default()

	expanded, err := ExpandHome(path)
	if err != nil {
		return cfg, err
	}

	data, err := os.ReadFile(expanded)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("failed to read config file %s: %w", expanded, err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", expanded, err)
	}

	if cfg.TopStreaks <= 0 {
		cfg.TopStreaks = constants.DefaultTopStreaks
	}
	if cfg.StreakGracePeriods < 0 {
		cfg.StreakGracePeriods = constants.DefaultStreakGracePeriods
	}

	return cfg, nil
}

// ExpandHome replaces a leading ~ with the current user's home
// directory.
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
