package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/mweber/cadence/internal/constants"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TopStreaks != constants.DefaultTopStreaks {
		t.Errorf("TopStreaks = %d, want %d", cfg.TopStreaks, constants.DefaultTopStreaks)
	}
	if cfg.StreakGracePeriods != constants.DefaultStreakGracePeriods {
		t.Errorf("StreakGracePeriods = %d, want %d", cfg.StreakGracePeriods, constants.DefaultStreakGracePeriods)
	}
	if cfg.Timezone != constants.DefaultTimezone {
		t.Errorf("Timezone = %q, want %q", cfg.Timezone, constants.DefaultTimezone)
	}
	if cfg.Storage != constants.DefaultStoragePath {
		t.Errorf("Storage = %q, want %q", cfg.Storage, constants.DefaultStoragePath)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
storage = "/tmp/habits.db"
default_user = "maren"
timezone = "Europe/Berlin"
top_streaks = 10
streak_grace_periods = 1
debug = true
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Storage != "/tmp/habits.db" {
		t.Errorf("Storage = %q", cfg.Storage)
	}
	if cfg.DefaultUser != "maren" {
		t.Errorf("DefaultUser = %q", cfg.DefaultUser)
	}
	if cfg.Timezone != "Europe/Berlin" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
	if cfg.TopStreaks != 10 {
		t.Errorf("TopStreaks = %d", cfg.TopStreaks)
	}
	if cfg.StreakGracePeriods != 1 {
		t.Errorf("StreakGracePeriods = %d", cfg.StreakGracePeriods)
	}
	if !cfg.Debug {
		t.Error("Debug = false, want true")
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(`default_user = "sam"`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.DefaultUser != "sam" {
		t.Errorf("DefaultUser = %q, want sam", cfg.DefaultUser)
	}
	if cfg.TopStreaks != constants.DefaultTopStreaks {
		t.Errorf("TopStreaks = %d, want default", cfg.TopStreaks)
	}
}

func TestLoadInvalidTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(`top_streaks = "five"`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() = nil error for invalid TOML")
	}
}

func TestLoadClampsZeroTopStreaks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	if err := os.WriteFile(path, []byte(`top_streaks = 0`), 0600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.TopStreaks != constants.DefaultTopStreaks {
		t.Errorf("TopStreaks = %d, want default", cfg.TopStreaks)
	}
}

func TestExpandHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory available")
	}

	got, err := ExpandHome("~/.config/cadence/cadence.db")
	if err != nil {
		t.Fatalf("ExpandHome() error = %v", err)
	}
	want := filepath.Join(home, ".config/cadence/cadence.db")
	if got != want {
		t.Errorf("ExpandHome() = %q, want %q", got, want)
	}

	// Absolute paths pass through untouched.
	if got, _ := ExpandHome("/var/lib/cadence.db"); got != "/var/lib/cadence.db" {
		t.Errorf("ExpandHome() modified absolute path: %q", got)
	}
}
