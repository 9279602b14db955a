// Package config loads engine options from the environment and backs the
// theme-preference persistence hooks with a small TOML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/slatetui/slate/theme"
)

// Options are the runtime knobs read once at startup
type Options struct {
	// TickInterval is the event-loop period; ~16ms targets 60Hz
	TickInterval time.Duration `env:"SLATE_TICK" envDefault:"16ms"`

	// ColorMode overrides detection: "truecolor" or "256", empty detects
	ColorMode string `env:"SLATE_COLOR"`

	// Theme overrides the persisted theme name
	Theme string `env:"SLATE_THEME"`

	// SeedColor overrides the seed as #RRGGBB
	SeedColor string `env:"SLATE_SEED"`

	// LogFile receives warnings; stdout is the render surface, so the
	// default discards them
	LogFile string `env:"SLATE_LOG"`
}

// FromEnv parses Options from SLATE_* environment variables
func FromEnv() (Options, error) {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		return Options{}, fmt.Errorf("config: parse env: %w", err)
	}
	return opts, nil
}

// LoadThemePreference reads the preference file, ok=false when it does
// not exist or cannot be parsed
func LoadThemePreference(path string) (theme.Preference, bool) {
	var pref theme.Preference
	if _, err := toml.DecodeFile(path, &pref); err != nil {
		return theme.Preference{}, false
	}
	return pref, true
}

// SaveThemePreference writes the preference file, creating its directory
func SaveThemePreference(path string, pref theme.Preference) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("config: create %s: %w", dir, err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(pref); err != nil {
		return fmt.Errorf("config: encode %s: %w", path, err)
	}
	return nil
}

// DefaultPreferencePath returns ~/.config/slate/theme.toml
func DefaultPreferencePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "slate-theme.toml"
	}
	return filepath.Join(dir, "slate", "theme.toml")
}
