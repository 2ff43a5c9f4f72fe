// Package config loads and saves chestnut settings from a TOML file in
// the XDG config directory.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all chestnut configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Data       DataConfig       `toml:"data"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	// UseSeedData swaps persistence for generated demo data. Nothing is
	// written back while it is on.
	UseSeedData bool `toml:"use_seed_data"`
}

// DataConfig selects the persistence backend.
type DataConfig struct {
	Backend string `toml:"backend"` // "json" or "sqlite"
	Path    string `toml:"path,omitempty"`
}

// BudgetConfig holds budget defaults.
type BudgetConfig struct {
	DefaultWeekly int `toml:"default_weekly"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Data: DataConfig{
			Backend: "json",
		},
		Budget: BudgetConfig{
			DefaultWeekly: 400,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chestnut")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "chestnut")
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "chestnut")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "chestnut")
}

// DataPath resolves the storage path for the configured backend, honoring
// an explicit override in the config.
func (c Config) DataPath() string {
	if c.Data.Path != "" {
		return c.Data.Path
	}
	if c.Data.Backend == "sqlite" {
		return filepath.Join(DataDir(), "chestnut.db")
	}
	return filepath.Join(DataDir(), "app-data.json")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(ConfigPath())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.Budget.DefaultWeekly <= 0 {
		cfg.Budget.DefaultWeekly = 400
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	dir := ConfigDir()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(ConfigPath(), os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
