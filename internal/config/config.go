// Package config loads and saves the sente TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all sente configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	History    HistoryConfig    `toml:"history"`
	Appearance AppearanceConfig `toml:"appearance"`
	Tariff     TariffConfig     `toml:"tariff"`
	Savings    SavingsConfig    `toml:"savings"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	Currency string `toml:"currency"`
	// MinRecommendedTxns is the informational threshold below which the
	// session report suggests logging more entries. Never enforced.
	MinRecommendedTxns int `toml:"min_recommended_txns"`
}

// HistoryConfig controls the session archive.
type HistoryConfig struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path,omitempty"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// TariffConfig overrides the electricity billing constants.
type TariffConfig struct {
	FirstTierUnits     float64 `toml:"first_tier_units"`
	FirstTierRate      float64 `toml:"first_tier_rate"`
	OverflowRate       float64 `toml:"overflow_rate"`
	SurchargeThreshold float64 `toml:"surcharge_threshold_units"`
	SurchargeRate      float64 `toml:"surcharge_rate"`
}

// SavingsConfig holds savings calculator defaults.
type SavingsConfig struct {
	DefaultRatePct float64 `toml:"default_rate_pct"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			Currency:           "UGX",
			MinRecommendedTxns: 3,
		},
		History: HistoryConfig{
			Enabled: true,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Tariff: TariffConfig{
			FirstTierUnits:     15,
			FirstTierRate:      250,
			OverflowRate:       775,
			SurchargeThreshold: 150,
			SurchargeRate:      0.05,
		},
		Savings: SavingsConfig{
			DefaultRatePct: 10,
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "sente")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "sente")
}

// Path returns the full path to the config file. SENTE_CONFIG overrides
// the XDG location.
func Path() string {
	if p := os.Getenv("SENTE_CONFIG"); p != "" {
		return p
	}
	return filepath.Join(ConfigDir(), "config.toml")
}

// Load reads the config file, returning defaults if it doesn't exist.
func Load() (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(Path())
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config: %w", err)
	}

	return cfg, nil
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating config dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("creating config file: %w", err)
	}
	defer f.Close()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(Path())
	return err == nil
}

// DataDir returns the XDG-compliant data directory.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "sente")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "sente")
}

// HistoryPath resolves the session archive location from config or the
// default data directory.
func HistoryPath(cfg Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return filepath.Join(DataDir(), "history.db")
}

// HistoryEnabled reports whether sessions should be archived.
// SENTE_NO_HISTORY overrides the config when set.
func HistoryEnabled(cfg Config) bool {
	if v := os.Getenv("SENTE_NO_HISTORY"); v != "" && v != "0" {
		return false
	}
	return cfg.History.Enabled
}
