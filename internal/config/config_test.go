package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("SENTE_CONFIG", filepath.Join(t.TempDir(), "config.toml"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if cfg.General.Currency != "UGX" {
		t.Fatalf("Currency = %q, want UGX", cfg.General.Currency)
	}
	if cfg.General.MinRecommendedTxns != 3 {
		t.Fatalf("MinRecommendedTxns = %d, want 3", cfg.General.MinRecommendedTxns)
	}
	if !cfg.History.Enabled {
		t.Fatal("History.Enabled = false, want true by default")
	}
	if cfg.Tariff.FirstTierUnits != 15 || cfg.Tariff.OverflowRate != 775 {
		t.Fatalf("tariff defaults = %+v", cfg.Tariff)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("SENTE_CONFIG", filepath.Join(t.TempDir(), "nested", "config.toml"))

	cfg := DefaultConfig()
	cfg.General.Currency = "KES"
	cfg.History.Enabled = false
	cfg.Appearance.Theme = "tokyo-night"
	cfg.Savings.DefaultRatePct = 7.5

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got.General.Currency != "KES" {
		t.Fatalf("Currency = %q, want KES", got.General.Currency)
	}
	if got.History.Enabled {
		t.Fatal("History.Enabled = true, want false")
	}
	if got.Appearance.Theme != "tokyo-night" {
		t.Fatalf("Theme = %q, want tokyo-night", got.Appearance.Theme)
	}
	if got.Savings.DefaultRatePct != 7.5 {
		t.Fatalf("DefaultRatePct = %v, want 7.5", got.Savings.DefaultRatePct)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("SENTE_CONFIG", path)

	partial := "[general]\ncurrency = \"TZS\"\n"
	if err := os.WriteFile(path, []byte(partial), 0o600); err != nil {
		t.Fatalf("write partial config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "TZS" {
		t.Fatalf("Currency = %q, want TZS", cfg.General.Currency)
	}
	// Unset sections keep their defaults.
	if cfg.Tariff.FirstTierRate != 250 {
		t.Fatalf("FirstTierRate = %v, want 250", cfg.Tariff.FirstTierRate)
	}
}

func TestHistoryPath(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("XDG_DATA_HOME", "/tmp/xdg-data")
	if got := HistoryPath(cfg); got != filepath.Join("/tmp/xdg-data", "sente", "history.db") {
		t.Fatalf("HistoryPath = %q", got)
	}

	cfg.History.Path = "/elsewhere/h.db"
	if got := HistoryPath(cfg); got != "/elsewhere/h.db" {
		t.Fatalf("HistoryPath with override = %q", got)
	}
}

func TestHistoryEnabledEnvOverride(t *testing.T) {
	cfg := DefaultConfig()

	t.Setenv("SENTE_NO_HISTORY", "")
	if !HistoryEnabled(cfg) {
		t.Fatal("HistoryEnabled = false with no override")
	}

	t.Setenv("SENTE_NO_HISTORY", "1")
	if HistoryEnabled(cfg) {
		t.Fatal("HistoryEnabled = true despite SENTE_NO_HISTORY=1")
	}

	t.Setenv("SENTE_NO_HISTORY", "0")
	if !HistoryEnabled(cfg) {
		t.Fatal("HistoryEnabled = false with SENTE_NO_HISTORY=0")
	}
}
