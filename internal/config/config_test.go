package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/theirongolddev/gagyebu/internal/model"
)

func TestLoadMissingReturnsDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Load() = %+v, want defaults", cfg)
	}
	if Exists() {
		t.Error("Exists() = true before Save")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.DefaultPayment = "신용카드"
	cfg.Budget.AtomicSave = false
	cfg.Appearance.Theme = "tokyo-night"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}

	info, err := os.Stat(ConfigPath())
	if err != nil {
		t.Fatalf("Stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 {
		t.Errorf("config mode = %o, want 600", perm)
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Errorf("Load() = %+v, want %+v", got, cfg)
	}
}

func TestLoadParseError(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	if err := os.MkdirAll(ConfigDir(), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(ConfigPath(), []byte("[general\nbroken"), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := Load()
	if err == nil || !strings.HasPrefix(err.Error(), "parsing config:") {
		t.Fatalf("Load() = %v, want parsing config error", err)
	}
}

func TestApplyEnvAndPaths(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)
	t.Setenv(EnvDB, "")
	t.Setenv(EnvTheme, "catppuccin-mocha")
	t.Setenv(EnvLogLevel, "debug")

	cfg := DefaultConfig()
	cfg.ApplyEnv()
	if cfg.Appearance.Theme != "catppuccin-mocha" || cfg.Log.Level != "debug" {
		t.Errorf("ApplyEnv() = %+v", cfg)
	}
	if got, want := cfg.DBPath("family_budget.db"), filepath.Join(data, "gagyebu", "family_budget.db"); got != want {
		t.Errorf("DBPath = %q, want %q", got, want)
	}
	if got, want := cfg.LogPath(), filepath.Join(data, "gagyebu", "gagyebu.log"); got != want {
		t.Errorf("LogPath = %q, want %q", got, want)
	}

	t.Setenv(EnvDB, "/tmp/other.db")
	cfg.ApplyEnv()
	if got := cfg.DBPath("family_budget.db"); got != "/tmp/other.db" {
		t.Errorf("DBPath with env = %q", got)
	}
}

func TestPaymentFor(t *testing.T) {
	cfg := DefaultConfig()
	cfg.General.DefaultPayment = "신용카드"

	if got := cfg.PaymentFor(model.Expense); got != "신용카드" {
		t.Errorf("PaymentFor(expense) = %q, want 신용카드", got)
	}
	// 신용카드 is not offered for income.
	if got := cfg.PaymentFor(model.Income); got != "계좌이체" {
		t.Errorf("PaymentFor(income) = %q, want 계좌이체", got)
	}

	cfg.General.DefaultPayment = "현금"
	if got := cfg.PaymentFor(model.Income); got != "현금" {
		t.Errorf("PaymentFor(income) = %q, want 현금", got)
	}
	cfg.General.DefaultPayment = ""
	if got := cfg.PaymentFor(model.Expense); got != model.ExpensePaymentMethods[0] {
		t.Errorf("PaymentFor(expense) = %q, want %q", got, model.ExpensePaymentMethods[0])
	}
}
