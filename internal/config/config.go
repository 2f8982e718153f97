// Package config loads and saves the gagyebu TOML configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/theirongolddev/gagyebu/internal/model"
)

// Environment variables that override the config file.
const (
	EnvDB       = "GAGYEBU_DB"
	EnvTheme    = "GAGYEBU_THEME"
	EnvLogLevel = "GAGYEBU_LOG_LEVEL"
)

const appName = "gagyebu"

// Config holds all gagyebu configuration.
type Config struct {
	General    GeneralConfig    `toml:"general"`
	Budget     BudgetConfig     `toml:"budget"`
	Appearance AppearanceConfig `toml:"appearance"`
	Log        LogConfig        `toml:"log"`
}

// GeneralConfig holds general preferences.
type GeneralConfig struct {
	DBPath         string `toml:"db_path,omitempty"`
	DefaultPayment string `toml:"default_payment"`
	RecentLimit    int    `toml:"recent_limit"`
}

// BudgetConfig holds budget saving and warning settings.
type BudgetConfig struct {
	AtomicSave  bool    `toml:"atomic_save"`
	WarnPercent float64 `toml:"warn_percent"`
}

// AppearanceConfig holds theme settings.
type AppearanceConfig struct {
	Theme string `toml:"theme"`
}

// LogConfig holds logging settings. An empty file logs to the data dir.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file,omitempty"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		General: GeneralConfig{
			DefaultPayment: "체크카드",
			RecentLimit:    5,
		},
		Budget: BudgetConfig{
			AtomicSave:  true,
			WarnPercent: 80,
		},
		Appearance: AppearanceConfig{
			Theme: "flexoki-dark",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// ConfigDir returns the XDG-compliant config directory.
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appName)
}

// ConfigPath returns the full path to the config file.
func ConfigPath() string {
	return filepath.Join(ConfigDir(), "config.toml")
}

// DataDir returns the XDG-compliant data directory holding the database
// and the log file.
func DataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", appName)
}

// DBPath returns the configured database path, or the default file in the
// data directory.
func (c Config) DBPath(defaultName string) string {
	if c.General.DBPath != "" {
		return c.General.DBPath
	}
	return filepath.Join(DataDir(), defaultName)
}

// PaymentFor returns the payment method preselected for a new entry of
// typ: the configured default when typ offers it, else 계좌이체 for income
// and the first method for expenses.
func (c Config) PaymentFor(typ model.TxType) string {
	methods := model.PaymentMethodsFor(typ)
	for _, m := range methods {
		if m == c.General.DefaultPayment {
			return m
		}
	}
	if typ == model.Income {
		return "계좌이체"
	}
	return methods[0]
}

// LogPath returns the configured log file, or gagyebu.log in the data
// directory.
func (c Config) LogPath() string {
	if c.Log.File != "" {
		return c.Log.File
	}
	return filepath.Join(DataDir(), appName+".log")
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

	return cfg, nil
}

// ApplyEnv overrides config values from the environment.
func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvDB); v != "" {
		c.General.DBPath = v
	}
	if v := os.Getenv(EnvTheme); v != "" {
		c.Appearance.Theme = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Log.Level = v
	}
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
	defer func() { _ = f.Close() }()

	enc := toml.NewEncoder(f)
	return enc.Encode(cfg)
}

// Exists returns true if a config file exists on disk.
func Exists() bool {
	_, err := os.Stat(ConfigPath())
	return err == nil
}
