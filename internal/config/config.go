package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Catalog CatalogConfig
	Store   StoreConfig
	Log     LogConfig
	Metrics MetricsConfig
}

// CatalogConfig points at the location dataset. An empty path uses the
// bundled sample.
type CatalogConfig struct {
	Path string
}

// StoreConfig selects where the selection is persisted.
type StoreConfig struct {
	Backend string // sqlite, file or memory
	Path    string
	Key     string
}

// LogConfig holds slog settings. Path is used by the TUI, which owns the
// terminal; CLI commands log to stderr.
type LogConfig struct {
	Path  string
	Level string
}

// MetricsConfig holds the optional prometheus textfile target.
type MetricsConfig struct {
	Textfile string
}

const (
	BackendSQLite = "sqlite"
	BackendFile   = "file"
	BackendMemory = "memory"
)

func dataDir() string {
	return filepath.Join(os.Getenv("HOME"), ".local", "share", "placefilter")
}

func newViper() *viper.Viper {
	v := viper.New()

	// default values
	v.SetDefault("catalog.path", "")
	v.SetDefault("store.backend", BackendSQLite)
	v.SetDefault("store.path", filepath.Join(dataDir(), "placefilter.db"))
	v.SetDefault("store.key", "location-filters")
	v.SetDefault("log.path", filepath.Join(dataDir(), "placefilter.log"))
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.textfile", "")

	v.SetEnvPrefix("PLACEFILTER")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// Defaults returns the configuration without reading any file: built-in
// defaults with PLACEFILTER_* env overrides applied.
func Defaults() (Config, error) {
	var c Config
	if err := newViper().Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, c.Validate()
}

// Load reads configuration from file and env. Env var overrides use prefix
// PLACEFILTER_. An explicit path (from --config) wins over PLACEFILTER_CONFIG.
func Load(path string) (Config, error) {
	v := newViper()
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("PLACEFILTER_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "placefilter"))
		v.SetConfigName("config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// an explicitly named file must exist; the default location is optional
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects values the rest of the program cannot act on.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Store.Backend)) {
	case BackendSQLite, BackendFile, BackendMemory:
	default:
		return fmt.Errorf("config: unknown store.backend %q", c.Store.Backend)
	}
	if strings.TrimSpace(c.Store.Key) == "" {
		return fmt.Errorf("config: store.key must not be empty")
	}
	return nil
}

// FilePath resolves where the config file lives: path if set, then
// PLACEFILTER_CONFIG, then ~/.config/placefilter/config.toml.
func FilePath(path string) string {
	if path == "" {
		path = os.Getenv("PLACEFILTER_CONFIG")
	}
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "placefilter", "config.toml")
	}
	return path
}

// Save writes the provided config to path (or the default location),
// creating the config directory if needed.
func Save(path string, cfg Config) error {
	path = FilePath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("catalog.path", cfg.Catalog.Path)
	v.Set("store.backend", cfg.Store.Backend)
	v.Set("store.path", cfg.Store.Path)
	v.Set("store.key", cfg.Store.Key)
	v.Set("log.path", cfg.Log.Path)
	v.Set("log.level", cfg.Log.Level)
	v.Set("metrics.textfile", cfg.Metrics.Textfile)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
