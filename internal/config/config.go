package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/pathfinder/internal/catalog"
)

// Config is the complete application configuration.
type Config struct {
	Catalog catalog.Config `yaml:"catalog"`

	// CareerID is the career whose pathways are explored.
	CareerID string `yaml:"career"`

	// AutoSelectFirst selects the first pathway whenever a fresh pathway
	// list arrives with nothing selected. Default: true.
	AutoSelectFirst bool `yaml:"auto_select_first"`

	// FetchTimeout bounds each fetch, retries included. Zero disables it.
	FetchTimeout time.Duration `yaml:"fetch_timeout"`

	// DBPath is the SQLite database path. Empty means the default location.
	DBPath string `yaml:"db_path"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures the file logger.
type LogConfig struct {
	// Path is the log file. Empty disables logging.
	Path  string `yaml:"path"`
	Level string `yaml:"level"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Catalog:         catalog.DefaultConfig(),
		CareerID:        catalog.SampleCareerID,
		AutoSelectFirst: true,
		FetchTimeout:    30 * time.Second,
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path on top of the defaults and applies
// environment overrides. A missing file, or an empty path, yields the
// defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Save writes c as YAML to path, creating parent directories.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// DefaultPath returns the config file location: $PATHFINDER_CONFIG, else
// $XDG_CONFIG_HOME/pathfinder/config.yaml, else ~/.config/pathfinder/config.yaml.
func DefaultPath() (string, error) {
	if p := os.Getenv("PATHFINDER_CONFIG"); p != "" {
		return p, nil
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pathfinder", "config.yaml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "pathfinder", "config.yaml"), nil
}

func (c *Config) applyEnvOverrides() error {
	if p := os.Getenv("PATHFINDER_PROVIDER"); p != "" {
		c.Catalog.Provider = p
	}
	if u := os.Getenv("PATHFINDER_API_URL"); u != "" {
		c.Catalog.BaseURL = u
		// Pointing at a service implies using it.
		if os.Getenv("PATHFINDER_PROVIDER") == "" {
			c.Catalog.Provider = "http"
		}
	}
	if v := os.Getenv("PATHFINDER_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("PATHFINDER_TIMEOUT: %w", err)
		}
		c.Catalog.Timeout = d
	}
	if v := os.Getenv("PATHFINDER_RETRY_ATTEMPTS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PATHFINDER_RETRY_ATTEMPTS: %w", err)
		}
		c.Catalog.Retry.MaxAttempts = n
	}
	if v := os.Getenv("PATHFINDER_CAREER"); v != "" {
		c.CareerID = v
	}
	if v := os.Getenv("PATHFINDER_AUTO_SELECT"); v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("PATHFINDER_AUTO_SELECT: %w", err)
		}
		c.AutoSelectFirst = on
	}
	if v := os.Getenv("PATHFINDER_DB"); v != "" {
		c.DBPath = v
	}
	if v := os.Getenv("PATHFINDER_LOG"); v != "" {
		c.Log.Path = v
	}
	if v := os.Getenv("PATHFINDER_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	return nil
}

// Validate checks the configuration is usable.
func (c Config) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return err
	}
	if c.CareerID == "" {
		return errors.New("career must be set")
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("fetch timeout must not be negative, got %s", c.FetchTimeout)
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	return nil
}
