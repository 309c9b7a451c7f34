// Package config loads settings from defaults, an optional YAML file and
// MINDUP_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/mindupgrade/internal/llm"
	"github.com/abhisek/mindupgrade/internal/logging"
	"github.com/abhisek/mindupgrade/internal/server"
	"github.com/abhisek/mindupgrade/internal/store"
)

// Config is the full application configuration.
type Config struct {
	API    APIConfig      `yaml:"api"`
	Server server.Config  `yaml:"server"`
	Store  store.Config   `yaml:"store"`
	Log    logging.Config `yaml:"log"`
	LLM    llm.Config     `yaml:"llm"`
}

// APIConfig locates the record service used by the terminal client.
type APIConfig struct {
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		API:    APIConfig{URL: "http://localhost:3001", Timeout: 10 * time.Second},
		Server: server.DefaultConfig(),
		Store:  store.DefaultConfig(),
		Log:    logging.DefaultConfig(),
		LLM:    llm.DefaultConfig(),
	}
}

// DefaultPath resolves the config file in priority order:
// 1. MINDUP_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/mindupgrade/config.yaml
// 3. ~/.config/mindupgrade/config.yaml
func DefaultPath() (string, error) {
	if p := os.Getenv("MINDUP_CONFIG"); p != "" {
		return p, nil
	}
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "mindupgrade", "config.yaml"), nil
}

// Load builds the configuration. An explicit path must exist; the default
// path is read only when present.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != "" || os.Getenv("MINDUP_CONFIG") != ""
	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return Config{}, err
		}
		path = p
	}
	if err := loadFromFile(path, &cfg); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return Config{}, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	cfg.LLM.ApplyEnv()
	cfg.LLM.Discover()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.API.URL, "MINDUP_API_URL")
	set(&c.Server.Listen, "MINDUP_LISTEN")
	set(&c.Store.Backend, "MINDUP_STORE_BACKEND")
	set(&c.Store.Path, "MINDUP_STORE_PATH")
	set(&c.Log.Level, "MINDUP_LOG_LEVEL")
	set(&c.Log.Format, "MINDUP_LOG_FORMAT")
	set(&c.Log.Output, "MINDUP_LOG_OUTPUT")

	if v := os.Getenv("MINDUP_API_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid MINDUP_API_TIMEOUT: %w", err)
		}
		c.API.Timeout = d
	}
	return nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	u, err := url.Parse(c.API.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("api.url %q: want an http(s) URL", c.API.URL)
	}
	if c.API.Timeout < 0 {
		return fmt.Errorf("api.timeout must not be negative")
	}
	switch c.Store.Backend {
	case "", store.BackendSQLite, store.BackendBadger:
	default:
		return fmt.Errorf("store.backend %q: want %s or %s", c.Store.Backend, store.BackendSQLite, store.BackendBadger)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return err
	}
	return c.LLM.Validate()
}
