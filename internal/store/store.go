package store

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// Backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

// Config selects and locates the storage backend.
type Config struct {
	Backend string `yaml:"backend"`
	// Path is the SQLite file or the Badger directory. Empty means the
	// default location under the XDG data directory.
	Path string `yaml:"path"`
}

// DefaultConfig returns the SQLite backend at its default path.
func DefaultConfig() Config {
	return Config{Backend: BackendSQLite}
}

// Open opens the configured backend.
func Open(cfg Config, logger *zap.Logger) (Repo, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	switch cfg.Backend {
	case "", BackendSQLite:
		path := cfg.Path
		if path == "" {
			p, err := DefaultDBPath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		logger.Info("opening store", zap.String("backend", BackendSQLite), zap.String("path", path))
		return OpenSQLite(path)
	case BackendBadger:
		bc := DefaultBadgerConfig()
		bc.Path = cfg.Path
		if bc.Path == "" {
			p, err := dataPath("badger")
			if err != nil {
				return nil, err
			}
			bc.Path = p
		}
		bc.Logger = logger
		logger.Info("opening store", zap.String("backend", BackendBadger), zap.String("path", bc.Path))
		return OpenBadger(bc)
	default:
		return nil, fmt.Errorf("unknown store backend %q (want %s or %s)", cfg.Backend, BackendSQLite, BackendBadger)
	}
}

// DefaultDBPath resolves the database file path in priority order:
// 1. MINDUP_DB environment variable
// 2. $XDG_DATA_HOME/mindupgrade/mindupgrade.db
// 3. ~/.local/share/mindupgrade/mindupgrade.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("MINDUP_DB"); p != "" {
		return p, ensureDir(p)
	}
	p, err := dataPath("mindupgrade.db")
	if err != nil {
		return "", err
	}
	return p, ensureDir(p)
}

func dataPath(name string) (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, "mindupgrade", name), nil
}

// ensureDir creates the parent directory of path if it doesn't exist.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
