// Package session owns the logged-in user's day: the completed set, the
// history mirror, and when they are written back to the record service.
package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/mindupgrade/internal/progress"
)

// Remote is the record service. Implementations return
// *apperr.NotFoundError for an unknown email and *apperr.UnavailableError
// when the service cannot be reached.
type Remote interface {
	// Login returns the existing record for email or creates an empty one.
	Login(ctx context.Context, email string) (progress.UserRecord, error)

	// Fetch returns the stored record for email.
	Fetch(ctx context.Context, email string) (progress.UserRecord, error)

	// SaveHistory replaces the stored history of email.
	SaveHistory(ctx context.Context, email string, h progress.History) error
}

// Marker remembers which email to resume at the next start.
type Marker interface {
	// Load returns the remembered email, or "" when there is none.
	Load() (string, error)
	Save(email string) error
	Clear() error
}

// FileMarker keeps the remembered email in a small file.
type FileMarker struct {
	path string
}

// NewFileMarker returns a marker stored at path.
func NewFileMarker(path string) *FileMarker {
	return &FileMarker{path: path}
}

// DefaultMarkerPath resolves the marker file in priority order:
// 1. $XDG_STATE_HOME/mindupgrade/session
// 2. ~/.local/state/mindupgrade/session
func DefaultMarkerPath() (string, error) {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		stateHome = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(stateHome, "mindupgrade", "session"), nil
}

func (m *FileMarker) Load() (string, error) {
	b, err := os.ReadFile(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(b)), nil
}

func (m *FileMarker) Save(email string) error {
	if err := os.MkdirAll(filepath.Dir(m.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(m.path, []byte(email+"\n"), 0o600)
}

func (m *FileMarker) Clear() error {
	err := os.Remove(m.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// memMarker is the marker used when none is configured.
type memMarker struct{ email string }

func (m *memMarker) Load() (string, error)   { return m.email, nil }
func (m *memMarker) Save(email string) error { m.email = email; return nil }
func (m *memMarker) Clear() error            { m.email = ""; return nil }
