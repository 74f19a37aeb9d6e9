// Package session persists the authenticated user's bearer token and
// identity between command invocations. The session file lives in the
// application data directory with owner-only permissions; commands load
// it explicitly and pass it down rather than reading global state.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/moneta-cli/moneta/internal/common"
	"github.com/moneta-cli/moneta/internal/config"
)

// Session is the saved authentication state for the backend API.
type Session struct {
	LoggedInAt time.Time `json:"logged_in_at"`
	Token      string    `json:"token"`
	UserID     string    `json:"user_id"`
	Email      string    `json:"email"`
}

// Valid reports whether the session carries a usable token.
func (s *Session) Valid() bool {
	return s != nil && s.Token != ""
}

// filePath returns the session file location inside the data dir.
func filePath() (string, error) {
	dir, err := config.DataDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve data directory: %w", err)
	}
	return filepath.Join(dir, "session.json"), nil
}

// Load reads the saved session. A missing or empty session surfaces as
// ErrNotLoggedIn so commands can tell the user to log in.
func Load() (*Session, error) {
	path, err := filePath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, common.ErrNotLoggedIn
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if !s.Valid() {
		return nil, common.ErrNotLoggedIn
	}

	return &s, nil
}

// Save writes the session with read/write for owner only.
func Save(s *Session) error {
	path, err := filePath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}

// Clear removes the saved session. Clearing an absent session is not
// an error.
func Clear() error {
	path, err := filePath()
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
