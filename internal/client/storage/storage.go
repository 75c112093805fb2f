// Package storage persists the CLI client's login session between runs.
package storage

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
)

// Session is the logged-in identity remembered by the client.
type Session struct {
	Username string `json:"username"`
	UserID   int64  `json:"user_id"`
}

// LocalStorage keeps a Session in a JSON file.
type LocalStorage struct {
	Path    string
	Session Session

	mu sync.Mutex
}

// DefaultPath returns ~/.contactkeeper/session.json, or session.json in the
// working directory when the home directory is unknown.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".contactkeeper", "session.json")
}

// Load reads the session file. A missing file leaves an empty session.
func (ls *LocalStorage) Load() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	f, err := os.Open(ls.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			ls.Session = Session{}
			return nil
		}
		return err
	}
	defer f.Close()
	return json.NewDecoder(f).Decode(&ls.Session)
}

// Save writes the session file with owner-only permissions.
func (ls *LocalStorage) Save() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(ls.Path), 0o700); err != nil {
		return err
	}
	f, err := os.OpenFile(ls.Path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(ls.Session)
}

// Set replaces the current session.
func (ls *LocalStorage) Set(username string, userID int64) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.Session = Session{Username: username, UserID: userID}
}

// UserID returns the logged-in user id, or 0.
func (ls *LocalStorage) UserID() int64 {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.Session.UserID
}

// Clear forgets the session and removes the file.
func (ls *LocalStorage) Clear() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.Session = Session{}
	if err := os.Remove(ls.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
