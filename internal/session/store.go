// Package session persists the identity of the logged-in user between
// process runs.
package session

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

// record is the on-disk session shape.
type record struct {
	Username string    `json:"username"`
	Token    string    `json:"token"`
	SavedAt  time.Time `json:"saved_at"`
}

// FileStore keeps the current session in a small JSON file. A missing or
// corrupt file means "no active session", never an error.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Save records username as the active session.
func (s *FileStore) Save(username string) error {
	rec := record{
		Username: username,
		Token:    uuid.NewString(),
		SavedAt:  time.Now(),
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

// Load returns the saved username, or false when no valid session exists.
func (s *FileStore) Load() (string, bool) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}

	var rec record
	if err := json.Unmarshal(data, &rec); err != nil {
		return "", false
	}
	if strings.TrimSpace(rec.Username) == "" || rec.Token == "" {
		return "", false
	}
	return rec.Username, true
}

// Clear drops the session. Clearing an absent session is fine.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}
