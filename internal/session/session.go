package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cityfix-client/internal/models"
)

// Store persists the current user under a single durable key: a JSON
// file on disk. Absence of the file means an anonymous session. The
// admin flag is deliberately never written here.
type Store struct {
	path string
}

// NewStore creates a session store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load restores the remembered user. A missing file yields (nil, nil):
// an anonymous session, not an error.
func (s *Store) Load() (*models.SessionUser, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read session file: %w", err)
	}

	var user models.SessionUser
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("failed to parse session file: %w", err)
	}
	if user.ID == "" {
		return nil, fmt.Errorf("session file has no user id")
	}
	return &user, nil
}

// Save writes the user atomically (temp file, then rename) so a crash
// mid-write never leaves a corrupt session behind.
func (s *Store) Save(user *models.SessionUser) error {
	if user == nil {
		return s.Clear()
	}

	data, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to create temp session file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace session file: %w", err)
	}
	return nil
}

// Clear forgets the remembered user (logout). Clearing an absent
// session is not an error.
func (s *Store) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session file: %w", err)
	}
	return nil
}
