package session

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	sessionFile = "session.json"
	userFile    = "user.json"
)

// Store is a two-key blob store on the local filesystem. Every write is
// synchronous; reads of missing or malformed blobs return absence rather
// than an error.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir, creating it if needed.
// An empty dir defaults to ~/.quizhub.
func NewStore(dir string) (*Store, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve state dir: %w", err)
		}
		dir = filepath.Join(home, ".quizhub")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Load returns the stored session, or nil when absent or unreadable.
func (s *Store) Load() *Session {
	raw, err := os.ReadFile(filepath.Join(s.dir, sessionFile))
	if err != nil {
		return nil
	}
	var sess Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil
	}
	if sess.AccessToken == "" {
		return nil
	}
	return &sess
}

// Save persists the session.
func (s *Store) Save(sess *Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, sessionFile), raw, 0o600); err != nil {
		return fmt.Errorf("write session: %w", err)
	}
	return nil
}

// LoadProfile returns the cached user profile, or nil when absent or
// unreadable.
func (s *Store) LoadProfile() *Profile {
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil {
		return nil
	}
	var p Profile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil
	}
	return &p
}

// SaveProfile caches the provider's user record verbatim.
func (s *Store) SaveProfile(raw []byte) error {
	if err := os.WriteFile(filepath.Join(s.dir, userFile), raw, 0o600); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// Clear deletes both blobs. Missing files are not an error.
func (s *Store) Clear() error {
	for _, name := range []string{sessionFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear %s: %w", name, err)
		}
	}
	return nil
}
