package session

import (
	"os"
	"path/filepath"
	"sync"
)

// CredentialStore holds the bearer token for the current session,
// persisted to a file scoped to the user's profile. The Manager is the
// only writer; the gateway reads it on every request.
type CredentialStore struct {
	mu    sync.RWMutex
	path  string
	token string
}

// NewCredentialStore creates a store backed by the file at path and
// loads any existing token. A missing file is not an error.
func NewCredentialStore(path string) (*CredentialStore, error) {
	s := &CredentialStore{path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, err
	}
	s.token = string(data)
	return s, nil
}

// DefaultCredentialPath returns the standard token file location
func DefaultCredentialPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".rosterhub", "token")
	}
	return filepath.Join(home, ".rosterhub", "token")
}

// Token returns the current credential, or "" when unauthenticated
func (s *CredentialStore) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Save persists the credential to disk and caches it
func (s *CredentialStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	if err := os.WriteFile(s.path, []byte(token), 0600); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Clear purges the credential from memory and disk. It succeeds even
// if the file is already gone.
func (s *CredentialStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
