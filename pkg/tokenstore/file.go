package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const credentialsFile = "credentials.json"

// FileStore keeps credentials in a JSON file under the user config
// directory (by default ~/.config/parcelctl/credentials.json). The
// file is written with 0600 permissions and replaced atomically, so a
// crash mid-save never leaves a torn token pair behind.
type FileStore struct {
	mu   sync.Mutex
	path string
}

// NewFileStore creates a store rooted at dir. An empty dir selects
// the default config directory for the current user.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config directory: %w", err)
		}
		dir = filepath.Join(base, "parcelctl")
	}
	return &FileStore{path: filepath.Join(dir, credentialsFile)}, nil
}

// Path returns the credentials file path (for display purposes).
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the credentials, creating the directory if needed.
func (s *FileStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}

	// Write to a temp file in the same directory, then rename over the
	// target. Rename within a directory is atomic on every platform we
	// ship to.
	tmp, err := os.CreateTemp(filepath.Dir(s.path), credentialsFile+".*")
	if err != nil {
		return fmt.Errorf("create temp credentials file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return fmt.Errorf("set credentials permissions: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write credentials: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close credentials file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace credentials file: %w", err)
	}
	return nil
}

// Load reads the stored credentials.
func (s *FileStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return Credentials{}, ErrNotFound
	}
	if err != nil {
		return Credentials{}, fmt.Errorf("read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if creds.AccessToken == "" || creds.RefreshToken == "" {
		return Credentials{}, ErrCorrupt
	}
	return creds, nil
}

// Clear removes the credentials file. Tokens, expiry and the cached
// user live in the same file, so they can never be cleared partially.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove credentials: %w", err)
	}
	return nil
}
