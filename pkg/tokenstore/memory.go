package tokenstore

import "sync"

// MemStore is an in-memory Store for tests and embedded use. It
// behaves like FileStore minus the durability.
type MemStore struct {
	mu    sync.Mutex
	creds Credentials
	set   bool
}

// NewMemStore creates an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Save replaces the stored credentials.
func (s *MemStore) Save(creds Credentials) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = creds
	s.set = true
	return nil
}

// Load returns the stored credentials, or ErrNotFound when absent.
func (s *MemStore) Load() (Credentials, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return Credentials{}, ErrNotFound
	}
	return s.creds, nil
}

// Clear drops the stored credentials.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds = Credentials{}
	s.set = false
	return nil
}
