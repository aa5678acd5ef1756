package store

import "sync"

// MemStore is an in-memory TokenStore for tests and ephemeral runs.
type MemStore struct {
	mu    sync.RWMutex
	token string
	set   bool
}

// NewMemStore creates an empty in-memory token store.
func NewMemStore() *MemStore {
	return &MemStore{}
}

// Token returns the stored token, reporting whether one exists.
func (m *MemStore) Token() (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.token, m.set && m.token != ""
}

// SetToken stores the token.
func (m *MemStore) SetToken(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = token
	m.set = true
	return nil
}

// ClearToken removes the token.
func (m *MemStore) ClearToken() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.token = ""
	m.set = false
	return nil
}
