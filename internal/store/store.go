// Package store provides the client-local credential store: a single named
// slot holding the auth token, read once at startup to attempt session
// restoration. Writes are the session manager's alone; every other reader
// gets the read-only TokenStore view through it.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// tokenKey is the one slot the client persists.
var tokenKey = []byte("auth/token")

// TokenStore is the process-wide token slot.
type TokenStore interface {
	// Token returns the stored token, reporting whether one exists.
	Token() (string, bool)
	// SetToken persists the token.
	SetToken(token string) error
	// ClearToken removes the token. Clearing an empty slot is not an error.
	ClearToken() error
}

// Store wraps a Badger database instance holding client-local state.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// New opens the store at the given path.
func New(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil      // Disable Badger's internal logging
	opts.SyncWrites = true // Tokens must survive a crash between login and next launch

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger db: %w", err)
	}

	if logger != nil {
		logger.Debug("credential store opened", "path", path)
	}

	return &Store{db: db, logger: logger}, nil
}

// Token returns the stored token, reporting whether one exists.
func (s *Store) Token() (string, bool) {
	var token string
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(tokenKey)
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			token = string(val)
			return nil
		})
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) && s.logger != nil {
			s.logger.Error("credential store read failed", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

// SetToken persists the token.
func (s *Store) SetToken(token string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(tokenKey, []byte(token))
	})
	if err != nil {
		return fmt.Errorf("store token: %w", err)
	}
	return nil
}

// ClearToken removes the token.
func (s *Store) ClearToken() error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete(tokenKey)
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
