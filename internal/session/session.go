// Package session holds the in-memory state of the unlocked wallet.
package session

import (
	"errors"
	"sync"

	"github.com/MKhiriev/freedom-sidecar/models"
)

// ErrLocked is returned when no wallet is unlocked.
var ErrLocked = errors.New("wallet is locked")

// Store keeps at most one [models.WalletSession]. A later Set replaces the
// current session; Clear drops it. Store is safe for concurrent use.
type Store struct {
	mu      sync.RWMutex
	current *models.WalletSession
}

// NewStore returns an empty (locked) store.
func NewStore() *Store {
	return &Store{}
}

// Set makes s the current session.
func (st *Store) Set(s models.WalletSession) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.current = &s
}

// Clear locks the wallet.
func (st *Store) Clear() {
	st.mu.Lock()
	defer st.mu.Unlock()
	if st.current != nil {
		*st.current = models.WalletSession{}
	}
	st.current = nil
}

// IsUnlocked reports whether a session is set.
func (st *Store) IsUnlocked() bool {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return st.current != nil
}

// Current returns a copy of the current session.
func (st *Store) Current() (models.WalletSession, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	if st.current == nil {
		return models.WalletSession{}, ErrLocked
	}
	return *st.current, nil
}

// CurrentAddress returns the public address of the unlocked wallet or ErrLocked.
func (st *Store) CurrentAddress() (string, error) {
	s, err := st.Current()
	if err != nil {
		return "", err
	}
	return s.PublicAddress, nil
}

// CurrentEngineID returns the engine wallet id of the unlocked wallet or ErrLocked.
func (st *Store) CurrentEngineID() (string, error) {
	s, err := st.Current()
	if err != nil {
		return "", err
	}
	return s.EngineWalletID, nil
}
