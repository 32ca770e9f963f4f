// Package auth holds the bearer credentials the API client attaches to requests
// and signals when the server ends the session.
package auth

import (
	"context"
	"errors"
	"sync"
)

// ErrNoSession is returned when no tokens are stored.
var ErrNoSession = errors.New("no active session")

// Tokens are the credentials issued at login.
type Tokens struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// TokenStore persists Tokens.
type TokenStore interface {
	// Get returns the stored tokens or ErrNoSession.
	Get(ctx context.Context) (Tokens, error)
	Set(ctx context.Context, t Tokens) error
	// Clear removes the tokens. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}

// MemoryTokenStore keeps tokens in process memory.
type MemoryTokenStore struct {
	mu     sync.RWMutex
	tokens *Tokens
}

// NewMemoryTokenStore creates an empty MemoryTokenStore.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{}
}

func (m *MemoryTokenStore) Get(_ context.Context) (Tokens, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.tokens == nil {
		return Tokens{}, ErrNoSession
	}
	return *m.tokens, nil
}

func (m *MemoryTokenStore) Set(_ context.Context, t Tokens) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = &t
	return nil
}

func (m *MemoryTokenStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens = nil
	return nil
}
