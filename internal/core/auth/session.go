package auth

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrEmptyToken is returned by Login when no access token is given.
var ErrEmptyToken = errors.New("access token is required")

// Session is the credential holder shared by the API client and the UI layer.
//
// Invalidate is called by the client on a 401. It clears the stored tokens, closes the
// channel returned by Invalidated and runs the OnInvalidated callbacks. A later Login
// starts a new generation with a fresh channel.
type Session struct {
	store TokenStore

	mu          sync.Mutex
	invalidated chan struct{}
	closed      bool
	listeners   []func()
}

// NewSession creates a Session backed by store.
func NewSession(store TokenStore) *Session {
	return &Session{
		store:       store,
		invalidated: make(chan struct{}),
	}
}

// Login stores t and resets the invalidation signal.
func (s *Session) Login(ctx context.Context, t Tokens) error {
	if t.AccessToken == "" {
		return ErrEmptyToken
	}
	if err := s.store.Set(ctx, t); err != nil {
		return fmt.Errorf("login: %w", err)
	}

	s.mu.Lock()
	if s.closed {
		s.invalidated = make(chan struct{})
		s.closed = false
	}
	s.mu.Unlock()
	return nil
}

// Logout clears the tokens without signalling invalidation.
func (s *Session) Logout(ctx context.Context) error {
	if err := s.store.Clear(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}

// AccessToken returns the current access token, or "" when there is no session.
func (s *Session) AccessToken(ctx context.Context) (string, error) {
	t, err := s.store.Get(ctx)
	if errors.Is(err, ErrNoSession) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return t.AccessToken, nil
}

// Authenticated reports whether tokens are stored.
func (s *Session) Authenticated(ctx context.Context) (bool, error) {
	token, err := s.AccessToken(ctx)
	if err != nil {
		return false, err
	}
	return token != "", nil
}

// Invalidate ends the session after the server rejected its credentials.
// The signal fires once per generation; later calls only clear the store.
func (s *Session) Invalidate(ctx context.Context) error {
	clearErr := s.store.Clear(ctx)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if clearErr != nil {
			return fmt.Errorf("invalidate: %w", clearErr)
		}
		return nil
	}
	s.closed = true
	close(s.invalidated)
	listeners := make([]func(), len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.Unlock()

	for _, fn := range listeners {
		fn()
	}

	if clearErr != nil {
		return fmt.Errorf("invalidate: %w", clearErr)
	}
	return nil
}

// Invalidated returns a channel closed when the current session generation is invalidated.
func (s *Session) Invalidated() <-chan struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.invalidated
}

// IsInvalidated reports whether the current generation was invalidated and not yet replaced by a Login.
func (s *Session) IsInvalidated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// OnInvalidated registers fn to run on every invalidation.
func (s *Session) OnInvalidated(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}
