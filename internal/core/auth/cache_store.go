package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"order-console/internal/core/cache"
)

// CacheTokenStore implements TokenStore on a cache.Cache, so tokens survive restarts
// and can be shared between the console and the CLI.
type CacheTokenStore struct {
	cache cache.Cache
	key   string
	ttl   time.Duration
}

// NewCacheTokenStore creates a CacheTokenStore writing under key. A ttl of 0 never expires.
func NewCacheTokenStore(c cache.Cache, key string, ttl time.Duration) *CacheTokenStore {
	return &CacheTokenStore{cache: c, key: key, ttl: ttl}
}

// Get loads the tokens from the cache.
func (s *CacheTokenStore) Get(ctx context.Context) (Tokens, error) {
	data, err := s.cache.Get(ctx, s.key)
	if errors.Is(err, cache.ErrNotFound) {
		return Tokens{}, ErrNoSession
	}
	if err != nil {
		return Tokens{}, fmt.Errorf("failed to load tokens: %w", err)
	}

	var t Tokens
	if err := json.Unmarshal(data, &t); err != nil {
		return Tokens{}, fmt.Errorf("failed to unmarshal tokens: %w", err)
	}
	return t, nil
}

// Set stores the tokens in the cache.
func (s *CacheTokenStore) Set(ctx context.Context, t Tokens) error {
	data, err := json.Marshal(t)
	if err != nil {
		return fmt.Errorf("failed to marshal tokens: %w", err)
	}
	if err := s.cache.Set(ctx, s.key, data, s.ttl); err != nil {
		return fmt.Errorf("failed to save tokens: %w", err)
	}
	return nil
}

// Clear deletes the tokens from the cache.
func (s *CacheTokenStore) Clear(ctx context.Context) error {
	if err := s.cache.Delete(ctx, s.key); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	return nil
}
