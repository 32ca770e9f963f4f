package auth

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockTokenStore struct {
	mock.Mock
}

func (m *MockTokenStore) Get(ctx context.Context) (Tokens, error) {
	args := m.Called(ctx)
	return args.Get(0).(Tokens), args.Error(1)
}

func (m *MockTokenStore) Set(ctx context.Context, t Tokens) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTokenStore) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func TestSession_LoginAndAccessToken(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemoryTokenStore())

	token, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)

	require.NoError(t, s.Login(ctx, Tokens{AccessToken: "a1", RefreshToken: "r1"}))

	token, err = s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a1", token)

	ok, err := s.Authenticated(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSession_LoginRequiresAccessToken(t *testing.T) {
	s := NewSession(NewMemoryTokenStore())
	assert.ErrorIs(t, s.Login(context.Background(), Tokens{RefreshToken: "r1"}), ErrEmptyToken)
}

func TestSession_LogoutDoesNotSignal(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemoryTokenStore())
	require.NoError(t, s.Login(ctx, Tokens{AccessToken: "a1"}))

	require.NoError(t, s.Logout(ctx))

	ok, err := s.Authenticated(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.False(t, s.IsInvalidated())

	select {
	case <-s.Invalidated():
		t.Fatal("logout must not signal invalidation")
	default:
	}
}

func TestSession_Invalidate(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemoryTokenStore())
	require.NoError(t, s.Login(ctx, Tokens{AccessToken: "a1"}))

	var calls atomic.Int32
	s.OnInvalidated(func() { calls.Add(1) })
	ch := s.Invalidated()

	require.NoError(t, s.Invalidate(ctx))
	require.NoError(t, s.Invalidate(ctx))

	<-ch
	assert.True(t, s.IsInvalidated())
	assert.Equal(t, int32(1), calls.Load())

	token, err := s.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestSession_LoginStartsNewGeneration(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemoryTokenStore())

	var calls atomic.Int32
	s.OnInvalidated(func() { calls.Add(1) })

	require.NoError(t, s.Invalidate(ctx))
	first := s.Invalidated()

	require.NoError(t, s.Login(ctx, Tokens{AccessToken: "a2"}))
	second := s.Invalidated()
	assert.False(t, s.IsInvalidated())

	select {
	case <-first:
	default:
		t.Fatal("first generation should stay closed")
	}
	select {
	case <-second:
		t.Fatal("new generation should be open")
	default:
	}

	require.NoError(t, s.Invalidate(ctx))
	<-second
	assert.Equal(t, int32(2), calls.Load())
}

func TestSession_ConcurrentInvalidate(t *testing.T) {
	ctx := context.Background()
	s := NewSession(NewMemoryTokenStore())

	var calls atomic.Int32
	s.OnInvalidated(func() { calls.Add(1) })

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Invalidate(ctx)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
}

func TestSession_StoreErrors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("redis down")

	store := new(MockTokenStore)
	store.On("Set", ctx, Tokens{AccessToken: "a1"}).Return(boom)
	store.On("Get", ctx).Return(Tokens{}, boom)
	store.On("Clear", ctx).Return(boom)

	s := NewSession(store)

	assert.ErrorIs(t, s.Login(ctx, Tokens{AccessToken: "a1"}), boom)
	_, err := s.AccessToken(ctx)
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, s.Logout(ctx), boom)

	// The signal still fires when the store cannot be cleared.
	err = s.Invalidate(ctx)
	assert.ErrorIs(t, err, boom)
	assert.True(t, s.IsInvalidated())

	store.AssertExpectations(t)
}
