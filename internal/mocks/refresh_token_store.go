package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/phrazzld/tasker-api/internal/domain"
	"github.com/phrazzld/tasker-api/internal/store"
)

// MockRefreshTokenStore implements store.RefreshTokenStore for testing with
// an in-memory map keyed by token string.
type MockRefreshTokenStore struct {
	CreateFn        func(ctx context.Context, token *domain.RefreshToken) error
	GetFn           func(ctx context.Context, token string) (*domain.RefreshToken, error)
	DeleteFn        func(ctx context.Context, token string) (int64, error)
	DeleteExpiredFn func(ctx context.Context, now time.Time) (int64, error)

	mu     sync.Mutex
	Tokens map[string]*domain.RefreshToken
}

var _ store.RefreshTokenStore = (*MockRefreshTokenStore)(nil)

// NewMockRefreshTokenStore creates an empty in-memory refresh token store.
func NewMockRefreshTokenStore() *MockRefreshTokenStore {
	return &MockRefreshTokenStore{Tokens: make(map[string]*domain.RefreshToken)}
}

// Create implements store.RefreshTokenStore
func (m *MockRefreshTokenStore) Create(ctx context.Context, token *domain.RefreshToken) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, token)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.Tokens[token.Token]; exists {
		return store.ErrDuplicate
	}
	stored := *token
	m.Tokens[token.Token] = &stored
	return nil
}

// Get implements store.RefreshTokenStore
func (m *MockRefreshTokenStore) Get(ctx context.Context, token string) (*domain.RefreshToken, error) {
	if m.GetFn != nil {
		return m.GetFn(ctx, token)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	rt, ok := m.Tokens[token]
	if !ok {
		return nil, store.ErrRefreshTokenNotFound
	}
	found := *rt
	return &found, nil
}

// Delete implements store.RefreshTokenStore
func (m *MockRefreshTokenStore) Delete(ctx context.Context, token string) (int64, error) {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, token)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.Tokens[token]; !ok {
		return 0, nil
	}
	delete(m.Tokens, token)
	return 1, nil
}

// DeleteExpired implements store.RefreshTokenStore
func (m *MockRefreshTokenStore) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	if m.DeleteExpiredFn != nil {
		return m.DeleteExpiredFn(ctx, now)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	var n int64
	for key, rt := range m.Tokens {
		if rt.IsExpired(now) {
			delete(m.Tokens, key)
			n++
		}
	}
	return n, nil
}

// Count returns the number of stored tokens.
func (m *MockRefreshTokenStore) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Tokens)
}
