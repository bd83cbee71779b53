package mocks

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tenantbot/api-registry/internal/domain"
	"github.com/tenantbot/api-registry/internal/store"
)

// MockUserStore implements store.UserStore for testing
type MockUserStore struct {
	CreateFn       func(ctx context.Context, user *domain.User) error
	GetByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmailFn   func(ctx context.Context, email string) (*domain.User, error)
	FindConflictFn func(ctx context.Context, username, email string) error

	mu      sync.Mutex
	Users   map[uuid.UUID]*domain.User
	txCount int
}

// NewMockUserStore creates a mock store backed by an in-memory map.
func NewMockUserStore(users ...*domain.User) *MockUserStore {
	m := &MockUserStore{Users: make(map[uuid.UUID]*domain.User)}
	for _, u := range users {
		m.Users[u.ID] = u
	}
	return m
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create implements the UserStore interface
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, user)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.conflictLocked(user.Username, user.Email); err != nil {
		return err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}
	stored := *user
	m.Users[user.ID] = &stored
	return nil
}

// GetByID implements the UserStore interface
func (m *MockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.Users[id]
	if !ok {
		return nil, store.ErrUserNotFound
	}
	copied := *user
	return &copied, nil
}

// GetByEmail implements the UserStore interface
func (m *MockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailFn != nil {
		return m.GetByEmailFn(ctx, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, user := range m.Users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrUserNotFound
}

// FindConflict implements the UserStore interface
func (m *MockUserStore) FindConflict(ctx context.Context, username, email string) error {
	if m.FindConflictFn != nil {
		return m.FindConflictFn(ctx, username, email)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	return m.conflictLocked(username, email)
}

func (m *MockUserStore) conflictLocked(username, email string) error {
	for _, user := range m.Users {
		if user.Username == username {
			return store.ErrUsernameExists
		}
	}
	for _, user := range m.Users {
		if user.Email == email {
			return store.ErrEmailExists
		}
	}
	return nil
}

// WithTx implements the UserStore interface. The mock ignores tx.
func (m *MockUserStore) WithTx(*sql.Tx) store.UserStore {
	m.mu.Lock()
	m.txCount++
	m.mu.Unlock()
	return m
}

// TxCount reports how many times WithTx was called.
func (m *MockUserStore) TxCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.txCount
}
