package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"rideauth/internal/domain"
	"rideauth/internal/redis"
	"rideauth/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK USER REPOSITORY
// ──────────────────────────────────────────────

// MockUserRepository is an in-memory UserRepository that enforces email
// uniqueness on Create like a real store.
type MockUserRepository struct {
	mu      sync.RWMutex
	users   map[string]*domain.User
	byEmail map[string]string

	// Counters for verification
	CreateCallCount     int32
	GetByEmailCallCount int32

	// Error injection
	CreateError     error
	GetByIDError    error
	GetByEmailError error

	// SkipEmailLookup makes GetByEmail report ErrNotFound unconditionally,
	// simulating a racing signup that passed the existence check.
	SkipEmailLookup bool
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users:   make(map[string]*domain.User),
		byEmail: make(map[string]string),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byEmail[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	stored := *user
	m.users[user.ID] = &stored
	m.byEmail[user.Email] = user.ID
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *user
	clone.PasswordHash = ""
	return &clone, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	atomic.AddInt32(&m.GetByEmailCallCount, 1)
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	if m.SkipEmailLookup {
		return nil, repository.ErrNotFound
	}
	user, err := m.GetByEmailWithPassword(ctx, email)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

func (m *MockUserRepository) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	if m.GetByEmailError != nil {
		return nil, m.GetByEmailError
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	clone := *m.users[id]
	return &clone, nil
}

func (m *MockUserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	update.Apply(user)
	user.UpdatedAt = time.Now().UTC()
	clone := *user
	clone.PasswordHash = ""
	return &clone, nil
}

// Delete removes a user, simulating an account deleted after token issuance.
func (m *MockUserRepository) Delete(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user, ok := m.users[id]; ok {
		delete(m.byEmail, user.Email)
		delete(m.users, id)
	}
}

// GetUser returns the stored record, hash included, for test assertions.
func (m *MockUserRepository) GetUser(id string) *domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.users[id]
}

// Count returns the number of stored users.
func (m *MockUserRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.users)
}

// ──────────────────────────────────────────────
// MOCK LOCK STORE
// ──────────────────────────────────────────────

// MockLockStore is a mock implementation of LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	AcquireError error
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireSignupLock(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	if m.AcquireError != nil {
		return false, m.AcquireError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.locks[email] {
		return false, nil
	}
	m.locks[email] = true
	return true, nil
}

func (m *MockLockStore) ReleaseSignupLock(ctx context.Context, email string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, email)
	return nil
}

// Hold marks email as locked by another signup.
func (m *MockLockStore) Hold(email string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.locks[email] = true
}

// IsHeld reports whether email is locked.
func (m *MockLockStore) IsHeld(email string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.locks[email]
}

// ──────────────────────────────────────────────
// MOCK NOTIFIER
// ──────────────────────────────────────────────

// MockNotifier records account notifications.
type MockNotifier struct {
	AccountCreatedCount int32
	SignInCount         int32
	ProfileUpdatedCount int32

	Error error
}

func (m *MockNotifier) NotifyAccountCreated(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.AccountCreatedCount, 1)
	return m.Error
}

func (m *MockNotifier) NotifySignIn(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.SignInCount, 1)
	return m.Error
}

func (m *MockNotifier) NotifyProfileUpdated(ctx context.Context, user *domain.User) error {
	atomic.AddInt32(&m.ProfileUpdatedCount, 1)
	return m.Error
}

// Ensure mocks implement interfaces.
var (
	_ repository.UserRepository = (*MockUserRepository)(nil)
	_ redis.LockStoreInterface  = (*MockLockStore)(nil)
)
