package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles short-lived signup locks in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireSignupLock attempts to lock signup for the given email.
// Returns true if the lock was acquired, false if already held.
func (s *LockStore) AcquireSignupLock(ctx context.Context, email string, ttl time.Duration) (bool, error) {
	ok, err := s.client.SetNX(ctx, signupLockKey(email), "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseSignupLock releases the signup lock for the given email.
func (s *LockStore) ReleaseSignupLock(ctx context.Context, email string) error {
	return s.client.Del(ctx, signupLockKey(email)).Err()
}

func signupLockKey(email string) string {
	return fmt.Sprintf("lock:signup:%s", email)
}
