package redis

import (
	"context"
	"time"
)

// LockStoreInterface defines the interface for signup locking.
type LockStoreInterface interface {
	AcquireSignupLock(ctx context.Context, email string, ttl time.Duration) (bool, error)
	ReleaseSignupLock(ctx context.Context, email string) error
}

// Ensure concrete types implement interfaces.
var _ LockStoreInterface = (*LockStore)(nil)
