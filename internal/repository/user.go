package repository

import (
	"context"

	"rideauth/internal/domain"
)

// UserRepository defines the persistence operations for users.
//
// Implementations must enforce email uniqueness themselves and report a
// violation as ErrDuplicateEmail. Lookups other than GetByEmailWithPassword
// leave PasswordHash empty.
type UserRepository interface {
	// Create adds a new user.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by ID.
	GetByID(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by exact email match.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// GetByEmailWithPassword is GetByEmail including the password hash.
	GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)

	// UpdateProfile applies a profile change and returns the updated user.
	UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error)
}
