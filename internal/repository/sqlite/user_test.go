package sqlite

import (
	"context"
	"errors"
	"testing"
	"time"

	"rideauth/internal/domain"
	"rideauth/internal/repository"
)

func newTestRepo(t *testing.T) *UserRepository {
	t.Helper()
	db, err := Open(context.Background(), ":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db)
}

func newUser(id, email string) *domain.User {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return &domain.User{
		ID:           id,
		Email:        email,
		PasswordHash: "$2a$10$hash",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Phone:        "0123456789",
		Role:         domain.RoleRider,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, newUser("u1", "a@x.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	byID, err := repo.GetByID(ctx, "u1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.Email != "a@x.com" || byID.Role != domain.RoleRider || byID.IsVerified {
		t.Errorf("unexpected user: %+v", byID)
	}
	if !byID.CreatedAt.Equal(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Errorf("createdAt not preserved: %v", byID.CreatedAt)
	}
	if byID.PasswordHash != "" {
		t.Error("default reads must not return the password hash")
	}

	byEmail, err := repo.GetByEmail(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get by email: %v", err)
	}
	if byEmail.ID != "u1" || byEmail.PasswordHash != "" {
		t.Errorf("unexpected user: %+v", byEmail)
	}

	withPassword, err := repo.GetByEmailWithPassword(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get with password: %v", err)
	}
	if withPassword.PasswordHash != "$2a$10$hash" {
		t.Errorf("expected password hash, got %q", withPassword.PasswordHash)
	}
}

func TestUserRepository_DuplicateEmail(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, newUser("u1", "a@x.com")); err != nil {
		t.Fatalf("create: %v", err)
	}
	err := repo.Create(ctx, newUser("u2", "a@x.com"))
	if !errors.Is(err, repository.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}

	// Email matching is exact.
	if err := repo.Create(ctx, newUser("u3", "A@x.com")); err != nil {
		t.Errorf("expected differently-cased email to be accepted, got %v", err)
	}
}

func TestUserRepository_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByEmail(ctx, "none@x.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByEmail: expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByEmailWithPassword(ctx, "none@x.com"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("GetByEmailWithPassword: expected ErrNotFound, got %v", err)
	}

	name := "Grace"
	if _, err := repo.UpdateProfile(ctx, "missing", domain.ProfileUpdate{FirstName: &name}); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("UpdateProfile: expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if err := repo.Create(ctx, newUser("u1", "a@x.com")); err != nil {
		t.Fatalf("create: %v", err)
	}

	phone := "9876543210"
	picture := "https://cdn.example.com/u1.png"
	updated, err := repo.UpdateProfile(ctx, "u1", domain.ProfileUpdate{Phone: &phone, ProfilePicture: &picture})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if updated.Phone != phone || updated.ProfilePicture != picture {
		t.Errorf("fields not updated: %+v", updated)
	}
	if updated.FirstName != "Ada" || updated.LastName != "Lovelace" {
		t.Errorf("untouched fields changed: %+v", updated)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Errorf("expected updatedAt to advance, got %v", updated.UpdatedAt)
	}

	// The password hash survives a profile update.
	withPassword, err := repo.GetByEmailWithPassword(ctx, "a@x.com")
	if err != nil {
		t.Fatalf("get with password: %v", err)
	}
	if withPassword.PasswordHash != "$2a$10$hash" {
		t.Errorf("password hash changed: %q", withPassword.PasswordHash)
	}
}
