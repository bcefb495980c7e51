package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"rideauth/internal/auth"
	"rideauth/internal/domain"
	"rideauth/internal/redis"
	"rideauth/internal/repository"
)

// signupLockTTL bounds how long a signup holds the per-email lock.
const signupLockTTL = 10 * time.Second

// AccountNotifier is notified of account events. Failures are logged and
// never fail the request.
type AccountNotifier interface {
	NotifyAccountCreated(ctx context.Context, user *domain.User) error
	NotifySignIn(ctx context.Context, user *domain.User) error
	NotifyProfileUpdated(ctx context.Context, user *domain.User) error
}

var _ AccountNotifier = (*NotificationService)(nil)

// AuthResult is the outcome of a successful signup or signin.
type AuthResult struct {
	Token string
	User  *domain.User
}

// AuthService handles signup, signin and profile operations.
type AuthService struct {
	userRepo  repository.UserRepository
	hasher    *auth.PasswordHasher
	tokens    *auth.TokenManager
	validator *Validator
	locks     redis.LockStoreInterface
	notifier  AccountNotifier

	now   func() time.Time
	newID func() string
}

// NewAuthService creates a new AuthService. locks and notifier may be nil.
func NewAuthService(
	userRepo repository.UserRepository,
	hasher *auth.PasswordHasher,
	tokens *auth.TokenManager,
	locks redis.LockStoreInterface,
	notifier AccountNotifier,
) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		hasher:    hasher,
		tokens:    tokens,
		validator: NewValidator(),
		locks:     locks,
		notifier:  notifier,
		now:       time.Now,
		newID:     func() string { return uuid.New().String() },
	}
}

// Signup registers a new user and returns a session token.
//
// The Redis lock and the email lookup only narrow the duplicate window;
// the store's unique email constraint decides between concurrent signups.
// A lock held by another signup is not a conflict by itself, since that
// signup may still fail.
func (s *AuthService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	if err := s.validator.ValidateSignup(&req); err != nil {
		return nil, err
	}

	if s.locks != nil {
		acquired, err := s.locks.AcquireSignupLock(ctx, req.Email, signupLockTTL)
		switch {
		case err != nil:
			log.Printf("signup lock unavailable for %s: %v", req.Email, err)
		case !acquired:
			log.Printf("signup for %s already in progress", req.Email)
		default:
			defer func() { _ = s.locks.ReleaseSignupLock(ctx, req.Email) }()
		}
	}

	_, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up email: %w", err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &domain.User{
		ID:           s.newID(),
		Email:        req.Email,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		Role:         domain.Role(req.Role),
		IsVerified:   false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	s.notify(user, func(n AccountNotifier) error { return n.NotifyAccountCreated(ctx, user) })

	return &AuthResult{Token: token, User: user}, nil
}

// Signin authenticates a user by email and password.
func (s *AuthService) Signin(ctx context.Context, req SigninRequest) (*AuthResult, error) {
	if err := s.validator.ValidateSignin(&req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByEmailWithPassword(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	ok, err := s.hasher.Compare(user.PasswordHash, req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to compare password: %w", err)
	}
	if !ok {
		return nil, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	user.PasswordHash = ""
	s.notify(user, func(n AccountNotifier) error { return n.NotifySignIn(ctx, user) })

	return &AuthResult{Token: token, User: user}, nil
}

// GetProfile returns the stored user behind a verified identity. It always
// reads the store: the token stays valid after the user is gone, so absence
// is ErrUserNotFound.
func (s *AuthService) GetProfile(ctx context.Context, identity domain.Identity) (*domain.User, error) {
	if identity.ID == "" {
		return nil, ErrUnauthorized
	}

	user, err := s.userRepo.GetByID(ctx, identity.ID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	user.PasswordHash = ""

	return user, nil
}

// UpdateProfile changes the profile fields of a verified identity.
func (s *AuthService) UpdateProfile(ctx context.Context, identity domain.Identity, req UpdateProfileRequest) (*domain.User, error) {
	if identity.ID == "" {
		return nil, ErrUnauthorized
	}
	if err := s.validator.ValidateUpdateProfile(&req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.UpdateProfile(ctx, identity.ID, req.ProfileUpdate())
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	user.PasswordHash = ""

	s.notify(user, func(n AccountNotifier) error { return n.NotifyProfileUpdated(ctx, user) })

	return user, nil
}

func (s *AuthService) notify(user *domain.User, send func(AccountNotifier) error) {
	if s.notifier == nil {
		return
	}
	if err := send(s.notifier); err != nil {
		log.Printf("failed to notify user %s: %v", user.ID, err)
	}
}
