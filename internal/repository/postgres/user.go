package postgres

import (
	"context"
	"database/sql"
	"errors"

	"rideauth/internal/domain"
	"rideauth/internal/repository"
)

// UserRepository implements repository.UserRepository using PostgreSQL.
type UserRepository struct {
	db Querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.UserRepository = (*UserRepository)(nil)

const userColumns = `id, email, first_name, last_name, phone, role, profile_picture, is_verified, created_at, updated_at`

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, profile_picture, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		string(user.Role), user.ProfilePicture, user.IsVerified, user.CreatedAt, user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateEmail
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

// GetByEmailWithPassword retrieves a user by email along with the password hash.
func (r *UserRepository) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + `, password_hash FROM users WHERE email = $1`
	row := r.db.QueryRowContext(ctx, query, email)

	var user domain.User
	var role string
	err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Phone, &role,
		&user.ProfilePicture, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt, &user.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}

// UpdateProfile updates the non-nil fields and returns the stored result.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	query := `UPDATE users SET
			first_name = COALESCE($2, first_name),
			last_name = COALESCE($3, last_name),
			phone = COALESCE($4, phone),
			profile_picture = COALESCE($5, profile_picture),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + userColumns
	row := r.db.QueryRowContext(ctx, query, id, update.FirstName, update.LastName, update.Phone, update.ProfilePicture)
	return scanUser(row)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string
	err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Phone, &role,
		&user.ProfilePicture, &user.IsVerified, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	return &user, nil
}
