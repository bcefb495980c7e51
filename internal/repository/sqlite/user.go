// Package sqlite implements the credential store on an embedded SQLite
// database. It backs local runs and store-level tests.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"

	"rideauth/internal/domain"
	"rideauth/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id              TEXT PRIMARY KEY,
	email           TEXT NOT NULL UNIQUE,
	password_hash   TEXT NOT NULL,
	first_name      TEXT NOT NULL,
	last_name       TEXT NOT NULL,
	phone           TEXT NOT NULL,
	role            TEXT NOT NULL DEFAULT 'rider',
	profile_picture TEXT NOT NULL DEFAULT '',
	is_verified     INTEGER NOT NULL DEFAULT 0,
	created_at      INTEGER NOT NULL,
	updated_at      INTEGER NOT NULL
);
`

const userColumns = `id, email, first_name, last_name, phone, role, profile_picture, is_verified, created_at, updated_at`

// Open opens the database at path and applies the schema.
// Use ":memory:" for a private in-memory database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}

	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries
	// and serializes writers.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply sqlite schema: %w", err)
	}
	return db, nil
}

// UserRepository implements repository.UserRepository using SQLite.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ repository.UserRepository = (*UserRepository)(nil)

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `INSERT INTO users (id, email, password_hash, first_name, last_name, phone, role, profile_picture, is_verified, created_at, updated_at)
		VALUES (?1, ?2, ?3, ?4, ?5, ?6, ?7, ?8, ?9, ?10, ?11)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Phone,
		string(user.Role), user.ProfilePicture, user.IsVerified, toMillis(user.CreatedAt), toMillis(user.UpdatedAt),
	)
	if isUniqueViolation(err) {
		return repository.ErrDuplicateEmail
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+`, '' FROM users WHERE id = ?1`, id)
	return scanUser(row)
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+`, '' FROM users WHERE email = ?1`, email)
	return scanUser(row)
}

// GetByEmailWithPassword retrieves a user by email along with the password hash.
func (r *UserRepository) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+`, password_hash FROM users WHERE email = ?1`, email)
	return scanUser(row)
}

// UpdateProfile updates the non-nil fields and returns the stored result.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	query := `UPDATE users SET
			first_name = COALESCE(?2, first_name),
			last_name = COALESCE(?3, last_name),
			phone = COALESCE(?4, phone),
			profile_picture = COALESCE(?5, profile_picture),
			updated_at = ?6
		WHERE id = ?1`
	res, err := r.db.ExecContext(ctx, query, id,
		update.FirstName, update.LastName, update.Phone, update.ProfilePicture, toMillis(time.Now()))
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, repository.ErrNotFound
	}
	return r.GetByID(ctx, id)
}

func scanUser(row *sql.Row) (*domain.User, error) {
	var user domain.User
	var role string
	var createdAt, updatedAt int64
	err := row.Scan(&user.ID, &user.Email, &user.FirstName, &user.LastName, &user.Phone, &role,
		&user.ProfilePicture, &user.IsVerified, &createdAt, &updatedAt, &user.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	user.Role = domain.Role(role)
	user.CreatedAt = fromMillis(createdAt)
	user.UpdatedAt = fromMillis(updatedAt)
	return &user, nil
}

func toMillis(t time.Time) int64 {
	return t.UTC().UnixMilli()
}

func fromMillis(v int64) time.Time {
	return time.UnixMilli(v).UTC()
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") && strings.Contains(message, "users.email")
}
