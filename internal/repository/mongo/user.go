// Package mongo implements the credential store on MongoDB.
package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rideauth/internal/domain"
	"rideauth/internal/repository"
)

// UsersCollection is the collection holding user documents.
const UsersCollection = "users"

// userDocument is the stored shape of a user.
type userDocument struct {
	ID             string    `bson:"_id"`
	Email          string    `bson:"email"`
	PasswordHash   string    `bson:"password_hash,omitempty"`
	FirstName      string    `bson:"first_name"`
	LastName       string    `bson:"last_name"`
	Phone          string    `bson:"phone"`
	Role           string    `bson:"role"`
	ProfilePicture string    `bson:"profile_picture,omitempty"`
	IsVerified     bool      `bson:"is_verified"`
	CreatedAt      time.Time `bson:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at"`
}

// withoutPassword is the default projection.
var withoutPassword = bson.M{"password_hash": 0}

// UserRepository implements repository.UserRepository using MongoDB.
type UserRepository struct {
	users *mongo.Collection
}

// NewUserRepository creates a new UserRepository over db.
func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{users: db.Collection(UsersCollection)}
}

var _ repository.UserRepository = (*UserRepository)(nil)

// EnsureIndexes creates the unique email index.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_email_key"),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

// Create adds a new user.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	_, err := r.users.InsertOne(ctx, toDocument(user))
	if mongo.IsDuplicateKeyError(err) {
		return repository.ErrDuplicateEmail
	}
	return err
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id}, options.FindOne().SetProjection(withoutPassword))
}

// GetByEmail retrieves a user by email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne().SetProjection(withoutPassword))
}

// GetByEmailWithPassword retrieves a user by email along with the password hash.
func (r *UserRepository) GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, options.FindOne())
}

// UpdateProfile sets the non-nil fields and returns the updated user.
func (r *UserRepository) UpdateProfile(ctx context.Context, id string, update domain.ProfileUpdate) (*domain.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	if update.FirstName != nil {
		set["first_name"] = *update.FirstName
	}
	if update.LastName != nil {
		set["last_name"] = *update.LastName
	}
	if update.Phone != nil {
		set["phone"] = *update.Phone
	}
	if update.ProfilePicture != nil {
		set["profile_picture"] = *update.ProfilePicture
	}

	opts := options.FindOneAndUpdate().
		SetReturnDocument(options.After).
		SetProjection(withoutPassword)

	var doc userDocument
	err := r.users.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, opts *options.FindOneOptions) (*domain.User, error) {
	var doc userDocument
	err := r.users.FindOne(ctx, filter, opts).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return doc.toDomain(), nil
}

func toDocument(u *domain.User) userDocument {
	return userDocument{
		ID:             u.ID,
		Email:          u.Email,
		PasswordHash:   u.PasswordHash,
		FirstName:      u.FirstName,
		LastName:       u.LastName,
		Phone:          u.Phone,
		Role:           string(u.Role),
		ProfilePicture: u.ProfilePicture,
		IsVerified:     u.IsVerified,
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

func (d userDocument) toDomain() *domain.User {
	return &domain.User{
		ID:             d.ID,
		Email:          d.Email,
		PasswordHash:   d.PasswordHash,
		FirstName:      d.FirstName,
		LastName:       d.LastName,
		Phone:          d.Phone,
		Role:           domain.Role(d.Role),
		ProfilePicture: d.ProfilePicture,
		IsVerified:     d.IsVerified,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}
