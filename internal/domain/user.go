package domain

import "time"

// Role represents the account type of a user.
type Role string

const (
	RoleRider  Role = "rider"
	RoleDriver Role = "driver"

	// RoleAdmin is recognised when reading tokens and records but no
	// signup path can create it.
	RoleAdmin Role = "admin"
)

// IsSignupRole reports whether r can be chosen at signup.
func (r Role) IsSignupRole() bool {
	return r == RoleRider || r == RoleDriver
}

// User represents an account holder, rider or driver.
type User struct {
	ID             string
	Email          string
	PasswordHash   string
	FirstName      string
	LastName       string
	Phone          string
	Role           Role
	ProfilePicture string
	IsVerified     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ProfileUpdate holds the optional fields of a profile change.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName      *string
	LastName       *string
	Phone          *string
	ProfilePicture *string
}

// IsEmpty reports whether no field is set.
func (u ProfileUpdate) IsEmpty() bool {
	return u.FirstName == nil && u.LastName == nil && u.Phone == nil && u.ProfilePicture == nil
}

// Apply copies the set fields onto user.
func (u ProfileUpdate) Apply(user *User) {
	if u.FirstName != nil {
		user.FirstName = *u.FirstName
	}
	if u.LastName != nil {
		user.LastName = *u.LastName
	}
	if u.Phone != nil {
		user.Phone = *u.Phone
	}
	if u.ProfilePicture != nil {
		user.ProfilePicture = *u.ProfilePicture
	}
}

// Identity is the verified subject of a request, decoded from its token.
type Identity struct {
	ID    string
	Email string
	Role  Role
}
