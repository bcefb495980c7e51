package service

import "errors"

var (
	// ErrEmailTaken is returned when signing up with a registered email.
	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials is returned for an unknown email or a wrong
	// password alike.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrUserNotFound is returned when an authenticated identity no longer
	// resolves to a stored user.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnauthorized is returned when a request carries no usable identity.
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationError reports the first rule a request violated.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}
