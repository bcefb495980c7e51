package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateEmail is returned when a write violates the unique email index.
	ErrDuplicateEmail = errors.New("email already exists")
)
