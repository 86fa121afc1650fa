package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists indicates that user with this email already exists
	ErrEmailExists = errors.New("email already exists")
)
