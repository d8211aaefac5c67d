package profile

import "errors"

// Repository-level errors
var (
	ErrProfileNotFound = errors.New("profile not found")
)

// Service-level (business logic) errors
var (
	// Conflict
	ErrUsernameTaken = errors.New("username already taken")

	// Validation
	ErrInvalidUsername = errors.New("username must not be empty")

	// Authentication. Deliberately shared between the unknown-user and
	// wrong-password paths so callers cannot enumerate usernames.
	ErrInvalidCredentials = errors.New("invalid username or password")

	// The post-insert re-fetch came back empty. Hard failure, not retried.
	ErrCreateInconsistency = errors.New("profile not found after create")
)
