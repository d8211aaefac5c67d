package book

import "errors"

// Repository-level errors
var (
	ErrBookNotFound = errors.New("book not found")
)

// Service-level (business logic) errors
var (
	ErrEmptyPayload = errors.New("no fields to update")
)
