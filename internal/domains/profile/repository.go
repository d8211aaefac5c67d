package profile

import (
	"context"

	"bookshelf-backend/internal/infrastructure/database"
)

// Repository defines the data access contract for profile documents.
// Profiles are keyed by username at this layer: the username-keyed
// operations resolve the username to the native id, then delegate to the
// id-based primitives.
type Repository interface {
	FindAll(ctx context.Context) ([]database.Document, error)

	// FindByID returns the document, or nil when absent.
	FindByID(ctx context.Context, id string) (database.Document, error)

	// FindByUsername is a case-sensitive exact match backed by the unique
	// username index.
	FindByUsername(ctx context.Context, username string) (database.Document, error)

	// Insert stores a new profile. A unique-index violation surfaces as a
	// duplicate-key error (see database.IsDuplicateKey).
	Insert(ctx context.Context, data map[string]interface{}) (database.Document, error)

	// UpdateByUsername merges fields into the profile owning the username.
	// Returns nil when the username matches nothing.
	UpdateByUsername(ctx context.Context, username string, data map[string]interface{}) (database.Document, error)

	// DeleteByUsername reports whether exactly one profile was removed.
	DeleteByUsername(ctx context.Context, username string) (bool, error)

	// EnsureIndexes creates the unique username index. Called once at
	// startup.
	EnsureIndexes(ctx context.Context) error
}
