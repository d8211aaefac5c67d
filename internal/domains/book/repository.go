package book

import (
	"context"

	"bookshelf-backend/internal/infrastructure/database"
)

// Repository defines the data access contract for book documents. It speaks
// normalized store documents; the service layer converts them into typed
// records.
type Repository interface {
	// FindAll returns every document in the collection.
	FindAll(ctx context.Context) ([]database.Document, error)

	// FindByID returns the document, or nil when absent.
	// Returns database.ErrInvalidID for malformed ids.
	FindByID(ctx context.Context, id string) (database.Document, error)

	// FindByUser returns the books owned by a username (equality match).
	FindByUser(ctx context.Context, username string) ([]database.Document, error)

	// Insert stores a new book and returns the stored document.
	Insert(ctx context.Context, data map[string]interface{}) (database.Document, error)

	// Update merges fields into an existing document. Any "views" field in
	// the payload is unconditionally stripped: the counter is only ever
	// mutated through IncrementViews.
	Update(ctx context.Context, id string, data map[string]interface{}) (database.Document, error)

	// Delete reports whether exactly one document was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// IncrementViews atomically applies views += 1 and returns the
	// post-increment document, or nil when the id matches nothing.
	IncrementViews(ctx context.Context, id string) (database.Document, error)
}
