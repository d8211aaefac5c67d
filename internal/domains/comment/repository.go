package comment

import (
	"context"

	"bookshelf-backend/internal/infrastructure/database"
)

// Repository defines the data access contract for comment documents.
type Repository interface {
	Insert(ctx context.Context, data map[string]interface{}) (database.Document, error)

	// FindByID returns the document, or nil when absent.
	FindByID(ctx context.Context, id string) (database.Document, error)

	// Delete reports whether exactly one comment was removed.
	Delete(ctx context.Context, id string) (bool, error)

	// FindByBook returns the comments on a book, sorted by date_and_time
	// then paginated by the options.
	FindByBook(ctx context.Context, bookID string, opts ListOptions) ([]database.Document, error)

	// FindByUser returns the comments authored by a username, same sorting
	// and pagination.
	FindByUser(ctx context.Context, username string, opts ListOptions) ([]database.Document, error)

	// DeleteByBook bulk-removes every comment referencing a book, returning
	// the removed count.
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}
