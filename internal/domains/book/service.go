package book

import "context"

// Service is the manager contract the transport layer calls. It returns
// typed, validated records only.
type Service interface {
	ListBooks(ctx context.Context) ([]Book, error)
	ListByUser(ctx context.Context, username string) ([]Book, error)
	GetBook(ctx context.Context, id string) (*Book, error)
	CreateBook(ctx context.Context, req CreateBookRequest) (*Book, error)
	UpdateBook(ctx context.Context, id string, req UpdateBookRequest) (*Book, error)
	DeleteBook(ctx context.Context, id string) error
	// ViewBook atomically bumps the view counter and returns the
	// post-increment record.
	ViewBook(ctx context.Context, id string) (*Book, error)
}

// CommentCascader is the slice of the comment domain the book service needs:
// deleting a book removes the comments referencing it.
type CommentCascader interface {
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}
