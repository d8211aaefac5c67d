package comment

import "context"

// Service is the manager contract for comments. List and get operations
// return the narrow projection only.
type Service interface {
	CreateComment(ctx context.Context, req CreateCommentRequest) (*CommentResponse, error)
	GetComment(ctx context.Context, id string) (*CommentResponse, error)
	DeleteComment(ctx context.Context, id string) error
	ListByBook(ctx context.Context, bookID string, opts ListOptions) ([]CommentResponse, error)
	ListByUser(ctx context.Context, username string, opts ListOptions) ([]CommentResponse, error)

	// DeleteByBook is the cascade entry point the book domain calls after a
	// book deletion. The two deletions are not transactional.
	DeleteByBook(ctx context.Context, bookID string) (int64, error)
}
