package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/domains/book"
)

// bookService implements book.Service on top of the repository.
type bookService struct {
	repo     book.Repository
	comments book.CommentCascader
}

// NewBookService wires the repository plus the cross-domain comment cascade.
func NewBookService(repo book.Repository, comments book.CommentCascader) book.Service {
	return &bookService{
		repo:     repo,
		comments: comments,
	}
}

// ListBooks returns every well-formed book. Documents that fail
// normalization or schema validation are dropped rather than failing the
// whole listing.
func (s *bookService) ListBooks(ctx context.Context) ([]book.Book, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}

	out := make([]book.Book, 0, len(docs))
	for _, doc := range docs {
		b, err := book.FromDocument(doc)
		if err != nil {
			log.Debug().Err(err).Msg("skipping malformed book document")
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *bookService) ListByUser(ctx context.Context, username string) ([]book.Book, error) {
	docs, err := s.repo.FindByUser(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("list books by user: %w", err)
	}

	out := make([]book.Book, 0, len(docs))
	for _, doc := range docs {
		b, err := book.FromDocument(doc)
		if err != nil {
			log.Debug().Err(err).Msg("skipping malformed book document")
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (s *bookService) GetBook(ctx context.Context, id string) (*book.Book, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, book.ErrBookNotFound
	}
	return book.FromDocument(doc)
}

func (s *bookService) CreateBook(ctx context.Context, req book.CreateBookRequest) (*book.Book, error) {
	// Reject before any store mutation is attempted.
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.repo.Insert(ctx, req.ToDocument())
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	// An acknowledgment-only shape means the insert read-back missed;
	// re-fetch so the caller always sees the stored document.
	if id, ok := doc["id"].(string); ok && len(doc) == 1 {
		doc, err = s.repo.FindByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("read back created book: %w", err)
		}
		if doc == nil {
			return nil, book.ErrBookNotFound
		}
	}

	return book.FromDocument(doc)
}

func (s *bookService) UpdateBook(ctx context.Context, id string, req book.UpdateBookRequest) (*book.Book, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload := req.ToDocument()
	if len(payload) == 0 {
		// Nothing to merge; hand back the current record unchanged.
		return s.GetBook(ctx, id)
	}

	doc, err := s.repo.Update(ctx, id, payload)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, book.ErrBookNotFound
	}
	return book.FromDocument(doc)
}

// DeleteBook removes the book, then cascades to its comments. The two steps
// are independent store operations: if the cascade fails after the book is
// gone, the orphaned comments stay behind and the delete still counts as
// success.
func (s *bookService) DeleteBook(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return book.ErrBookNotFound
	}

	removed, err := s.comments.DeleteByBook(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("book_id", id).
			Msg("comment cascade failed, orphaned comments remain")
		return nil
	}
	if removed > 0 {
		log.Info().Str("book_id", id).Int64("removed", removed).
			Msg("cascaded comment deletion")
	}
	return nil
}

func (s *bookService) ViewBook(ctx context.Context, id string) (*book.Book, error) {
	doc, err := s.repo.IncrementViews(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, book.ErrBookNotFound
	}
	return book.FromDocument(doc)
}
