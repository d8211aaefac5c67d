package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"bookshelf-backend/internal/domains/comment"
	"bookshelf-backend/internal/infrastructure/database"
)

type commentService struct {
	repo comment.Repository
}

func NewCommentService(repo comment.Repository) comment.Service {
	return &commentService{repo: repo}
}

func (s *commentService) CreateComment(ctx context.Context, req comment.CreateCommentRequest) (*comment.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	doc, err := s.repo.Insert(ctx, req.ToDocument())
	if err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment.FromDocument(doc)
}

func (s *commentService) GetComment(ctx context.Context, id string) (*comment.CommentResponse, error) {
	doc, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, comment.ErrCommentNotFound
	}
	return comment.FromDocument(doc)
}

func (s *commentService) DeleteComment(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return comment.ErrCommentNotFound
	}
	return nil
}

func (s *commentService) ListByBook(ctx context.Context, bookID string, opts comment.ListOptions) ([]comment.CommentResponse, error) {
	docs, err := s.repo.FindByBook(ctx, bookID, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments by book: %w", err)
	}
	return s.project(docs), nil
}

func (s *commentService) ListByUser(ctx context.Context, username string, opts comment.ListOptions) ([]comment.CommentResponse, error) {
	docs, err := s.repo.FindByUser(ctx, username, opts)
	if err != nil {
		return nil, fmt.Errorf("list comments by user: %w", err)
	}
	return s.project(docs), nil
}

func (s *commentService) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	return s.repo.DeleteByBook(ctx, bookID)
}

// project narrows documents to the read-out shape, dropping malformed rows.
func (s *commentService) project(docs []database.Document) []comment.CommentResponse {
	out := make([]comment.CommentResponse, 0, len(docs))
	for _, doc := range docs {
		c, err := comment.FromDocument(doc)
		if err != nil {
			log.Debug().Err(err).Msg("skipping malformed comment document")
			continue
		}
		out = append(out, *c)
	}
	return out
}
