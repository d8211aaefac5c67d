package repository

import (
	"context"

	"bookshelf-backend/internal/domains/comment"
	"bookshelf-backend/internal/infrastructure/database"
)

// =====================================================
// MONGO REPOSITORY IMPLEMENTATION
// =====================================================

const sortField = "date_and_time"

type mongoCommentRepository struct {
	store database.Store
}

func NewMongoCommentRepository(store database.Store) comment.Repository {
	return &mongoCommentRepository{store: store}
}

func (r *mongoCommentRepository) Insert(ctx context.Context, data map[string]interface{}) (database.Document, error) {
	return r.store.InsertOne(ctx, data)
}

func (r *mongoCommentRepository) FindByID(ctx context.Context, id string) (database.Document, error) {
	return r.store.FindOne(ctx, id)
}

func (r *mongoCommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.DeleteOne(ctx, id)
}

func (r *mongoCommentRepository) FindByBook(ctx context.Context, bookID string, opts comment.ListOptions) ([]database.Document, error) {
	opts = opts.Normalized()
	return r.store.FindPage(ctx,
		map[string]interface{}{"book_id": bookID},
		sortField, !opts.NewestFirst, opts.Skip, opts.Limit,
	)
}

func (r *mongoCommentRepository) FindByUser(ctx context.Context, username string, opts comment.ListOptions) ([]database.Document, error) {
	opts = opts.Normalized()
	return r.store.FindPage(ctx,
		map[string]interface{}{"username": username},
		sortField, !opts.NewestFirst, opts.Skip, opts.Limit,
	)
}

func (r *mongoCommentRepository) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	return r.store.DeleteMany(ctx, map[string]interface{}{"book_id": bookID})
}
