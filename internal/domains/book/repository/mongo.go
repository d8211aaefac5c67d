package repository

import (
	"context"

	"bookshelf-backend/internal/domains/book"
	"bookshelf-backend/internal/infrastructure/database"
)

// =====================================================
// MONGO REPOSITORY IMPLEMENTATION
// =====================================================

type mongoBookRepository struct {
	store database.Store
}

func NewMongoBookRepository(store database.Store) book.Repository {
	return &mongoBookRepository{store: store}
}

func (r *mongoBookRepository) FindAll(ctx context.Context) ([]database.Document, error) {
	return r.store.FindAll(ctx)
}

func (r *mongoBookRepository) FindByID(ctx context.Context, id string) (database.Document, error) {
	return r.store.FindOne(ctx, id)
}

func (r *mongoBookRepository) FindByUser(ctx context.Context, username string) ([]database.Document, error) {
	return r.store.FindMany(ctx, map[string]interface{}{"username": username})
}

func (r *mongoBookRepository) Insert(ctx context.Context, data map[string]interface{}) (database.Document, error) {
	return r.store.InsertOne(ctx, data)
}

func (r *mongoBookRepository) Update(ctx context.Context, id string, data map[string]interface{}) (database.Document, error) {
	// Clients can never set the counter directly.
	delete(data, "views")
	return r.store.UpdateOne(ctx, id, data)
}

func (r *mongoBookRepository) Delete(ctx context.Context, id string) (bool, error) {
	return r.store.DeleteOne(ctx, id)
}

func (r *mongoBookRepository) IncrementViews(ctx context.Context, id string) (database.Document, error) {
	// Single atomic fetch-and-mutate; a separate read followed by a write
	// would lose updates under concurrent increments.
	return r.store.FindOneAndUpdate(ctx,
		map[string]interface{}{"id": id},
		map[string]interface{}{"$inc": map[string]interface{}{"views": 1}},
		true,
	)
}
