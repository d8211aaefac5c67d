package repository

import (
	"context"

	"bookshelf-backend/internal/domains/profile"
	"bookshelf-backend/internal/infrastructure/database"
)

// =====================================================
// MONGO REPOSITORY IMPLEMENTATION
// =====================================================

type mongoProfileRepository struct {
	store database.Store
}

func NewMongoProfileRepository(store database.Store) profile.Repository {
	return &mongoProfileRepository{store: store}
}

func (r *mongoProfileRepository) FindAll(ctx context.Context) ([]database.Document, error) {
	return r.store.FindAll(ctx)
}

func (r *mongoProfileRepository) FindByID(ctx context.Context, id string) (database.Document, error) {
	return r.store.FindOne(ctx, id)
}

func (r *mongoProfileRepository) FindByUsername(ctx context.Context, username string) (database.Document, error) {
	docs, err := r.store.FindMany(ctx, map[string]interface{}{"username": username})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return docs[0], nil
}

func (r *mongoProfileRepository) Insert(ctx context.Context, data map[string]interface{}) (database.Document, error) {
	return r.store.InsertOne(ctx, data)
}

func (r *mongoProfileRepository) UpdateByUsername(ctx context.Context, username string, data map[string]interface{}) (database.Document, error) {
	doc, err := r.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}

	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return nil, database.ErrMissingID
	}
	return r.store.UpdateOne(ctx, id, data)
}

func (r *mongoProfileRepository) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	doc, err := r.FindByUsername(ctx, username)
	if err != nil {
		return false, err
	}
	if doc == nil {
		return false, nil
	}

	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return false, database.ErrMissingID
	}
	return r.store.DeleteOne(ctx, id)
}

func (r *mongoProfileRepository) EnsureIndexes(ctx context.Context) error {
	return r.store.EnsureUniqueIndex(ctx, "username")
}
