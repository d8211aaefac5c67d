package database

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// =====================================================
// COLLECTION STORE
// =====================================================

// Store exposes uniform low-level operations against a single collection.
// Every document crossing this boundary is normalized (string "id", no
// store-internal key names). Implementations are safe for concurrent use.
type Store interface {
	// FindAll re-runs the full collection query on every call (no caching).
	FindAll(ctx context.Context) ([]Document, error)

	// FindMany applies a top-level equality filter.
	FindMany(ctx context.Context, filter map[string]interface{}) ([]Document, error)

	// FindPage applies a filter, sorts on one field, then skips and limits.
	FindPage(ctx context.Context, filter map[string]interface{}, sortField string, ascending bool, skip, limit int64) ([]Document, error)

	// FindOne returns the normalized document, or nil when absent. Ids not
	// shaped like a native identifier fail with ErrInvalidID.
	FindOne(ctx context.Context, id string) (Document, error)

	// InsertOne inserts and re-reads the stored document so callers always
	// observe server-assigned defaults, not just the insert acknowledgment.
	InsertOne(ctx context.Context, data map[string]interface{}) (Document, error)

	// UpdateOne merges data into the existing document as a partial field
	// overwrite. Returns the updated document, or nil when absent.
	UpdateOne(ctx context.Context, id string, data map[string]interface{}) (Document, error)

	// DeleteOne reports whether exactly one document was removed.
	DeleteOne(ctx context.Context, id string) (bool, error)

	// DeleteMany removes every document matching the filter, returning the
	// removed count.
	DeleteMany(ctx context.Context, filter map[string]interface{}) (int64, error)

	// FindOneAndUpdate is the atomic fetch-and-mutate primitive. With
	// returnAfter it yields the post-mutation document; nil when no document
	// matched.
	FindOneAndUpdate(ctx context.Context, filter, update map[string]interface{}, returnAfter bool) (Document, error)

	// EnsureUniqueIndex creates a unique index on a top-level field.
	EnsureUniqueIndex(ctx context.Context, field string) error
}

type mongoStore struct {
	coll *mongo.Collection
}

// NewStore binds a Store to one collection handle.
func NewStore(coll *mongo.Collection) Store {
	return &mongoStore{coll: coll}
}

// toFilter translates a caller filter into driver shape. The normalized "id"
// key maps back to the native "_id" identifier.
func toFilter(filter map[string]interface{}) (bson.M, error) {
	out := bson.M{}
	for k, v := range filter {
		if k == "id" || k == "_id" {
			s, ok := v.(string)
			if !ok {
				return nil, ErrInvalidID
			}
			oid, err := ToObjectID(s)
			if err != nil {
				return nil, err
			}
			out["_id"] = oid
			continue
		}
		out[k] = v
	}
	return out, nil
}

func (s *mongoStore) decodeAll(ctx context.Context, cur *mongo.Cursor) ([]Document, error) {
	defer cur.Close(ctx)

	var docs []Document
	for cur.Next(ctx) {
		var raw bson.M
		if err := cur.Decode(&raw); err != nil {
			return nil, fmt.Errorf("decode document: %w", err)
		}
		doc, err := Normalize(raw)
		if err != nil {
			// A handful of corrupt entries must not break a broad listing.
			continue
		}
		docs = append(docs, doc)
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("iterate documents: %w", err)
	}
	return docs, nil
}

func (s *mongoStore) FindAll(ctx context.Context) ([]Document, error) {
	cur, err := s.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find all: %w", err)
	}
	return s.decodeAll(ctx, cur)
}

func (s *mongoStore) FindMany(ctx context.Context, filter map[string]interface{}) ([]Document, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}
	cur, err := s.coll.Find(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("find many: %w", err)
	}
	return s.decodeAll(ctx, cur)
}

func (s *mongoStore) FindPage(ctx context.Context, filter map[string]interface{}, sortField string, ascending bool, skip, limit int64) ([]Document, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}

	dir := -1
	if ascending {
		dir = 1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: sortField, Value: dir}}).
		SetSkip(skip).
		SetLimit(limit)

	cur, err := s.coll.Find(ctx, f, opts)
	if err != nil {
		return nil, fmt.Errorf("find page: %w", err)
	}
	return s.decodeAll(ctx, cur)
}

func (s *mongoStore) FindOne(ctx context.Context, id string) (Document, error) {
	oid, err := ToObjectID(id)
	if err != nil {
		return nil, err
	}

	var raw bson.M
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one: %w", err)
	}
	return Normalize(raw)
}

func (s *mongoStore) InsertOne(ctx context.Context, data map[string]interface{}) (Document, error) {
	res, err := s.coll.InsertOne(ctx, bson.M(data))
	if err != nil {
		return nil, fmt.Errorf("insert one: %w", err)
	}

	var raw bson.M
	err = s.coll.FindOne(ctx, bson.M{"_id": res.InsertedID}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		// Read-back missed; hand the acknowledgment shape to the caller and
		// let it re-fetch through its own path.
		return Normalize(map[string]interface{}{"inserted_id": res.InsertedID})
	}
	if err != nil {
		return nil, fmt.Errorf("read back inserted document: %w", err)
	}
	return Normalize(raw)
}

func (s *mongoStore) UpdateOne(ctx context.Context, id string, data map[string]interface{}) (Document, error) {
	oid, err := ToObjectID(id)
	if err != nil {
		return nil, err
	}

	if _, err := s.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M(data)}); err != nil {
		return nil, fmt.Errorf("update one: %w", err)
	}

	var raw bson.M
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read back updated document: %w", err)
	}
	return Normalize(raw)
}

func (s *mongoStore) DeleteOne(ctx context.Context, id string) (bool, error) {
	oid, err := ToObjectID(id)
	if err != nil {
		return false, err
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, fmt.Errorf("delete one: %w", err)
	}
	return res.DeletedCount == 1, nil
}

func (s *mongoStore) DeleteMany(ctx context.Context, filter map[string]interface{}) (int64, error) {
	f, err := toFilter(filter)
	if err != nil {
		return 0, err
	}

	res, err := s.coll.DeleteMany(ctx, f)
	if err != nil {
		return 0, fmt.Errorf("delete many: %w", err)
	}
	return res.DeletedCount, nil
}

func (s *mongoStore) FindOneAndUpdate(ctx context.Context, filter, update map[string]interface{}, returnAfter bool) (Document, error) {
	f, err := toFilter(filter)
	if err != nil {
		return nil, err
	}

	ret := options.Before
	if returnAfter {
		ret = options.After
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(ret)

	var raw bson.M
	err = s.coll.FindOneAndUpdate(ctx, f, bson.M(update), opts).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one and update: %w", err)
	}
	return Normalize(raw)
}

func (s *mongoStore) EnsureUniqueIndex(ctx context.Context, field string) error {
	_, err := s.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: field, Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return fmt.Errorf("create unique index on %s: %w", field, err)
	}
	return nil
}

// IsDuplicateKey reports whether a store error came from a unique-index
// violation.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
