package database

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Adapter-level errors.
var (
	// ErrInvalidID means the caller passed an id that is not shaped like a
	// native object id.
	ErrInvalidID = errors.New("invalid document identifier")

	// ErrMissingID means a document that must carry an identifier carries
	// none of the recognized identifier keys.
	ErrMissingID = errors.New("document missing identifier")
)

// Document is a store document normalized for callers: the native "_id" key
// is replaced by a string-typed "id" field and never leaks upward.
type Document map[string]interface{}

// ToObjectID validates and converts a caller-supplied string id into the
// store's native identifier.
func ToObjectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

// Normalize converts a raw store document into the uniform shape the access
// layers guarantee: a string "id" derived from whichever identifier key the
// document carries ("_id" for stored documents, "id" if already normalized,
// "inserted_id" for insert-acknowledgment shapes). The original key is
// dropped. Documents with no identifier at all yield ErrMissingID.
func Normalize(raw map[string]interface{}) (Document, error) {
	if len(raw) == 0 {
		return nil, ErrMissingID
	}

	doc := make(Document, len(raw))
	for k, v := range raw {
		doc[k] = v
	}

	if id, ok := doc["_id"]; ok {
		doc["id"] = stringifyID(id)
		delete(doc, "_id")
		return doc, nil
	}
	if id, ok := doc["id"]; ok {
		doc["id"] = stringifyID(id)
		return doc, nil
	}
	if id, ok := doc["inserted_id"]; ok {
		doc["id"] = stringifyID(id)
		delete(doc, "inserted_id")
		return doc, nil
	}

	return nil, ErrMissingID
}

func stringifyID(id interface{}) string {
	switch v := id.(type) {
	case primitive.ObjectID:
		return v.Hex()
	case string:
		return v
	default:
		return fmt.Sprintf("%v", v)
	}
}
