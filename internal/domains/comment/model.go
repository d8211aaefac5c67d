package comment

import (
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/infrastructure/database"
)

// CommentResponse is the narrow read-out projection this layer exposes. The
// stored document also carries an id and the owning book_id, but neither
// surfaces on list/get operations.
type CommentResponse struct {
	Username    string `json:"username"`
	Comment     string `json:"comment"`
	DateAndTime string `json:"date_and_time"`
}

func (c CommentResponse) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Username, validation.Required),
		validation.Field(&c.Comment, validation.Required),
		validation.Field(&c.DateAndTime, validation.Required),
	)
}

// FromDocument converts a normalized store document into the narrow
// projection, coercing loosely-typed fields to strings.
func FromDocument(doc database.Document) (*CommentResponse, error) {
	if doc == nil {
		return nil, database.ErrMissingID
	}
	if id, ok := doc["id"].(string); !ok || id == "" {
		return nil, database.ErrMissingID
	}

	c := &CommentResponse{
		Username:    coerceString(doc["username"]),
		Comment:     coerceString(doc["comment"]),
		DateAndTime: coerceString(doc["date_and_time"]),
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid comment record: %w", err)
	}
	return c, nil
}

func coerceString(v interface{}) string {
	switch s := v.(type) {
	case nil:
		return ""
	case string:
		return s
	default:
		return fmt.Sprintf("%v", s)
	}
}

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateCommentRequest carries a new comment. The timestamp is
// caller-supplied, not server-generated; book_id is a soft reference the
// store does not enforce.
type CreateCommentRequest struct {
	Username    string `json:"username" binding:"required"`
	BookID      string `json:"book_id" binding:"required"`
	Comment     string `json:"comment" binding:"required"`
	DateAndTime string `json:"date_and_time" binding:"required"`
}

func (r CreateCommentRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.BookID, validation.Required.Error("book_id is required")),
		validation.Field(&r.Comment, validation.Required.Error("comment is required")),
		validation.Field(&r.DateAndTime, validation.Required.Error("date_and_time is required")),
	)
}

func (r CreateCommentRequest) ToDocument() map[string]interface{} {
	return map[string]interface{}{
		"username":      r.Username,
		"book_id":       r.BookID,
		"comment":       r.Comment,
		"date_and_time": r.DateAndTime,
	}
}

// ListOptions controls sorting and offset pagination for comment listings.
type ListOptions struct {
	Limit       int64
	Skip        int64
	NewestFirst bool
}

// DefaultListOptions returns the documented defaults: newest first, first
// hundred rows.
func DefaultListOptions() ListOptions {
	return ListOptions{Limit: 100, Skip: 0, NewestFirst: true}
}

// OptionsFromQuery builds listing options from raw query strings. Anything
// unparseable falls back to the defaults.
func OptionsFromQuery(limit, skip, order string) ListOptions {
	opts := DefaultListOptions()
	if n, err := strconv.ParseInt(limit, 10, 64); err == nil && n > 0 {
		opts.Limit = n
	}
	if n, err := strconv.ParseInt(skip, 10, 64); err == nil && n >= 0 {
		opts.Skip = n
	}
	if order == "asc" || order == "oldest" {
		opts.NewestFirst = false
	}
	return opts
}

// Normalized clamps nonsense values back to the defaults.
func (o ListOptions) Normalized() ListOptions {
	if o.Limit <= 0 {
		o.Limit = 100
	}
	if o.Skip < 0 {
		o.Skip = 0
	}
	return o
}
