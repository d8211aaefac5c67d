package book

import (
	"fmt"
	"strconv"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/infrastructure/database"
)

// Book is the normalized record this layer guarantees to its callers: string
// id, owner username, and a server-managed view counter.
type Book struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Year     *int   `json:"year,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Image    string `json:"image,omitempty"`
	Review   string `json:"review,omitempty"`
	Views    int    `json:"views"`
}

// Validate is the explicit output schema every record is checked against
// before it leaves the access layer.
func (b Book) Validate() error {
	return validation.ValidateStruct(&b,
		validation.Field(&b.ID, validation.Required),
		validation.Field(&b.Username, validation.Required.Error("username is required")),
		validation.Field(&b.Title, validation.Required.Error("title is required")),
		validation.Field(&b.Year,
			validation.When(b.Year != nil, validation.By(nonNegativeYear)),
		),
		validation.Field(&b.Views, validation.Min(0)),
	)
}

func nonNegativeYear(value interface{}) error {
	switch y := value.(type) {
	case int:
		if y < 0 {
			return fmt.Errorf("year must not be negative")
		}
	case *int:
		if y != nil && *y < 0 {
			return fmt.Errorf("year must not be negative")
		}
	}
	return nil
}

// FromDocument converts a normalized store document into a validated Book.
// Type coercion mirrors what accumulated in the collection over time: a year
// stored as a digit-string is parsed, a non-string username is stringified.
func FromDocument(doc database.Document) (*Book, error) {
	if doc == nil {
		return nil, database.ErrMissingID
	}

	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return nil, database.ErrMissingID
	}

	b := &Book{
		ID:       id,
		Username: coerceString(doc["username"]),
		Title:    coerceString(doc["title"]),
		Author:   coerceString(doc["author"]),
		Genre:    coerceString(doc["genre"]),
		Image:    coerceString(doc["image"]),
		Review:   coerceString(doc["review"]),
	}

	if year, ok := coerceInt(doc["year"]); ok {
		b.Year = &year
	}
	if views, ok := coerceInt(doc["views"]); ok {
		b.Views = views
	}

	if err := b.Validate(); err != nil {
		return nil, fmt.Errorf("invalid book record: %w", err)
	}
	return b, nil
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

// coerceInt accepts the numeric shapes a BSON decode can produce plus
// digit-strings left behind by older writers.
func coerceInt(v interface{}) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case float64:
		return int(n), true
	case string:
		if parsed, err := strconv.Atoi(n); err == nil {
			return parsed, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// =====================================================
// REQUEST DTOs
// =====================================================

// CreateBookRequest carries a new book. Views defaults server-side; a caller
// supplying it pre-insert is honored only at creation time, never on update.
type CreateBookRequest struct {
	Username string `json:"username" binding:"required"`
	Title    string `json:"title" binding:"required"`
	Author   string `json:"author,omitempty"`
	Year     *int   `json:"year,omitempty"`
	Genre    string `json:"genre,omitempty"`
	Image    string `json:"image,omitempty"`
	Review   string `json:"review,omitempty"`
	Views    *int   `json:"views,omitempty"`
}

func (r CreateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required.Error("username is required")),
		validation.Field(&r.Title, validation.Required.Error("title is required")),
		validation.Field(&r.Year,
			validation.When(r.Year != nil, validation.By(nonNegativeYear)),
		),
		validation.Field(&r.Views,
			validation.When(r.Views != nil, validation.By(nonNegativeViews)),
		),
	)
}

func nonNegativeViews(value interface{}) error {
	switch v := value.(type) {
	case int:
		if v < 0 {
			return fmt.Errorf("views must not be negative")
		}
	case *int:
		if v != nil && *v < 0 {
			return fmt.Errorf("views must not be negative")
		}
	}
	return nil
}

// ToDocument builds the insert payload. A missing views field is defaulted
// to 0 so every stored book carries the counter.
func (r CreateBookRequest) ToDocument() map[string]interface{} {
	doc := map[string]interface{}{
		"username": r.Username,
		"title":    r.Title,
	}
	if r.Author != "" {
		doc["author"] = r.Author
	}
	if r.Year != nil {
		doc["year"] = *r.Year
	}
	if r.Genre != "" {
		doc["genre"] = r.Genre
	}
	if r.Image != "" {
		doc["image"] = r.Image
	}
	if r.Review != "" {
		doc["review"] = r.Review
	}
	if r.Views != nil {
		doc["views"] = *r.Views
	} else {
		doc["views"] = 0
	}
	return doc
}

// UpdateBookRequest is a partial overwrite: only set fields are merged. The
// view counter is deliberately absent; it is server-only.
type UpdateBookRequest struct {
	Title  *string `json:"title,omitempty"`
	Author *string `json:"author,omitempty"`
	Year   *int    `json:"year,omitempty"`
	Genre  *string `json:"genre,omitempty"`
	Image  *string `json:"image,omitempty"`
	Review *string `json:"review,omitempty"`
}

func (r UpdateBookRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Year,
			validation.When(r.Year != nil, validation.By(nonNegativeYear)),
		),
	)
}

func (r UpdateBookRequest) ToDocument() map[string]interface{} {
	doc := map[string]interface{}{}
	if r.Title != nil {
		doc["title"] = *r.Title
	}
	if r.Author != nil {
		doc["author"] = *r.Author
	}
	if r.Year != nil {
		doc["year"] = *r.Year
	}
	if r.Genre != nil {
		doc["genre"] = *r.Genre
	}
	if r.Image != nil {
		doc["image"] = *r.Image
	}
	if r.Review != nil {
		doc["review"] = *r.Review
	}
	return doc
}
