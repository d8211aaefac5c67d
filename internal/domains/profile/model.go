package profile

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"bookshelf-backend/internal/infrastructure/database"
)

// Profile is the sanitized record this layer hands out. Credential fields
// never appear here: sanitization is structural, not a post-processing step.
type Profile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	GoogleAuthID string `json:"google_auth_id,omitempty"`
}

func (p Profile) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.ID, validation.Required),
		validation.Field(&p.Username, validation.Required.Error("username is required")),
	)
}

// FromDocument converts a normalized store document into a Profile. The
// stored password / password_hash fields are dropped by construction.
func FromDocument(doc database.Document) (*Profile, error) {
	if doc == nil {
		return nil, database.ErrMissingID
	}

	id, ok := doc["id"].(string)
	if !ok || id == "" {
		return nil, database.ErrMissingID
	}

	p := &Profile{
		ID:           id,
		Username:     coerceString(doc["username"]),
		GoogleAuthID: coerceString(doc["google_auth_id"]),
	}

	if err := p.Validate(); err != nil {
		return nil, fmt.Errorf("invalid profile record: %w", err)
	}
	return p, nil
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

type CreateProfileRequest struct {
	Username     string `json:"username" binding:"required"`
	Password     string `json:"password" binding:"required"`
	GoogleAuthID string `json:"google_auth_id,omitempty"`
}

func (r CreateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.Required.Error("username is required"),
			validation.Length(3, 20).Error("username must be 3-20 characters"),
		),
		validation.Field(&r.Password,
			validation.Required.Error("password is required"),
			validation.Length(8, 128).Error("password must be 8-128 characters"),
		),
	)
}

// UpdateProfileRequest is a partial overwrite; only set fields merge. A new
// password is hashed server-side before it ever reaches the store.
type UpdateProfileRequest struct {
	Username     *string `json:"username,omitempty"`
	Password     *string `json:"password,omitempty"`
	GoogleAuthID *string `json:"google_auth_id,omitempty"`
}

func (r UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username,
			validation.When(r.Username != nil, validation.Length(3, 20).Error("username must be 3-20 characters")),
		),
		validation.Field(&r.Password,
			validation.When(r.Password != nil, validation.Length(8, 128).Error("password must be 8-128 characters")),
		),
	)
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// LoginResponse pairs the sanitized profile with a signed access token.
type LoginResponse struct {
	AccessToken string  `json:"access_token"`
	Profile     Profile `json:"profile"`
}
