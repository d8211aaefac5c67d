package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"

	"bookshelf-backend/internal/domains/profile"
	"bookshelf-backend/internal/infrastructure/database"
)

// bcrypt cost 12 balances hashing latency against brute-force resistance.
const bcryptCost = 12

type profileService struct {
	repo profile.Repository
}

func NewProfileService(repo profile.Repository) profile.Service {
	return &profileService{repo: repo}
}

func (s *profileService) ListProfiles(ctx context.Context) ([]profile.Profile, error) {
	docs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}

	out := make([]profile.Profile, 0, len(docs))
	for _, doc := range docs {
		p, err := profile.FromDocument(doc)
		if err != nil {
			log.Debug().Err(err).Msg("skipping malformed profile document")
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (s *profileService) GetProfile(ctx context.Context, username string) (*profile.Profile, error) {
	doc, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, profile.ErrProfileNotFound
	}
	return profile.FromDocument(doc)
}

// CreateProfile enforces username uniqueness. The existence check and the
// insert are two separate store round-trips; the unique username index
// backstops the race by rejecting the second concurrent insert.
func (s *profileService) CreateProfile(ctx context.Context, req profile.CreateProfileRequest) (*profile.Profile, error) {
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" {
		return nil, profile.ErrInvalidUsername
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check username exists: %w", err)
	}
	if existing != nil {
		return nil, profile.ErrUsernameTaken
	}

	doc := map[string]interface{}{
		"username": req.Username,
	}
	if req.GoogleAuthID != "" {
		doc["google_auth_id"] = req.GoogleAuthID
	}

	// Plaintext never reaches the store: replace it with its hash.
	if req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		doc["password_hash"] = string(hash)
	}

	if _, err := s.repo.Insert(ctx, doc); err != nil {
		if database.IsDuplicateKey(err) {
			return nil, profile.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	// Re-fetch by username, not by insert acknowledgment, so the caller gets
	// the canonical stored shape.
	stored, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("read back created profile: %w", err)
	}
	if stored == nil {
		return nil, profile.ErrCreateInconsistency
	}
	return profile.FromDocument(stored)
}

func (s *profileService) UpdateProfile(ctx context.Context, username string, req profile.UpdateProfileRequest) (*profile.Profile, error) {
	username = strings.TrimSpace(username)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{}
	if req.Username != nil {
		payload["username"] = strings.TrimSpace(*req.Username)
	}
	if req.GoogleAuthID != nil {
		payload["google_auth_id"] = *req.GoogleAuthID
	}
	if req.Password != nil && *req.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		payload["password_hash"] = string(hash)
	}

	if len(payload) == 0 {
		// Nothing to merge; return the current profile unchanged.
		return s.GetProfile(ctx, username)
	}

	doc, err := s.repo.UpdateByUsername(ctx, username, payload)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, profile.ErrProfileNotFound
	}
	return profile.FromDocument(doc)
}

func (s *profileService) DeleteProfile(ctx context.Context, username string) error {
	deleted, err := s.repo.DeleteByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return err
	}
	if !deleted {
		return profile.ErrProfileNotFound
	}
	return nil
}

func (s *profileService) Authenticate(ctx context.Context, req profile.LoginRequest) (*profile.Profile, error) {
	if err := req.Validate(); err != nil {
		return nil, profile.ErrInvalidCredentials
	}

	doc, err := s.repo.FindByUsername(ctx, strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, profile.ErrInvalidCredentials
	}

	// Prefer the hashed field; tolerate legacy documents that still carry a
	// plaintext "password". Either way the stored value goes through the
	// constant-time bcrypt comparison, so a legacy plaintext value simply
	// fails to verify.
	stored, _ := doc["password_hash"].(string)
	if stored == "" {
		stored, _ = doc["password"].(string)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(req.Password)); err != nil {
		return nil, profile.ErrInvalidCredentials
	}

	return profile.FromDocument(doc)
}
