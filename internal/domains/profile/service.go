package profile

import "context"

// Service is the manager contract for profiles. Every record it returns is
// sanitized: no password, no password hash, ever.
type Service interface {
	ListProfiles(ctx context.Context) ([]Profile, error)
	GetProfile(ctx context.Context, username string) (*Profile, error)
	CreateProfile(ctx context.Context, req CreateProfileRequest) (*Profile, error)
	UpdateProfile(ctx context.Context, username string, req UpdateProfileRequest) (*Profile, error)
	DeleteProfile(ctx context.Context, username string) error

	// Authenticate verifies credentials. The unknown-user and wrong-password
	// paths are indistinguishable to the caller.
	Authenticate(ctx context.Context, req LoginRequest) (*Profile, error)
}
