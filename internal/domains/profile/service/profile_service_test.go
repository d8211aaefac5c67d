package service

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"

	"bookshelf-backend/internal/domains/profile"
	"bookshelf-backend/internal/infrastructure/database"
)

// fakeProfileRepo is an in-memory stand-in enforcing the unique username
// index the mongo repository relies on.
type fakeProfileRepo struct {
	docs    map[string]database.Document // keyed by id
	nextID  int
	inserts int

	// hiddenFromFind simulates a row committed by a concurrent writer after
	// the existence check: invisible to FindByUsername, but still tripping
	// the unique index on insert.
	hiddenFromFind map[string]bool
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{docs: map[string]database.Document{}, nextID: 1}
}

func (r *fakeProfileRepo) FindAll(ctx context.Context) ([]database.Document, error) {
	out := make([]database.Document, 0, len(r.docs))
	for _, d := range r.docs {
		out = append(out, d)
	}
	return out, nil
}

func (r *fakeProfileRepo) FindByID(ctx context.Context, id string) (database.Document, error) {
	d, ok := r.docs[id]
	if !ok {
		return nil, nil
	}
	return d, nil
}

func (r *fakeProfileRepo) FindByUsername(ctx context.Context, username string) (database.Document, error) {
	if r.hiddenFromFind[username] {
		return nil, nil
	}
	for _, d := range r.docs {
		if d["username"] == username {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) Insert(ctx context.Context, data map[string]interface{}) (database.Document, error) {
	r.inserts++
	for _, d := range r.docs {
		if d["username"] == data["username"] {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		}
	}
	id := "profile-" + strconv.Itoa(r.nextID)
	r.nextID++
	doc := database.Document{"id": id}
	for k, v := range data {
		doc[k] = v
	}
	r.docs[id] = doc
	return doc, nil
}

func (r *fakeProfileRepo) UpdateByUsername(ctx context.Context, username string, data map[string]interface{}) (database.Document, error) {
	for _, d := range r.docs {
		if d["username"] == username {
			for k, v := range data {
				d[k] = v
			}
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeProfileRepo) DeleteByUsername(ctx context.Context, username string) (bool, error) {
	for id, d := range r.docs {
		if d["username"] == username {
			delete(r.docs, id)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeProfileRepo) EnsureIndexes(ctx context.Context) error { return nil }

func TestCreateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("stores a hash, never the plaintext", func(t *testing.T) {
		repo := newFakeProfileRepo()
		svc := NewProfileService(repo)

		created, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
			Username: "alice",
			Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", created.Username)

		stored, err := repo.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.NotContains(t, stored, "password")
		hash, _ := stored["password_hash"].(string)
		assert.True(t, strings.HasPrefix(hash, "$2a$"))
		assert.NotContains(t, hash, "correct horse battery")
	})

	t.Run("duplicate username rejected without a second insert", func(t *testing.T) {
		repo := newFakeProfileRepo()
		svc := NewProfileService(repo)

		_, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
			Username: "alice", Password: "correct horse battery",
		})
		require.NoError(t, err)
		insertsAfterFirst := repo.inserts

		_, err = svc.CreateProfile(ctx, profile.CreateProfileRequest{
			Username: "alice", Password: "something else here",
		})
		assert.ErrorIs(t, err, profile.ErrUsernameTaken)
		assert.Equal(t, insertsAfterFirst, repo.inserts)
		assert.Len(t, repo.docs, 1)
	})

	t.Run("duplicate key from a lost race maps to username taken", func(t *testing.T) {
		repo := newFakeProfileRepo()
		svc := NewProfileService(repo)

		// Simulate the race: the row appears between the existence check and
		// the insert. The fake's uniqueness check plays the index's role.
		repo.docs["profile-0"] = database.Document{"id": "profile-0", "username": "alice"}
		repo.hiddenFromFind = map[string]bool{"alice": true}

		_, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
			Username: "alice", Password: "correct horse battery",
		})
		assert.ErrorIs(t, err, profile.ErrUsernameTaken)
	})

	t.Run("blank username rejected", func(t *testing.T) {
		svc := NewProfileService(newFakeProfileRepo())
		_, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
			Username: "   ", Password: "correct horse battery",
		})
		assert.ErrorIs(t, err, profile.ErrInvalidUsername)
	})

	t.Run("short password rejected", func(t *testing.T) {
		svc := NewProfileService(newFakeProfileRepo())
		_, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
			Username: "alice", Password: "short",
		})
		assert.Error(t, err)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)

	_, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
		Username: "alice", Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("round trip", func(t *testing.T) {
		p, err := svc.Authenticate(ctx, profile.LoginRequest{
			Username: "alice", Password: "correct horse battery",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, profile.LoginRequest{
			Username: "alice", Password: "wrong password here",
		})
		assert.ErrorIs(t, err, profile.ErrInvalidCredentials)
	})

	t.Run("unknown username yields the same error", func(t *testing.T) {
		_, err := svc.Authenticate(ctx, profile.LoginRequest{
			Username: "nobody", Password: "correct horse battery",
		})
		assert.ErrorIs(t, err, profile.ErrInvalidCredentials)
	})

	t.Run("legacy plaintext field fails closed", func(t *testing.T) {
		repo.docs["legacy"] = database.Document{
			"id": "legacy", "username": "carol", "password": "not-a-bcrypt-hash",
		}
		_, err := svc.Authenticate(ctx, profile.LoginRequest{
			Username: "carol", Password: "not-a-bcrypt-hash",
		})
		assert.ErrorIs(t, err, profile.ErrInvalidCredentials)
	})
}

func TestProfileOutputNeverCarriesCredentials(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)

	created, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
		Username: "alice", Password: "correct horse battery",
	})
	require.NoError(t, err)

	raw, err := json.Marshal(created)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")

	profiles, err := svc.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 1)
	raw, err = json.Marshal(profiles)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
}

func TestUpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)

	_, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
		Username: "alice", Password: "correct horse battery",
	})
	require.NoError(t, err)

	t.Run("new password is rehashed", func(t *testing.T) {
		newPass := "a different password"
		_, err := svc.UpdateProfile(ctx, "alice", profile.UpdateProfileRequest{Password: &newPass})
		require.NoError(t, err)

		_, err = svc.Authenticate(ctx, profile.LoginRequest{Username: "alice", Password: newPass})
		assert.NoError(t, err)
		_, err = svc.Authenticate(ctx, profile.LoginRequest{Username: "alice", Password: "correct horse battery"})
		assert.ErrorIs(t, err, profile.ErrInvalidCredentials)
	})

	t.Run("empty payload returns the current profile", func(t *testing.T) {
		p, err := svc.UpdateProfile(ctx, "alice", profile.UpdateProfileRequest{})
		require.NoError(t, err)
		assert.Equal(t, "alice", p.Username)
	})

	t.Run("unknown username", func(t *testing.T) {
		g := "gid"
		_, err := svc.UpdateProfile(ctx, "nobody", profile.UpdateProfileRequest{GoogleAuthID: &g})
		assert.ErrorIs(t, err, profile.ErrProfileNotFound)
	})
}

func TestDeleteProfile(t *testing.T) {
	ctx := context.Background()
	repo := newFakeProfileRepo()
	svc := NewProfileService(repo)

	_, err := svc.CreateProfile(ctx, profile.CreateProfileRequest{
		Username: "alice", Password: "correct horse battery",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProfile(ctx, "alice"))
	assert.ErrorIs(t, svc.DeleteProfile(ctx, "alice"), profile.ErrProfileNotFound)
}
