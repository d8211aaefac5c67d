package service

import (
	"context"
	"sort"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/domains/comment"
	"bookshelf-backend/internal/infrastructure/database"
)

// fakeCommentRepo stores documents in memory and applies the same sort and
// pagination contract the mongo repository does.
type fakeCommentRepo struct {
	docs   []database.Document
	nextID int

	lastOpts comment.ListOptions
}

func newFakeCommentRepo() *fakeCommentRepo {
	return &fakeCommentRepo{nextID: 1}
}

func (r *fakeCommentRepo) Insert(ctx context.Context, data map[string]interface{}) (database.Document, error) {
	doc := database.Document{"id": "comment-" + strconv.Itoa(r.nextID)}
	r.nextID++
	for k, v := range data {
		doc[k] = v
	}
	r.docs = append(r.docs, doc)
	return doc, nil
}

func (r *fakeCommentRepo) FindByID(ctx context.Context, id string) (database.Document, error) {
	for _, d := range r.docs {
		if d["id"] == id {
			return d, nil
		}
	}
	return nil, nil
}

func (r *fakeCommentRepo) Delete(ctx context.Context, id string) (bool, error) {
	for i, d := range r.docs {
		if d["id"] == id {
			r.docs = append(r.docs[:i], r.docs[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCommentRepo) page(matched []database.Document, opts comment.ListOptions) []database.Document {
	opts = opts.Normalized()
	sort.SliceStable(matched, func(i, j int) bool {
		a, _ := matched[i]["date_and_time"].(string)
		b, _ := matched[j]["date_and_time"].(string)
		if opts.NewestFirst {
			return a > b
		}
		return a < b
	})
	if opts.Skip >= int64(len(matched)) {
		return nil
	}
	matched = matched[opts.Skip:]
	if int64(len(matched)) > opts.Limit {
		matched = matched[:opts.Limit]
	}
	return matched
}

func (r *fakeCommentRepo) FindByBook(ctx context.Context, bookID string, opts comment.ListOptions) ([]database.Document, error) {
	r.lastOpts = opts
	var matched []database.Document
	for _, d := range r.docs {
		if d["book_id"] == bookID {
			matched = append(matched, d)
		}
	}
	return r.page(matched, opts), nil
}

func (r *fakeCommentRepo) FindByUser(ctx context.Context, username string, opts comment.ListOptions) ([]database.Document, error) {
	r.lastOpts = opts
	var matched []database.Document
	for _, d := range r.docs {
		if d["username"] == username {
			matched = append(matched, d)
		}
	}
	return r.page(matched, opts), nil
}

func (r *fakeCommentRepo) DeleteByBook(ctx context.Context, bookID string) (int64, error) {
	var kept []database.Document
	var removed int64
	for _, d := range r.docs {
		if d["book_id"] == bookID {
			removed++
			continue
		}
		kept = append(kept, d)
	}
	r.docs = kept
	return removed, nil
}

func seed(t *testing.T, svc comment.Service, username, bookID, text, ts string) {
	t.Helper()
	_, err := svc.CreateComment(context.Background(), comment.CreateCommentRequest{
		Username:    username,
		BookID:      bookID,
		Comment:     text,
		DateAndTime: ts,
	})
	require.NoError(t, err)
}

func TestCreateComment(t *testing.T) {
	ctx := context.Background()

	t.Run("returns the narrow projection", func(t *testing.T) {
		svc := NewCommentService(newFakeCommentRepo())
		created, err := svc.CreateComment(ctx, comment.CreateCommentRequest{
			Username:    "alice",
			BookID:      "book-1",
			Comment:     "great read",
			DateAndTime: "2024-03-01T10:00:00Z",
		})
		require.NoError(t, err)
		assert.Equal(t, "alice", created.Username)
		assert.Equal(t, "great read", created.Comment)
	})

	t.Run("missing fields rejected before the store", func(t *testing.T) {
		repo := newFakeCommentRepo()
		svc := NewCommentService(repo)
		_, err := svc.CreateComment(ctx, comment.CreateCommentRequest{Username: "alice"})
		require.Error(t, err)
		assert.Empty(t, repo.docs)
	})
}

func TestListByBook(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCommentRepo()
	svc := NewCommentService(repo)

	seed(t, svc, "alice", "book-1", "first", "2024-03-01T10:00:00Z")
	seed(t, svc, "bob", "book-1", "second", "2024-03-02T10:00:00Z")
	seed(t, svc, "carol", "book-2", "other book", "2024-03-03T10:00:00Z")

	t.Run("defaults sort newest first", func(t *testing.T) {
		got, err := svc.ListByBook(ctx, "book-1", comment.DefaultListOptions())
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "second", got[0].Comment)
		assert.Equal(t, "first", got[1].Comment)
	})

	t.Run("ascending on request", func(t *testing.T) {
		opts := comment.DefaultListOptions()
		opts.NewestFirst = false
		got, err := svc.ListByBook(ctx, "book-1", opts)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "first", got[0].Comment)
	})

	t.Run("skip and limit apply", func(t *testing.T) {
		opts := comment.ListOptions{Limit: 1, Skip: 1, NewestFirst: true}
		got, err := svc.ListByBook(ctx, "book-1", opts)
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "first", got[0].Comment)
	})

	t.Run("options reach the repository untouched", func(t *testing.T) {
		opts := comment.ListOptions{Limit: 7, Skip: 2, NewestFirst: false}
		_, err := svc.ListByBook(ctx, "book-1", opts)
		require.NoError(t, err)
		assert.Equal(t, opts, repo.lastOpts)
	})

	t.Run("malformed documents are skipped", func(t *testing.T) {
		repo.docs = append(repo.docs, database.Document{
			"id": "broken", "book_id": "book-1", "username": "mallory",
		})
		got, err := svc.ListByBook(ctx, "book-1", comment.DefaultListOptions())
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestListByUser(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCommentRepo()
	svc := NewCommentService(repo)

	seed(t, svc, "alice", "book-1", "one", "2024-03-01T10:00:00Z")
	seed(t, svc, "alice", "book-2", "two", "2024-03-02T10:00:00Z")
	seed(t, svc, "bob", "book-1", "not hers", "2024-03-03T10:00:00Z")

	got, err := svc.ListByUser(ctx, "alice", comment.DefaultListOptions())
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "two", got[0].Comment)
}

func TestDeleteByBook(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCommentRepo()
	svc := NewCommentService(repo)

	seed(t, svc, "alice", "book-1", "one", "2024-03-01T10:00:00Z")
	seed(t, svc, "bob", "book-1", "two", "2024-03-02T10:00:00Z")
	seed(t, svc, "carol", "book-2", "keep me", "2024-03-03T10:00:00Z")

	removed, err := svc.DeleteByBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	left, err := svc.ListByBook(ctx, "book-2", comment.DefaultListOptions())
	require.NoError(t, err)
	assert.Len(t, left, 1)
}

func TestGetAndDeleteComment(t *testing.T) {
	ctx := context.Background()
	repo := newFakeCommentRepo()
	svc := NewCommentService(repo)

	seed(t, svc, "alice", "book-1", "one", "2024-03-01T10:00:00Z")
	id, _ := repo.docs[0]["id"].(string)

	got, err := svc.GetComment(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "one", got.Comment)

	require.NoError(t, svc.DeleteComment(ctx, id))
	assert.ErrorIs(t, svc.DeleteComment(ctx, id), comment.ErrCommentNotFound)

	_, err = svc.GetComment(ctx, id)
	assert.ErrorIs(t, err, comment.ErrCommentNotFound)
}
