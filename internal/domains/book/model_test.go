package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookshelf-backend/internal/infrastructure/database"
)

func TestFromDocument(t *testing.T) {
	t.Run("full document", func(t *testing.T) {
		b, err := FromDocument(database.Document{
			"id":       "64f1b2a3c4d5e6f708192a3b",
			"username": "alice",
			"title":    "Dune",
			"author":   "Frank Herbert",
			"year":     1965,
			"views":    int64(7),
		})
		require.NoError(t, err)
		assert.Equal(t, "64f1b2a3c4d5e6f708192a3b", b.ID)
		assert.Equal(t, "alice", b.Username)
		require.NotNil(t, b.Year)
		assert.Equal(t, 1965, *b.Year)
		assert.Equal(t, 7, b.Views)
	})

	t.Run("year stored as digit string", func(t *testing.T) {
		b, err := FromDocument(database.Document{
			"id":       "64f1b2a3c4d5e6f708192a3b",
			"username": "alice",
			"title":    "Dune",
			"year":     "1965",
		})
		require.NoError(t, err)
		require.NotNil(t, b.Year)
		assert.Equal(t, 1965, *b.Year)
	})

	t.Run("views stored as float64", func(t *testing.T) {
		b, err := FromDocument(database.Document{
			"id":       "64f1b2a3c4d5e6f708192a3b",
			"username": "alice",
			"title":    "Dune",
			"views":    float64(3),
		})
		require.NoError(t, err)
		assert.Equal(t, 3, b.Views)
	})

	t.Run("missing views defaults to zero", func(t *testing.T) {
		b, err := FromDocument(database.Document{
			"id":       "64f1b2a3c4d5e6f708192a3b",
			"username": "alice",
			"title":    "Dune",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, b.Views)
	})

	t.Run("unparseable year is dropped", func(t *testing.T) {
		b, err := FromDocument(database.Document{
			"id":       "64f1b2a3c4d5e6f708192a3b",
			"username": "alice",
			"title":    "Dune",
			"year":     "nineteen sixty-five",
		})
		require.NoError(t, err)
		assert.Nil(t, b.Year)
	})

	t.Run("missing id rejected", func(t *testing.T) {
		_, err := FromDocument(database.Document{
			"username": "alice",
			"title":    "Dune",
		})
		assert.ErrorIs(t, err, database.ErrMissingID)
	})

	t.Run("nil document rejected", func(t *testing.T) {
		_, err := FromDocument(nil)
		assert.ErrorIs(t, err, database.ErrMissingID)
	})

	t.Run("missing title fails schema", func(t *testing.T) {
		_, err := FromDocument(database.Document{
			"id":       "64f1b2a3c4d5e6f708192a3b",
			"username": "alice",
		})
		assert.Error(t, err)
	})
}

func TestCreateBookRequestToDocument(t *testing.T) {
	t.Run("views defaults to zero", func(t *testing.T) {
		doc := CreateBookRequest{Username: "alice", Title: "Dune"}.ToDocument()
		assert.Equal(t, 0, doc["views"])
	})

	t.Run("caller supplied views honored at create", func(t *testing.T) {
		views := 12
		doc := CreateBookRequest{Username: "alice", Title: "Dune", Views: &views}.ToDocument()
		assert.Equal(t, 12, doc["views"])
	})

	t.Run("unset optional fields omitted", func(t *testing.T) {
		doc := CreateBookRequest{Username: "alice", Title: "Dune"}.ToDocument()
		assert.NotContains(t, doc, "author")
		assert.NotContains(t, doc, "year")
		assert.NotContains(t, doc, "genre")
	})
}

func TestCreateBookRequestValidate(t *testing.T) {
	t.Run("negative views rejected", func(t *testing.T) {
		views := -1
		err := CreateBookRequest{Username: "alice", Title: "Dune", Views: &views}.Validate()
		assert.Error(t, err)
	})

	t.Run("missing username rejected", func(t *testing.T) {
		err := CreateBookRequest{Title: "Dune"}.Validate()
		assert.Error(t, err)
	})
}

func TestUpdateBookRequestToDocument(t *testing.T) {
	t.Run("only set fields included", func(t *testing.T) {
		title := "Dune Messiah"
		doc := UpdateBookRequest{Title: &title}.ToDocument()
		assert.Equal(t, map[string]interface{}{"title": "Dune Messiah"}, doc)
	})

	t.Run("empty update produces empty payload", func(t *testing.T) {
		assert.Empty(t, UpdateBookRequest{}.ToDocument())
	})
}
