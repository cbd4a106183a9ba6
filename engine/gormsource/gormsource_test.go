package gormsource

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartpool/chartpool/engine/datasource"
	"github.com/chartpool/chartpool/engine/schema"
)

type Author struct {
	ID   uint
	Name string
}

type Book struct {
	ID       uint
	Title    string
	Rating   float64
	AuthorID uint
	Author   Author
}

func TestParseModel(t *testing.T) {
	t.Run("Should expose columns as plain fields", func(t *testing.T) {
		model, err := ParseModel(&Book{})
		require.NoError(t, err)
		assert.Equal(t, "books", model.Name)

		label, err := schema.ResolveLookup(model, "rating", schema.QueryInfo{})
		require.NoError(t, err)
		assert.Equal(t, "rating", label)
	})

	t.Run("Should resolve a lookup through a belongs-to relation", func(t *testing.T) {
		model, err := ParseModel(&Book{})
		require.NoError(t, err)

		label, err := schema.ResolveLookup(model, "author__name", schema.QueryInfo{})
		require.NoError(t, err)
		assert.Equal(t, "name", label)
	})

	t.Run("Should register the foreign key column as the relation att name", func(t *testing.T) {
		model, err := ParseModel(&Book{})
		require.NoError(t, err)

		field, ok := model.Field("author_id")
		require.True(t, ok)
		assert.Equal(t, "author", field.Name)
		assert.True(t, field.Direct)
		require.NotNil(t, field.Related)
		assert.Equal(t, "authors", field.Related.Name)
	})

	t.Run("Should fail on an unknown lookup listing the valid names", func(t *testing.T) {
		model, err := ParseModel(&Book{})
		require.NoError(t, err)

		_, err = schema.ResolveLookup(model, "pages", schema.QueryInfo{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title")
		assert.Contains(t, err.Error(), "author_id")
	})

	t.Run("Should fail on a value that is not a struct", func(t *testing.T) {
		_, err := ParseModel(42)
		assert.Error(t, err)
	})
}

func TestNewQuerySet(t *testing.T) {
	t.Run("Should build a schema-only query set without a db", func(t *testing.T) {
		qs, err := NewQuerySet(nil, &Book{})
		require.NoError(t, err)
		assert.Nil(t, qs.DB())
		assert.Equal(t, "books", qs.Model().Name)
	})

	t.Run("Should satisfy the datasource contract", func(t *testing.T) {
		qs, err := NewQuerySet(nil, &Book{})
		require.NoError(t, err)

		validated, err := datasource.ValidateSource(qs)
		require.NoError(t, err)
		assert.Same(t, qs.Model(), validated.Model())
	})

	t.Run("Should trust declared annotations and extras", func(t *testing.T) {
		qs, err := NewQuerySet(nil, &Book{},
			WithAnnotations("num_books"),
			WithExtras("rank"),
		)
		require.NoError(t, err)

		label, err := schema.ResolveLookup(qs.Model(), "num_books", qs.Query())
		require.NoError(t, err)
		assert.Equal(t, "num_books", label)

		label, err = schema.ResolveLookup(qs.Model(), "rank", qs.Query())
		require.NoError(t, err)
		assert.Equal(t, "rank", label)
	})
}
