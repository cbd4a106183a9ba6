package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartpool/chartpool/engine/core"
)

func TestCleanSortMap(t *testing.T) {
	sortf := func(a, b string) bool { return a < b }
	mapf := func(s string) string { return s }

	t.Run("Should default to an empty triple on nil input", func(t *testing.T) {
		sm, err := CleanSortMap(nil)
		require.NoError(t, err)
		assert.Equal(t, SortMap{}, sm)
	})

	t.Run("Should default to an empty triple on an empty list", func(t *testing.T) {
		sm, err := CleanSortMap([]any{})
		require.NoError(t, err)
		assert.Equal(t, SortMap{}, sm)
	})

	t.Run("Should accept a full triple and coerce the flag to bool", func(t *testing.T) {
		sm, err := CleanSortMap([]any{sortf, mapf, 1})
		require.NoError(t, err)
		assert.NotNil(t, sm.Sort)
		assert.NotNil(t, sm.Map)
		assert.True(t, sm.MapThenSort)
	})

	t.Run("Should accept nil function slots", func(t *testing.T) {
		sm, err := CleanSortMap([3]any{nil, mapf, false})
		require.NoError(t, err)
		assert.Nil(t, sm.Sort)
		assert.NotNil(t, sm.Map)
		assert.False(t, sm.MapThenSort)
	})

	t.Run("Should fail on a triple with the wrong arity", func(t *testing.T) {
		_, err := CleanSortMap([]any{sortf, mapf})
		requireInputError(t, err, core.ErrCodeInvalidArity)
	})

	t.Run("Should fail on a non-callable sort slot", func(t *testing.T) {
		_, err := CleanSortMap([]any{"reverse", mapf, false})
		requireInputError(t, err, core.ErrCodeNotCallable)
	})

	t.Run("Should fail on a non-callable map slot", func(t *testing.T) {
		_, err := CleanSortMap([]any{sortf, 42, false})
		requireInputError(t, err, core.ErrCodeNotCallable)
	})

	t.Run("Should fail on input that is not a triple", func(t *testing.T) {
		_, err := CleanSortMap("sortf")
		requireInputError(t, err, core.ErrCodeInvalidType)
	})
}

func TestCleanSortMaps(t *testing.T) {
	sortf := func(a, b string) bool { return a < b }

	t.Run("Should wrap nil input in a single default triple", func(t *testing.T) {
		sms, err := CleanSortMaps(nil)
		require.NoError(t, err)
		assert.Equal(t, []SortMap{{}}, sms)
	})

	t.Run("Should wrap a single triple", func(t *testing.T) {
		sms, err := CleanSortMaps([3]any{sortf, nil, true})
		require.NoError(t, err)
		require.Len(t, sms, 1)
		assert.NotNil(t, sms[0].Sort)
		assert.True(t, sms[0].MapThenSort)
	})

	t.Run("Should clean each list element and preserve order", func(t *testing.T) {
		sms, err := CleanSortMaps([]any{
			[3]any{sortf, nil, false},
			[]any{},
		})
		require.NoError(t, err)
		require.Len(t, sms, 2)
		assert.NotNil(t, sms[0].Sort)
		assert.Equal(t, SortMap{}, sms[1])
	})

	t.Run("Should propagate element errors", func(t *testing.T) {
		_, err := CleanSortMaps([]any{[]any{"reverse", nil, false}})
		requireInputError(t, err, core.ErrCodeNotCallable)
	})

	t.Run("Should fail on input that is not a list of triples", func(t *testing.T) {
		_, err := CleanSortMaps(42)
		requireInputError(t, err, core.ErrCodeInvalidType)
	})
}
