package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chartpool/chartpool/engine/core"
	"github.com/chartpool/chartpool/engine/datasource"
)

func newChartPool(t *testing.T) DataPool {
	t.Helper()
	books := newBookSource()
	sales := newSalesSource()
	pool, err := CleanDataPool([]any{
		map[string]any{
			"options": map[string]any{"source": books},
			"terms":   []any{"rating", "title"},
		},
		map[string]any{
			"options": map[string]any{"source": sales},
			"terms":   []any{"amount"},
		},
	})
	require.NoError(t, err)
	return pool
}

func TestCleanChartOptions(t *testing.T) {
	pool := newChartPool(t)

	t.Run("Should accept a map entry linking series on the same table", func(t *testing.T) {
		options, err := CleanChartOptions(map[string]any{
			"rating": map[string]any{"_x_axis_term": "title", "type": "line"},
		}, pool)
		require.NoError(t, err)
		assert.Equal(t, "title", options["rating"]["_x_axis_term"])
		assert.Equal(t, "line", options["rating"]["type"])
	})

	t.Run("Should fail when the x axis series lives on another table", func(t *testing.T) {
		_, err := CleanChartOptions(map[string]any{
			"rating": map[string]any{"_x_axis_term": "amount"},
		}, pool)
		requireInputError(t, err, core.ErrCodeTableMismatch)
	})

	t.Run("Should fail on an unknown series name", func(t *testing.T) {
		_, err := CleanChartOptions(map[string]any{
			"pages": map[string]any{"_x_axis_term": "title"},
		}, pool)
		requireInputError(t, err, core.ErrCodeUnknownSeries)
	})

	t.Run("Should fail on an unknown x axis term", func(t *testing.T) {
		_, err := CleanChartOptions(map[string]any{
			"rating": map[string]any{"_x_axis_term": "pages"},
		}, pool)
		requireInputError(t, err, core.ErrCodeUnknownSeries)
	})

	t.Run("Should fail when the x axis term is missing", func(t *testing.T) {
		_, err := CleanChartOptions(map[string]any{
			"rating": map[string]any{"type": "line"},
		}, pool)
		requireInputError(t, err, core.ErrCodeMissingKey)
	})

	t.Run("Should convert the list form grouping y terms under their x term", func(t *testing.T) {
		options, err := CleanChartOptions([]any{
			map[string]any{
				"options": map[string]any{"type": "column"},
				"terms": map[string]any{
					"title": []any{
						"rating",
						map[string]any{"rating": map[string]any{"type": "line"}},
					},
				},
			},
		}, pool)
		require.NoError(t, err)
		// The record form overwrote the bare form for the same series name.
		assert.Equal(t, "line", options["rating"]["type"])
		assert.Equal(t, "title", options["rating"]["_x_axis_term"])
	})

	t.Run("Should fail when the list form terms is not a dict", func(t *testing.T) {
		_, err := CleanChartOptions([]any{
			map[string]any{
				"options": map[string]any{},
				"terms":   []any{"rating"},
			},
		}, pool)
		requireInputError(t, err, core.ErrCodeInvalidType)
	})

	t.Run("Should fail when y terms is not a list", func(t *testing.T) {
		_, err := CleanChartOptions([]any{
			map[string]any{
				"options": map[string]any{},
				"terms":   map[string]any{"title": "rating"},
			},
		}, pool)
		requireInputError(t, err, core.ErrCodeInvalidType)
	})

	t.Run("Should fail on input that is neither dict nor list", func(t *testing.T) {
		_, err := CleanChartOptions("rating", pool)
		requireInputError(t, err, core.ErrCodeInvalidType)
	})
}

func TestCleanPivotChartOptions(t *testing.T) {
	books := newBookSource()
	pool, err := CleanPivotDataPool([]any{
		map[string]any{
			"options": map[string]any{"source": books, "categories": "genre"},
			"terms": map[string]any{
				"avg_rating": datasource.Avg("rating"),
				"max_rating": datasource.Max("rating"),
			},
		},
	})
	require.NoError(t, err)

	t.Run("Should validate map entries against the pool series", func(t *testing.T) {
		options, err := CleanPivotChartOptions(map[string]any{
			"avg_rating": map[string]any{"stacking": true},
		}, pool)
		require.NoError(t, err)
		assert.Equal(t, true, options["avg_rating"]["stacking"])
	})

	t.Run("Should fail on an unknown series and list allowed values", func(t *testing.T) {
		_, err := CleanPivotChartOptions(map[string]any{
			"median_rating": map[string]any{},
		}, pool)
		requireInputError(t, err, core.ErrCodeUnknownSeries)
		assert.Contains(t, err.Error(), "avg_rating")
		assert.Contains(t, err.Error(), "max_rating")
	})

	t.Run("Should fail on a non-dict entry", func(t *testing.T) {
		_, err := CleanPivotChartOptions(map[string]any{
			"avg_rating": "stacked",
		}, pool)
		requireInputError(t, err, core.ErrCodeInvalidType)
	})

	t.Run("Should convert bare name terms from the list form", func(t *testing.T) {
		options, err := CleanPivotChartOptions([]any{
			map[string]any{
				"options": map[string]any{"stacking": true},
				"terms":   []any{"avg_rating", "max_rating"},
			},
		}, pool)
		require.NoError(t, err)
		require.Len(t, options, 2)
		assert.Equal(t, true, options["max_rating"]["stacking"])
	})

	t.Run("Should convert record terms with per-series overrides", func(t *testing.T) {
		options, err := CleanPivotChartOptions([]any{
			map[string]any{
				"options": map[string]any{"stacking": true},
				"terms": []any{
					map[string]any{
						"avg_rating": map[string]any{"stacking": false},
					},
				},
			},
		}, pool)
		require.NoError(t, err)
		assert.Equal(t, false, options["avg_rating"]["stacking"])
	})

	t.Run("Should fail when a record term override is not a dict", func(t *testing.T) {
		_, err := CleanPivotChartOptions([]any{
			map[string]any{
				"options": map[string]any{},
				"terms":   []any{map[string]any{"avg_rating": "stacked"}},
			},
		}, pool)
		requireInputError(t, err, core.ErrCodeInvalidType)
	})

	t.Run("Should fail on empty list input", func(t *testing.T) {
		_, err := CleanPivotChartOptions([]any{}, pool)
		requireInputError(t, err, core.ErrCodeEmptyValue)
	})
}
