package series

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMergeFieldAliases(t *testing.T) {
	t.Run("Should give explicit aliases precedence over derived ones", func(t *testing.T) {
		merged := MergeFieldAliases(
			map[string]string{"genre": "Kind"},
			map[string]string{"genre": "Genre", "author__name": "Author Name"},
			map[string]string{"genre": "Legend Genre", "month": "Month"},
		)
		assert.Equal(t, map[string]string{
			"genre":        "Kind",
			"author__name": "Author Name",
			"month":        "Month",
		}, merged)
	})

	t.Run("Should not mutate any input layer", func(t *testing.T) {
		explicit := map[string]string{"genre": "Kind"}
		category := map[string]string{"genre": "Genre"}
		MergeFieldAliases(explicit, category, nil)
		assert.Equal(t, map[string]string{"genre": "Genre"}, category)
		assert.Equal(t, map[string]string{"genre": "Kind"}, explicit)
	})

	t.Run("Should return an empty map for empty layers", func(t *testing.T) {
		assert.Empty(t, MergeFieldAliases(nil, nil, nil))
	})
}
