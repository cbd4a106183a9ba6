package series

import (
	"sort"

	"github.com/chartpool/chartpool/engine/core"
	"github.com/chartpool/chartpool/engine/datasource"
	"github.com/chartpool/chartpool/engine/schema"
)

// -----------------------------------------------------------------------------
// SeriesSpec
// -----------------------------------------------------------------------------

// SeriesSpec is the canonical, fully-populated record for one series, keyed
// by series name inside a pool. Simple data pool series populate Field and
// FieldAlias; pivot series populate Func, Categories, LegendBy, TopNPerCat
// and FieldAliases. Options carries any remaining rendering options
// untouched.
type SeriesSpec struct {
	Source datasource.QuerySet

	// Simple form
	Field      string
	FieldAlias string

	// Pivot form
	Func         *datasource.Aggregate
	Categories   []string
	LegendBy     []string
	TopNPerCat   int
	FieldAliases map[string]string

	Options core.Options
}

// DataPool maps series name to its canonical spec for simple per-field
// series. Duplicate input names overwrite: last write wins.
type DataPool map[string]*SeriesSpec

// PivotDataPool maps series name to its canonical spec for pivoted series.
// Duplicate input names overwrite: last write wins.
type PivotDataPool map[string]*SeriesSpec

// ChartOptions maps series name to its cleaned rendering options. Chart
// (non-pivot) entries carry the "_x_axis_term" back-reference.
type ChartOptions map[string]core.Options

// names returns the sorted series names of a pool-like map, used to build
// deterministic error messages.
func sortedNames[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// copyTemplateOptions deep-copies a group's options template so per-series
// mutation never leaks across series. The live source and func objects are
// reattached verbatim: they are shared collaborators, not payload.
func copyTemplateOptions(options core.Options) (core.Options, error) {
	live := make(core.Options, 2)
	rest := make(core.Options, len(options))
	for key, value := range options {
		switch key {
		case "source", "func":
			live[key] = value
		default:
			rest[key] = value
		}
	}
	copied, err := core.DeepCopyOptions(rest)
	if err != nil {
		return nil, err
	}
	for key, value := range live {
		copied[key] = value
	}
	return copied, nil
}

// -----------------------------------------------------------------------------
// Shared field helpers
// -----------------------------------------------------------------------------

// cleanCategories accepts the category shorthand (a single lookup string or
// a non-empty list of lookups), validates every lookup against the source
// and returns the normalized list along with the derived alias map.
func cleanCategories(value any, source datasource.QuerySet) ([]string, map[string]string, error) {
	var categories []string
	switch v := value.(type) {
	case string:
		categories = []string{v}
	case []string:
		categories = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, nil, core.NewInvalidTypeError(item, "a field lookup string")
			}
			categories = append(categories, s)
		}
	default:
		return nil, nil, core.NewInvalidTypeError(value, "'categories' as a string or list")
	}
	if len(categories) == 0 {
		return nil, nil, core.NewErrorf(core.ErrCodeEmptyValue,
			"'categories' list must contain at least one valid model field, got %v", value)
	}
	aliases := make(map[string]string, len(categories))
	for _, category := range categories {
		label, err := schema.ResolveLookup(source.Model(), category, source.Query())
		if err != nil {
			return nil, nil, err
		}
		aliases[category] = label
	}
	return categories, aliases, nil
}

// cleanLegendBy accepts the legend shorthand (absent or a list of lookups),
// validates every lookup and returns the normalized list with its alias map.
func cleanLegendBy(value any, source datasource.QuerySet) ([]string, map[string]string, error) {
	var legendBy []string
	switch v := value.(type) {
	case nil:
	case string:
		if v != "" {
			return nil, nil, core.NewInvalidTypeError(value, "'legend_by' as a list")
		}
	case []string:
		legendBy = v
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, nil, core.NewInvalidTypeError(item, "a field lookup string")
			}
			legendBy = append(legendBy, s)
		}
	default:
		return nil, nil, core.NewInvalidTypeError(value, "'legend_by' as a list")
	}
	if legendBy == nil {
		legendBy = []string{}
	}
	aliases := make(map[string]string, len(legendBy))
	for _, lg := range legendBy {
		label, err := schema.ResolveLookup(source.Model(), lg, source.Query())
		if err != nil {
			return nil, nil, err
		}
		aliases[lg] = label
	}
	return legendBy, aliases, nil
}

// cleanTopN validates the top_n_per_cat option: a non-negative integer.
func cleanTopN(value any) (int, error) {
	var n int
	switch v := value.(type) {
	case int:
		n = v
	case int32:
		n = int(v)
	case int64:
		n = int(v)
	case uint64:
		n = int(v)
	case float64:
		if v != float64(int(v)) {
			return 0, core.NewInvalidTypeError(value, "'top_n_per_cat' as an int")
		}
		n = int(v)
	default:
		return 0, core.NewInvalidTypeError(value, "'top_n_per_cat' as an int")
	}
	if n < 0 {
		return 0, core.NewErrorf(core.ErrCodeInvalidType,
			"'top_n_per_cat' must not be negative, got %d", n)
	}
	return n, nil
}
