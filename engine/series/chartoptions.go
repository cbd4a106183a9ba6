package series

import (
	"github.com/chartpool/chartpool/engine/core"
)

// xAxisTermKey is the back-reference a chart series entry carries to the
// series providing its x axis.
const xAxisTermKey = "_x_axis_term"

// -----------------------------------------------------------------------------
// Pivot chart options
// -----------------------------------------------------------------------------

// CleanPivotChartOptions normalizes the pivot chart series options input and
// validates every entry against the series names of an already-cleaned
// pivot data pool.
//
// A map input is validated in place; a list input is converted first (terms
// are bare series names or records of per-series overrides on top of the
// group's options template) and then validated the same way.
func CleanPivotChartOptions(input any, pool PivotDataPool) (ChartOptions, error) {
	options, err := coerceChartOptions(input, convertPivotChartGroup)
	if err != nil {
		return nil, err
	}
	for name := range options {
		if _, ok := pool[name]; !ok {
			return nil, core.NewUnknownSeriesError(name, sortedNames(pool))
		}
	}
	return options, nil
}

// convertPivotChartGroup expands one list-form group: each term is either a
// bare series name taking the template options or a record mapping series
// names to override records.
func convertPivotChartGroup(group *Group, result ChartOptions) error {
	terms, ok := asAnyList(group.Terms)
	if !ok {
		return core.NewInvalidTypeError(group.Terms, "a list of terms")
	}
	for _, raw := range terms {
		switch term := raw.(type) {
		case string:
			opts, err := core.DeepCopyOptions(group.Options)
			if err != nil {
				return err
			}
			result[term] = opts
		case map[string]any:
			if err := mergeOverrideTerms(group.Options, core.Options(term), result); err != nil {
				return err
			}
		case core.Options:
			if err := mergeOverrideTerms(group.Options, term, result); err != nil {
				return err
			}
		default:
			return core.NewInvalidTypeError(raw, "a string or record")
		}
	}
	return nil
}

func mergeOverrideTerms(options, overrides core.Options, result ChartOptions) error {
	for name, raw := range overrides {
		override, ok := asOptions(raw)
		if !ok {
			return core.NewInvalidTypeError(raw, "a dict of series options")
		}
		opts, err := core.DeepCopyOptions(options)
		if err != nil {
			return err
		}
		opts.Merge(override)
		result[name] = opts
	}
	return nil
}

// -----------------------------------------------------------------------------
// Chart options
// -----------------------------------------------------------------------------

// CleanChartOptions normalizes the chart series options input and validates
// it against an already-cleaned data pool. Every entry must designate an
// "_x_axis_term" naming another pool series whose source selects from the
// same table; a cross-table reference is a mismatch error.
//
// The list input form groups y-axis terms under their x-axis term: terms is
// a map from x series name to a list of y terms, each a bare series name or
// a single-entry record of overrides.
func CleanChartOptions(input any, pool DataPool) (ChartOptions, error) {
	options, err := coerceChartOptions(input, convertChartGroup)
	if err != nil {
		return nil, err
	}
	for name, opts := range options {
		if _, ok := pool[name]; !ok {
			return nil, core.NewUnknownSeriesError(name, sortedNames(pool))
		}
		raw, ok := opts[xAxisTermKey]
		if !ok {
			return nil, core.NewErrorf(core.ErrCodeMissingKey,
				"expecting a %q for %v", xAxisTermKey, opts)
		}
		xTerm, ok := raw.(string)
		if !ok {
			return nil, core.NewInvalidTypeError(raw, "a series name string")
		}
		if _, ok := pool[xTerm]; !ok {
			return nil, core.NewUnknownSeriesError(xTerm, sortedNames(pool))
		}
		if pool[name].Source.Model() != pool[xTerm].Source.Model() {
			return nil, core.NewTableMismatchError(name, xTerm)
		}
	}
	return options, nil
}

// convertChartGroup expands one list-form group: terms maps each x-axis
// series name to the list of y-axis terms plotted against it.
func convertChartGroup(group *Group, result ChartOptions) error {
	terms, ok := asOptions(group.Terms)
	if !ok {
		return core.NewInvalidTypeError(group.Terms, "a dict of terms")
	}
	if len(terms) == 0 {
		return core.NewEmptyValueError("terms")
	}
	for xTerm, rawList := range terms {
		yTerms, ok := asAnyList(rawList)
		if !ok {
			return core.NewInvalidTypeError(rawList, "a list of y-axis terms")
		}
		for _, raw := range yTerms {
			name, override, err := decodeYTerm(raw)
			if err != nil {
				return err
			}
			opts, err := core.DeepCopyOptions(group.Options)
			if err != nil {
				return err
			}
			if override != nil {
				opts.Merge(override)
			}
			opts[xAxisTermKey] = xTerm
			result[name] = opts
		}
	}
	return nil
}

// decodeYTerm accepts a y-axis term: a bare series name or a single-entry
// record mapping the series name to its option overrides.
func decodeYTerm(raw any) (string, core.Options, error) {
	switch term := raw.(type) {
	case string:
		return term, nil, nil
	case map[string]any, core.Options:
		record, _ := asOptions(term)
		if len(record) != 1 {
			return "", nil, core.NewInvalidTypeError(raw, "a single-entry record of series overrides")
		}
		for name, value := range record {
			override, ok := asOptions(value)
			if !ok {
				return "", nil, core.NewInvalidTypeError(value, "a dict of series options")
			}
			return name, override, nil
		}
		return "", nil, core.NewInvalidTypeError(raw, "a single-entry record of series overrides")
	default:
		return "", nil, core.NewInvalidTypeError(raw, "a string or record")
	}
}

// -----------------------------------------------------------------------------
// Shared coercion
// -----------------------------------------------------------------------------

// coerceChartOptions accepts the map form directly and converts the list
// form through the given group converter.
func coerceChartOptions(input any, convert func(*Group, ChartOptions) error) (ChartOptions, error) {
	switch v := input.(type) {
	case nil:
		return nil, core.NewInvalidTypeError(input, "'series_options' as a dict or list")
	case ChartOptions:
		return checkChartOptionsMap(v)
	case map[string]core.Options:
		return checkChartOptionsMap(ChartOptions(v))
	case map[string]any:
		options := make(ChartOptions, len(v))
		for name, raw := range v {
			opts, ok := asOptions(raw)
			if !ok {
				return nil, core.NewInvalidTypeError(raw, "a dict of series options")
			}
			options[name] = opts
		}
		return options, nil
	case []any, []Group, []*Group, []map[string]any:
		items := optionGroupItems(v)
		if len(items) == 0 {
			return nil, core.NewEmptyValueError("series_options")
		}
		groups, err := coerceGroupList(items)
		if err != nil {
			return nil, err
		}
		result := make(ChartOptions)
		for _, group := range groups {
			if err := convert(group, result); err != nil {
				return nil, err
			}
		}
		return result, nil
	default:
		return nil, core.NewInvalidTypeError(input, "'series_options' as a dict or list")
	}
}

func optionGroupItems(value any) []any {
	switch v := value.(type) {
	case []any:
		return v
	case []Group:
		items := make([]any, len(v))
		for i := range v {
			items[i] = &v[i]
		}
		return items
	case []*Group:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items
	default:
		return nil
	}
}

func checkChartOptionsMap(options ChartOptions) (ChartOptions, error) {
	for _, opts := range options {
		if opts == nil {
			return nil, core.NewInvalidTypeError(opts, "a dict of series options")
		}
	}
	return options, nil
}

func asOptions(value any) (core.Options, bool) {
	switch v := value.(type) {
	case core.Options:
		return v, true
	case map[string]any:
		return core.Options(v), true
	default:
		return nil, false
	}
}

func asAnyList(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []string:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		return items, true
	default:
		return nil, false
	}
}
