package series

import (
	"github.com/chartpool/chartpool/engine/core"
	"github.com/chartpool/chartpool/engine/datasource"
)

// CleanPivotDataPool normalizes the pivot data pool series input into its
// canonical map form.
//
// The primary input shape is a list of groups whose terms map series names
// to either a bare aggregate function or an option record overriding the
// group's template. A canonical PivotDataPool is accepted and returned
// unchanged. Duplicate series names overwrite each other, last write wins.
func CleanPivotDataPool(input any) (PivotDataPool, error) {
	groups, pool, err := coerceGroups[PivotDataPool](input)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		return pool, nil
	}

	result := make(PivotDataPool)
	for _, group := range groups {
		if err := convertPivotGroup(group, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

func convertPivotGroup(group *Group, result PivotDataPool) error {
	terms, err := coercePivotTerms(group.Terms)
	if err != nil {
		return err
	}
	for name, raw := range terms {
		term, err := decodePivotTerm(raw)
		if err != nil {
			return err
		}
		spec, err := buildPivotSpec(group.Options, term)
		if err != nil {
			return err
		}
		result[name] = spec
	}
	return nil
}

func coercePivotTerms(value any) (map[string]any, error) {
	var terms map[string]any
	switch v := value.(type) {
	case map[string]any:
		terms = v
	case core.Options:
		terms = v
	case map[string]*datasource.Aggregate:
		terms = make(map[string]any, len(v))
		for name, agg := range v {
			terms[name] = agg
		}
	case map[string]PivotTerm:
		terms = make(map[string]any, len(v))
		for name, term := range v {
			terms[name] = term
		}
	default:
		return nil, core.NewInvalidTypeError(value, "a dict of terms")
	}
	if len(terms) == 0 {
		return nil, core.NewEmptyValueError("terms")
	}
	return terms, nil
}

// buildPivotSpec materializes one pivot series: deep-copy the shared
// options, overlay the term record, validate the required source, func and
// categories, apply defaults and merge the field alias maps.
func buildPivotSpec(options core.Options, term PivotTerm) (*SeriesSpec, error) {
	opts, err := copyTemplateOptions(options)
	if err != nil {
		return nil, err
	}
	opts.Merge(term.AsRecord())

	for _, key := range []string{"source", "func", "categories"} {
		if _, ok := opts[key]; !ok {
			return nil, core.NewMissingKeyError(opts, key)
		}
	}

	source, err := datasource.ValidateSource(opts["source"])
	if err != nil {
		return nil, err
	}
	fn, err := datasource.ValidateFunc(opts["func"])
	if err != nil {
		return nil, err
	}
	categories, catAliases, err := cleanCategories(opts["categories"], source)
	if err != nil {
		return nil, err
	}

	legendBy, legendAliases, err := cleanLegendBy(opts["legend_by"], source)
	if err != nil {
		return nil, err
	}

	topN := 0
	if raw, ok := opts["top_n_per_cat"]; ok {
		topN, err = cleanTopN(raw)
		if err != nil {
			return nil, err
		}
	}

	explicit := map[string]string{}
	if raw, ok := opts["field_aliases"]; ok {
		explicit, err = core.AsStringMap(raw)
		if err != nil {
			return nil, err
		}
	}

	for _, key := range []string{"source", "func", "categories", "legend_by", "top_n_per_cat", "field_aliases"} {
		delete(opts, key)
	}

	return &SeriesSpec{
		Source:       source,
		Func:         fn,
		Categories:   categories,
		LegendBy:     legendBy,
		TopNPerCat:   topN,
		FieldAliases: MergeFieldAliases(explicit, catAliases, legendAliases),
		Options:      opts,
	}, nil
}
