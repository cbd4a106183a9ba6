package series

import (
	"github.com/chartpool/chartpool/engine/core"
	"github.com/chartpool/chartpool/engine/datasource"
	"github.com/chartpool/chartpool/engine/schema"
)

// CleanDataPool normalizes the simple (per-field) data pool series input
// into its canonical map form.
//
// The primary input shape is a list of groups, each carrying a shared
// options template and a list of terms; a term is either a bare series name
// or a record with a "_new_name" designator whose remaining keys override
// the template. A canonical DataPool is accepted and returned unchanged.
// Duplicate series names overwrite each other, last write wins.
func CleanDataPool(input any) (DataPool, error) {
	groups, pool, err := coerceGroups[DataPool](input)
	if err != nil {
		return nil, err
	}
	if pool != nil {
		return pool, nil
	}

	result := make(DataPool)
	for _, group := range groups {
		if err := convertDataPoolGroup(group, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// coerceGroups performs the shared boundary checks of the pool cleaners:
// empty input is rejected, the canonical pool type P short-circuits, and
// anything that is not a list of groups is a type error.
func coerceGroups[P ~map[string]*SeriesSpec](input any) ([]*Group, P, error) {
	switch v := input.(type) {
	case nil:
		return nil, nil, core.NewEmptyValueError("series")
	case P:
		if len(v) == 0 {
			return nil, nil, core.NewEmptyValueError("series")
		}
		return nil, v, nil
	case []*Group:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		groups, err := coerceGroupList(items)
		return groups, nil, err
	case []Group:
		items := make([]any, len(v))
		for i := range v {
			items[i] = &v[i]
		}
		groups, err := coerceGroupList(items)
		return groups, nil, err
	case []any:
		groups, err := coerceGroupList(v)
		return groups, nil, err
	case []map[string]any:
		items := make([]any, len(v))
		for i := range v {
			items[i] = v[i]
		}
		groups, err := coerceGroupList(items)
		return groups, nil, err
	default:
		return nil, nil, core.NewInvalidTypeError(input, "a list of series groups")
	}
}

func coerceGroupList(items []any) ([]*Group, error) {
	if len(items) == 0 {
		return nil, core.NewEmptyValueError("series")
	}
	groups := make([]*Group, 0, len(items))
	for _, item := range items {
		group, err := decodeGroup(item)
		if err != nil {
			return nil, err
		}
		groups = append(groups, group)
	}
	return groups, nil
}

// convertDataPoolGroup expands one group's terms into canonical series specs
// and inserts them into the result keyed by resolved name.
func convertDataPoolGroup(group *Group, result DataPool) error {
	terms, err := coerceTermList(group.Terms)
	if err != nil {
		return err
	}
	for _, raw := range terms {
		term, err := decodeTerm(raw)
		if err != nil {
			return err
		}
		spec, err := buildDataPoolSpec(group.Options, term)
		if err != nil {
			return err
		}
		result[term.Name] = spec
	}
	return nil
}

func coerceTermList(value any) ([]any, error) {
	var terms []any
	switch v := value.(type) {
	case []any:
		terms = v
	case []string:
		terms = make([]any, len(v))
		for i := range v {
			terms[i] = v[i]
		}
	case []Term:
		terms = make([]any, len(v))
		for i := range v {
			terms[i] = v[i]
		}
	default:
		return nil, core.NewInvalidTypeError(value, "a list of terms")
	}
	if len(terms) == 0 {
		return nil, core.NewEmptyValueError("terms")
	}
	return terms, nil
}

// buildDataPoolSpec materializes one simple series: deep-copy the shared
// options, overlay the term record, validate the source and the designated
// field, and derive the field alias.
func buildDataPoolSpec(options core.Options, term Term) (*SeriesSpec, error) {
	opts, err := copyTemplateOptions(options)
	if err != nil {
		return nil, err
	}
	if term.Kind == TermRecord {
		opts.Merge(term.Record)
	}

	rawSource, ok := opts["source"]
	if !ok {
		return nil, core.NewMissingKeyError(opts, "source")
	}
	source, err := datasource.ValidateSource(rawSource)
	if err != nil {
		return nil, err
	}
	delete(opts, "source")

	field := term.Name
	if rawField, ok := opts["field"]; ok {
		field, ok = rawField.(string)
		if !ok {
			return nil, core.NewInvalidTypeError(rawField, "'field' as a string")
		}
		delete(opts, "field")
	}
	label, err := schema.ResolveLookup(source.Model(), field, source.Query())
	if err != nil {
		return nil, err
	}
	// A designated name differing from the field doubles as its alias.
	if term.Name != field {
		label = term.Name
	}

	alias := label
	if rawAlias, ok := opts["field_alias"]; ok {
		alias, ok = rawAlias.(string)
		if !ok {
			return nil, core.NewInvalidTypeError(rawAlias, "'field_alias' as a string")
		}
		delete(opts, "field_alias")
	}

	return &SeriesSpec{
		Source:     source,
		Field:      field,
		FieldAlias: alias,
		Options:    opts,
	}, nil
}
