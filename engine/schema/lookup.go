package schema

import (
	"strings"

	"github.com/chartpool/chartpool/engine/core"
)

// LookupSeparator joins segments of a dotted field path, e.g. "author__name".
const LookupSeparator = "__"

// QueryInfo carries the names of annotations and extra computed fields
// already applied to a source query. Lookups matching either set are opaque
// and trusted without schema traversal.
type QueryInfo struct {
	annotations map[string]struct{}
	extras      map[string]struct{}
}

// NewQueryInfo builds a QueryInfo from annotation and extra field names.
func NewQueryInfo(annotations, extras []string) QueryInfo {
	q := QueryInfo{
		annotations: make(map[string]struct{}, len(annotations)),
		extras:      make(map[string]struct{}, len(extras)),
	}
	for _, name := range annotations {
		q.annotations[name] = struct{}{}
	}
	for _, name := range extras {
		q.extras[name] = struct{}{}
	}
	return q
}

// HasTerm reports whether the term names an annotation or extra field.
func (q QueryInfo) HasTerm(term string) bool {
	if _, ok := q.annotations[term]; ok {
		return true
	}
	_, ok := q.extras[term]
	return ok
}

// ResolveLookup checks a dotted lookup term against the model graph and
// returns the display label of the final field in the path.
//
// Terms naming an annotation or extra field on the query are accepted
// immediately and returned as-is. Otherwise the first segment must name a
// field reachable on the model; direct fields descend into their related
// model for the remaining segments while reverse relations keep resolving on
// the current model. Any unresolvable segment fails immediately with an
// error enumerating the model's valid lookups.
func ResolveLookup(model *Model, term string, query QueryInfo) (string, error) {
	if query.HasTerm(term) {
		return term, nil
	}

	segments := strings.Split(term, LookupSeparator)
	field, ok := model.Field(segments[0])
	if !ok {
		return "", core.NewUnknownFieldError(segments[0], model.FieldNames())
	}
	if len(segments) == 1 {
		return field.Label(), nil
	}

	rest := strings.Join(segments[1:], LookupSeparator)
	if field.Direct {
		if field.Related == nil {
			return "", core.NewErrorf(core.ErrCodeUnknownField,
				"field %q is not a relation, cannot resolve %q through it", segments[0], rest)
		}
		return ResolveLookup(field.Related, rest, query)
	}
	// Reverse relations resolve the remaining path on the current model.
	return ResolveLookup(model, rest, query)
}
