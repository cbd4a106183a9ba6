package datasource

import (
	"github.com/chartpool/chartpool/engine/core"
	"github.com/chartpool/chartpool/engine/schema"
)

// -----------------------------------------------------------------------------
// QuerySet
// -----------------------------------------------------------------------------

// QuerySet is a realized, already-built queryable source. The cleaners only
// read its schema node and the annotation/extra names on its query; fetching
// rows is the caller's business.
type QuerySet interface {
	// Model returns the schema-graph node the source selects from.
	Model() *schema.Model
	// Query returns the annotation and extra field names already applied.
	Query() schema.QueryInfo
}

// ValidateSource checks that the value supplied under the "source" key is a
// realized QuerySet. Bare model descriptors and anything else are rejected
// with an error naming the value and its type.
func ValidateSource(value any) (QuerySet, error) {
	if qs, ok := value.(QuerySet); ok {
		return qs, nil
	}
	return nil, core.NewErrorf(core.ErrCodeInvalidSource,
		"'source' must be a query set, got %v of type %T instead", value, value)
}

// -----------------------------------------------------------------------------
// TableSource
// -----------------------------------------------------------------------------

// TableSource is a minimal in-memory QuerySet over a schema model. It stands
// in for an ORM-backed query in the CLI and in tests.
type TableSource struct {
	model *schema.Model
	query schema.QueryInfo
}

// NewTableSource builds a TableSource over the given model with no
// annotations or extras.
func NewTableSource(model *schema.Model) *TableSource {
	return &TableSource{model: model, query: schema.NewQueryInfo(nil, nil)}
}

// WithQuery returns a copy of the source carrying the given annotation and
// extra field names.
func (t *TableSource) WithQuery(annotations, extras []string) *TableSource {
	return &TableSource{model: t.model, query: schema.NewQueryInfo(annotations, extras)}
}

func (t *TableSource) Model() *schema.Model    { return t.model }
func (t *TableSource) Query() schema.QueryInfo { return t.query }
