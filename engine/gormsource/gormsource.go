// Package gormsource builds the schema graph for a GORM model so that a
// gorm-backed query can be used as a cleaner datasource.
package gormsource

import (
	"fmt"
	"strings"
	"sync"

	"gorm.io/gorm"
	gormschema "gorm.io/gorm/schema"

	"github.com/chartpool/chartpool/engine/schema"
)

// QuerySet adapts a GORM model (and optionally the *gorm.DB it will run on)
// to the datasource.QuerySet contract.
type QuerySet struct {
	db    *gorm.DB
	model *schema.Model
	query schema.QueryInfo
}

// Option configures a QuerySet.
type Option func(*settings)

type settings struct {
	annotations []string
	extras      []string
}

// WithAnnotations declares annotation names already applied to the query.
func WithAnnotations(names ...string) Option {
	return func(s *settings) {
		s.annotations = append(s.annotations, names...)
	}
}

// WithExtras declares extra computed field names already applied to the query.
func WithExtras(names ...string) Option {
	return func(s *settings) {
		s.extras = append(s.extras, names...)
	}
}

// NewQuerySet builds a QuerySet over the given GORM model value. The db may
// be nil when only schema resolution is needed; its naming strategy is used
// when present.
func NewQuerySet(db *gorm.DB, model any, opts ...Option) (*QuerySet, error) {
	var cfg settings
	for _, opt := range opts {
		opt(&cfg)
	}
	node, err := parseModel(model, namerFor(db))
	if err != nil {
		return nil, err
	}
	return &QuerySet{
		db:    db,
		model: node,
		query: schema.NewQueryInfo(cfg.annotations, cfg.extras),
	}, nil
}

func (q *QuerySet) Model() *schema.Model    { return q.model }
func (q *QuerySet) Query() schema.QueryInfo { return q.query }

// DB returns the underlying gorm handle, nil for schema-only query sets.
func (q *QuerySet) DB() *gorm.DB { return q.db }

// ParseModel builds the schema-graph node for a GORM model struct using the
// default naming strategy.
func ParseModel(model any) (*schema.Model, error) {
	return parseModel(model, gormschema.NamingStrategy{})
}

func namerFor(db *gorm.DB) gormschema.Namer {
	if db != nil && db.NamingStrategy != nil {
		return db.NamingStrategy
	}
	return gormschema.NamingStrategy{}
}

func parseModel(model any, namer gormschema.Namer) (*schema.Model, error) {
	sch, err := gormschema.Parse(model, &sync.Map{}, namer)
	if err != nil {
		return nil, fmt.Errorf("failed to parse gorm model %T: %w", model, err)
	}
	b := &builder{
		namer: namer,
		seen:  make(map[*gormschema.Schema]*schema.Model),
	}
	return b.model(sch), nil
}

type builder struct {
	namer gormschema.Namer
	seen  map[*gormschema.Schema]*schema.Model
}

// model converts one gorm schema into a graph node, memoizing per schema so
// mutually-referencing models terminate.
func (b *builder) model(sch *gormschema.Schema) *schema.Model {
	if node, ok := b.seen[sch]; ok {
		return node
	}
	node := schema.NewModel(sch.Table)
	b.seen[sch] = node

	for _, field := range sch.Fields {
		// Relation object fields carry no column of their own.
		if field.DBName == "" {
			continue
		}
		node.AddField(&schema.Field{
			Name:        field.DBName,
			VerboseName: humanize(field.DBName),
			Direct:      true,
		})
	}
	for name, rel := range sch.Relationships.Relations {
		if rel.FieldSchema == nil {
			continue
		}
		node.AddField(&schema.Field{
			Name:        b.lookupName(name),
			AttName:     foreignKeyColumn(rel),
			VerboseName: humanize(b.lookupName(name)),
			Related:     b.model(rel.FieldSchema),
			Direct:      rel.Type == gormschema.BelongsTo || rel.Type == gormschema.Many2Many,
		})
	}
	return node
}

// lookupName derives the lookup segment for a relationship from its Go field
// name, e.g. "Author" becomes "author".
func (b *builder) lookupName(relName string) string {
	return b.namer.ColumnName("", relName)
}

// foreignKeyColumn returns the storage column backing a forward relation,
// e.g. "author_id" for a BelongsTo on Author.
func foreignKeyColumn(rel *gormschema.Relationship) string {
	if rel.Type != gormschema.BelongsTo {
		return ""
	}
	for _, ref := range rel.References {
		if ref.ForeignKey != nil && !ref.OwnPrimaryKey {
			return ref.ForeignKey.DBName
		}
	}
	return ""
}

func humanize(column string) string {
	return strings.ReplaceAll(column, "_", " ")
}
