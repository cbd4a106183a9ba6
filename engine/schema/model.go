package schema

// -----------------------------------------------------------------------------
// Model graph
// -----------------------------------------------------------------------------

// Model is a node in the schema graph: a named table-backed record type with
// an ordered field list. Relation fields link to other Model nodes, which is
// how dotted lookups traverse across tables.
type Model struct {
	Name   string
	fields []*Field
	byName map[string]*Field
}

// Field describes a single model field. Relation fields carry a link to the
// related model and a direction: direct fields are declared on this model
// and descend into the related model during lookup traversal, reverse
// relations are implied by another model's declaration.
type Field struct {
	// Name is the attribute name used in lookups, e.g. "author".
	Name string
	// AttName is the storage attribute name, e.g. "author_id". Empty when it
	// does not differ from Name.
	AttName string
	// VerboseName is the human-readable label returned for a resolved lookup.
	VerboseName string
	// Related is the model this field points at, nil for plain value fields.
	Related *Model
	// Direct marks fields declared on this model (concrete columns and
	// forward relations) as opposed to auto-created reverse relations.
	Direct bool
	// GenericReverse marks reverse generic relations, which are never valid
	// lookup targets.
	GenericReverse bool
	// ProxyInherited marks relation fields that only exist on a child proxy
	// model and must not be reachable from the parent.
	ProxyInherited bool
}

// NewModel builds a model node from its field descriptors.
func NewModel(name string, fields ...*Field) *Model {
	m := &Model{
		Name:   name,
		fields: fields,
		byName: make(map[string]*Field, len(fields)),
	}
	for _, f := range fields {
		m.byName[f.Name] = f
		if f.AttName != "" {
			m.byName[f.AttName] = f
		}
	}
	return m
}

// AddField appends a field descriptor after construction. Needed to close
// cycles when two models reference each other.
func (m *Model) AddField(f *Field) {
	m.fields = append(m.fields, f)
	m.byName[f.Name] = f
	if f.AttName != "" {
		m.byName[f.AttName] = f
	}
}

// Field returns the descriptor registered under the given name or storage
// attribute name.
func (m *Model) Field(name string) (*Field, bool) {
	f, ok := m.byName[name]
	if !ok || f.excluded() {
		return nil, false
	}
	return f, true
}

// FieldNames returns every name a lookup may start with on this model: field
// names plus their storage attribute names, excluding reverse generic
// relations and proxy-child inheritance artifacts. Order follows field
// declaration order.
func (m *Model) FieldNames() []string {
	names := make([]string, 0, len(m.fields))
	seen := make(map[string]struct{}, len(m.fields))
	for _, f := range m.fields {
		if f.excluded() {
			continue
		}
		for _, name := range []string{f.Name, f.AttName} {
			if name == "" {
				continue
			}
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	return names
}

func (f *Field) excluded() bool {
	return f.GenericReverse || f.ProxyInherited
}

// Label returns the display label for the field, falling back to its name
// when no verbose name was declared.
func (f *Field) Label() string {
	if f.VerboseName != "" {
		return f.VerboseName
	}
	return f.Name
}
