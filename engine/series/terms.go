package series

import (
	"github.com/go-viper/mapstructure/v2"

	"github.com/chartpool/chartpool/engine/core"
	"github.com/chartpool/chartpool/engine/datasource"
)

// newNameKey designates the series name inside a record-form term and is
// consumed during normalization.
const newNameKey = "_new_name"

// -----------------------------------------------------------------------------
// Group
// -----------------------------------------------------------------------------

// Group is one element of the loose series input: a template of shared
// options plus the per-series terms that override it. The shape of Terms
// differs per cleaner (list for data pools, map for pivot pools).
type Group struct {
	Options core.Options `mapstructure:"options"`
	Terms   any          `mapstructure:"terms"`
}

// decodeGroup converts one loose list element into a Group, validating that
// both mandatory keys are present and that options is a map.
func decodeGroup(value any) (*Group, error) {
	switch v := value.(type) {
	case Group:
		return checkGroup(&v)
	case *Group:
		return checkGroup(v)
	case map[string]any:
		for _, key := range []string{"options", "terms"} {
			if _, ok := v[key]; !ok {
				return nil, core.NewMissingKeyError(v, key)
			}
		}
		var group Group
		if err := mapstructure.Decode(v, &group); err != nil {
			return nil, core.NewInvalidTypeError(v, "a series group record")
		}
		return checkGroup(&group)
	default:
		return nil, core.NewInvalidTypeError(value, "a series group record")
	}
}

func checkGroup(group *Group) (*Group, error) {
	if group.Options == nil {
		return nil, core.NewInvalidTypeError(group.Options, "a dict of options")
	}
	if group.Terms == nil {
		return nil, core.NewMissingKeyError(group, "terms")
	}
	return group, nil
}

// -----------------------------------------------------------------------------
// Term — data pool term (Name | Record)
// -----------------------------------------------------------------------------

// TermKind discriminates the accepted shorthand forms of a data pool term.
type TermKind int

const (
	// TermName is a bare series name; the field defaults to it.
	TermName TermKind = iota + 1
	// TermRecord is an option record carrying a "_new_name" designator.
	TermRecord
)

// Term is the tagged-union form of a data pool term, produced at the input
// boundary so downstream code never re-branches on dynamic shapes.
type Term struct {
	Kind   TermKind
	Name   string
	Record core.Options
}

// decodeTerm converts one loose data pool term into its tagged-union form.
// Record terms must carry the "_new_name" designator, which is consumed here.
func decodeTerm(value any) (Term, error) {
	switch v := value.(type) {
	case Term:
		return v, nil
	case string:
		return Term{Kind: TermName, Name: v}, nil
	case core.Options:
		return decodeRecordTerm(v)
	case map[string]any:
		return decodeRecordTerm(core.Options(v))
	default:
		return Term{}, core.NewInvalidTypeError(value, "a string or record")
	}
}

func decodeRecordTerm(record core.Options) (Term, error) {
	raw, ok := record[newNameKey]
	if !ok {
		return Term{}, core.NewMissingKeyError(record, newNameKey)
	}
	name, ok := raw.(string)
	if !ok {
		return Term{}, core.NewInvalidTypeError(raw, "a string series name")
	}
	rest := make(core.Options, len(record)-1)
	for key, value := range record {
		if key == newNameKey {
			continue
		}
		rest[key] = value
	}
	return Term{Kind: TermRecord, Name: name, Record: rest}, nil
}

// -----------------------------------------------------------------------------
// PivotTerm — pivot data pool term (Aggregate | Record)
// -----------------------------------------------------------------------------

// PivotTermKind discriminates the accepted forms of a pivot term value.
type PivotTermKind int

const (
	// PivotAggregate is a bare aggregate function shorthand for
	// a record containing only "func".
	PivotAggregate PivotTermKind = iota + 1
	// PivotRecord is a full option record.
	PivotRecord
)

// PivotTerm is the tagged-union form of one named pivot term value.
type PivotTerm struct {
	Kind   PivotTermKind
	Agg    *datasource.Aggregate
	Record core.Options
}

// AsRecord returns the override record for the term; the aggregate shorthand
// expands to a record containing only the "func" key.
func (t PivotTerm) AsRecord() core.Options {
	if t.Kind == PivotAggregate {
		return core.Options{"func": t.Agg}
	}
	return t.Record
}

// decodePivotTerm converts one loose pivot term value into its tagged-union
// form.
func decodePivotTerm(value any) (PivotTerm, error) {
	switch v := value.(type) {
	case PivotTerm:
		return v, nil
	case *datasource.Aggregate:
		return PivotTerm{Kind: PivotAggregate, Agg: v}, nil
	case core.Options:
		return PivotTerm{Kind: PivotRecord, Record: v}, nil
	case map[string]any:
		return PivotTerm{Kind: PivotRecord, Record: core.Options(v)}, nil
	default:
		return PivotTerm{}, core.NewInvalidTypeError(value, "a record or aggregate function")
	}
}
