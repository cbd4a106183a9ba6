package datasource

import "github.com/chartpool/chartpool/engine/core"

// AggregateFunc identifies a grouping computation applied to a field.
type AggregateFunc string

const (
	FuncCount AggregateFunc = "count"
	FuncSum   AggregateFunc = "sum"
	FuncAvg   AggregateFunc = "avg"
	FuncMin   AggregateFunc = "min"
	FuncMax   AggregateFunc = "max"
)

// Aggregate is a value object pairing an aggregate function with the field
// lookup it applies to. Pivot series must use one of these for their "func"
// slot; arbitrary callables are rejected.
type Aggregate struct {
	fn    AggregateFunc
	field string
}

func newAggregate(fn AggregateFunc, field string) *Aggregate {
	return &Aggregate{fn: fn, field: field}
}

func Count(field string) *Aggregate { return newAggregate(FuncCount, field) }
func Sum(field string) *Aggregate   { return newAggregate(FuncSum, field) }
func Avg(field string) *Aggregate   { return newAggregate(FuncAvg, field) }
func Min(field string) *Aggregate   { return newAggregate(FuncMin, field) }
func Max(field string) *Aggregate   { return newAggregate(FuncMax, field) }

// Func returns the aggregate function name.
func (a *Aggregate) Func() AggregateFunc { return a.fn }

// Field returns the field lookup the aggregate applies to.
func (a *Aggregate) Field() string { return a.field }

func (a *Aggregate) String() string {
	return string(a.fn) + "(" + a.field + ")"
}

// ParseAggregate builds an Aggregate from its textual form, e.g.
// "avg(rating)". Used where configuration arrives as plain text.
func ParseAggregate(text string) (*Aggregate, error) {
	open := -1
	for i, r := range text {
		if r == '(' {
			open = i
			break
		}
	}
	if open <= 0 || text[len(text)-1] != ')' {
		return nil, core.NewErrorf(core.ErrCodeInvalidFunc,
			"%q is not a valid aggregate expression, expecting func(field)", text)
	}
	fn := AggregateFunc(text[:open])
	field := text[open+1 : len(text)-1]
	switch fn {
	case FuncCount, FuncSum, FuncAvg, FuncMin, FuncMax:
		return newAggregate(fn, field), nil
	default:
		return nil, core.NewErrorf(core.ErrCodeInvalidFunc,
			"unknown aggregate function %q, allowed values are: count, sum, avg, min, max", fn)
	}
}

// ValidateFunc checks that the value supplied under the "func" key is an
// Aggregate value object.
func ValidateFunc(value any) (*Aggregate, error) {
	if agg, ok := value.(*Aggregate); ok && agg != nil {
		return agg, nil
	}
	return nil, core.NewErrorf(core.ErrCodeInvalidFunc,
		"'func' must be an aggregate function, got %v of type %T instead", value, value)
}
