package series

import (
	"reflect"

	"github.com/chartpool/chartpool/engine/core"
)

// SortMap is the cleaned (sort-function, map-function, map-then-sort)
// customization triple. Both function slots accept any invocable value so
// callers keep their own signatures; nil means "not customized".
type SortMap struct {
	Sort        any
	Map         any
	MapThenSort bool
}

// CleanSortMap validates a sort/map customization triple.
//
// Nil input yields the default (nil, nil, false). The triple may arrive as a
// SortMap, a [3]any, or a []any of exactly three elements. The first two
// slots, when set, must be invocable; the third is coerced to a strict
// boolean.
func CleanSortMap(input any) (SortMap, error) {
	switch v := input.(type) {
	case nil:
		return SortMap{}, nil
	case SortMap:
		return checkSortMap(v.Sort, v.Map, v.MapThenSort)
	case [3]any:
		return checkSortMap(v[0], v[1], v[2])
	case []any:
		if len(v) == 0 {
			return SortMap{}, nil
		}
		if len(v) != 3 {
			return SortMap{}, core.NewErrorf(core.ErrCodeInvalidArity,
				"%v must have exactly three elements", v)
		}
		return checkSortMap(v[0], v[1], v[2])
	default:
		return SortMap{}, core.NewErrorf(core.ErrCodeInvalidType,
			"sortf_mapf_mts must be a triple, got %v of type %T instead", input, input)
	}
}

// CleanSortMaps validates the per-axis variant: nil input or a single triple
// yields a one-element result, a list cleans each element independently and
// preserves order.
func CleanSortMaps(input any) ([]SortMap, error) {
	switch v := input.(type) {
	case nil:
		return []SortMap{{}}, nil
	case SortMap:
		cleaned, err := checkSortMap(v.Sort, v.Map, v.MapThenSort)
		if err != nil {
			return nil, err
		}
		return []SortMap{cleaned}, nil
	case [3]any:
		cleaned, err := CleanSortMap(v)
		if err != nil {
			return nil, err
		}
		return []SortMap{cleaned}, nil
	case []SortMap:
		return cleanSortMapList(anySlice(v))
	case [][3]any:
		return cleanSortMapList(anySlice(v))
	case []any:
		return cleanSortMapList(v)
	default:
		return nil, core.NewErrorf(core.ErrCodeInvalidType,
			"x_sortf_mapf_mts must be a list of triples, got %v of type %T instead", input, input)
	}
}

func cleanSortMapList(items []any) ([]SortMap, error) {
	if len(items) == 0 {
		return []SortMap{{}}, nil
	}
	cleaned := make([]SortMap, 0, len(items))
	for _, item := range items {
		sm, err := CleanSortMap(item)
		if err != nil {
			return nil, err
		}
		cleaned = append(cleaned, sm)
	}
	return cleaned, nil
}

func checkSortMap(sortf, mapf, mts any) (SortMap, error) {
	if core.IsTruthy(sortf) && !isCallable(sortf) {
		return SortMap{}, core.NewErrorf(core.ErrCodeNotCallable, "sortf must be callable or nil")
	}
	if core.IsTruthy(mapf) && !isCallable(mapf) {
		return SortMap{}, core.NewErrorf(core.ErrCodeNotCallable, "mapf must be callable or nil")
	}
	cleaned := SortMap{MapThenSort: core.IsTruthy(mts)}
	if sortf != nil {
		cleaned.Sort = sortf
	}
	if mapf != nil {
		cleaned.Map = mapf
	}
	return cleaned, nil
}

func isCallable(value any) bool {
	return value != nil && reflect.TypeOf(value).Kind() == reflect.Func
}

func anySlice[T any](items []T) []any {
	out := make([]any, len(items))
	for i := range items {
		out[i] = items[i]
	}
	return out
}
