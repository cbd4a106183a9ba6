package core

import "fmt"

// Options is the loose option payload attached to a series. The cleaners
// normalize well-known keys out of it and pass the rest through untouched to
// the rendering layer.
type Options map[string]any

// Merge overlays override keys on top of the receiver. Override keys win
// wholesale; nested values are replaced, not merged. The receiver is mutated.
func (o Options) Merge(override Options) {
	for key, value := range override {
		o[key] = value
	}
}

// AsStringMap converts a loose alias map into map[string]string.
// Returns an error when any key maps to a non-string value.
func AsStringMap(value any) (map[string]string, error) {
	switch v := value.(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for key, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, NewInvalidTypeError(item, "a string alias")
			}
			out[key] = s
		}
		return out, nil
	default:
		return nil, NewInvalidTypeError(value, "a map of field aliases")
	}
}

// IsTruthy reports whether a value is considered truthy. Used to coerce the
// map-then-sort flag to a strict boolean.
func IsTruthy(value any) bool {
	if value == nil {
		return false
	}
	switch v := value.(type) {
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	case int:
		return v != 0
	case int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%v", v) != "0"
	case float32:
		return v != 0.0
	case float64:
		return v != 0.0
	case []any:
		return len(v) > 0
	case map[string]any:
		return len(v) > 0
	default:
		return true
	}
}
