package core

import (
	"fmt"
	"strings"
)

// Error codes
const (
	ErrCodeEmptyValue    = "EMPTY_VALUE"
	ErrCodeMissingKey    = "MISSING_KEY"
	ErrCodeInvalidType   = "INVALID_TYPE"
	ErrCodeUnknownField  = "UNKNOWN_FIELD"
	ErrCodeUnknownSeries = "UNKNOWN_SERIES"
	ErrCodeTableMismatch = "TABLE_MISMATCH"
	ErrCodeInvalidArity  = "INVALID_ARITY"
	ErrCodeNotCallable   = "NOT_CALLABLE"
	ErrCodeInvalidSource = "INVALID_SOURCE"
	ErrCodeInvalidFunc   = "INVALID_FUNC"
)

// InputError represents a validation failure on user-supplied series input.
// It is the only error kind produced by the cleaners; the message always
// names the offending value and, where applicable, the valid alternatives.
type InputError struct {
	Message string
	Code    string
}

func (e *InputError) Error() string {
	return e.Message
}

// NewError creates a new InputError with the given code and message
func NewError(code, message string) *InputError {
	return &InputError{
		Code:    code,
		Message: message,
	}
}

// NewErrorf creates a new InputError with the given code and formatted message
func NewErrorf(code, format string, args ...any) *InputError {
	return &InputError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Common error constructors

func NewEmptyValueError(name string) *InputError {
	return NewErrorf(ErrCodeEmptyValue, "%q cannot be empty", name)
}

func NewMissingKeyError(container any, key string) *InputError {
	return NewErrorf(ErrCodeMissingKey, "%v is missing the %q key", container, key)
}

func NewInvalidTypeError(value any, expected string) *InputError {
	return NewErrorf(ErrCodeInvalidType, "expecting %s in place of %v of type %T", expected, value, value)
}

func NewUnknownFieldError(segment string, valid []string) *InputError {
	return NewErrorf(ErrCodeUnknownField,
		"field %q does not exist, valid lookups are: %s", segment, strings.Join(valid, ", "))
}

func NewUnknownSeriesError(name string, valid []string) *InputError {
	return NewErrorf(ErrCodeUnknownSeries,
		"%q is not one of the series of the datasource, allowed values are: %s",
		name, strings.Join(valid, ", "))
}

func NewTableMismatchError(series, xAxisTerm string) *InputError {
	return NewErrorf(ErrCodeTableMismatch,
		"%q and %q do not belong to the same table", series, xAxisTerm)
}
