// Package types owns the field data types used by message schemas.
//
// Every type implements FieldType: Format turns a value into wire text, Parse
// turns wire text back into a value, and ValidateInput reports constraint
// violations as values. Validation never returns an error; parse and format
// failures do.
package types

import "fmt"

// Validation error keys.
const (
	KeyTypeMismatch     = "type_mismatch"
	KeyMinLength        = "min_length"
	KeyMaxLength        = "max_length"
	KeyEnumeratedOption = "enumerated_option"
	KeyMinValue         = "min_value"
	KeyMaxValue         = "max_value"
	KeyDateRange        = "date_range"
)

// FieldType is the capability every field data type provides.
type FieldType interface {
	// Name is the registry token for the type, e.g. "string".
	Name() string
	Format(v any) (string, error)
	Parse(text string) (any, error)
	// ValidateInput returns nil when v is acceptable. A type_mismatch entry is
	// always the only entry.
	ValidateInput(v any) []ValidationError
}

// ValidationError describes one violated rule.
type ValidationError struct {
	Key     string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("types: %s: %s", e.Key, e.Message)
}

func typeMismatch(want string, v any) []ValidationError {
	return []ValidationError{{
		Key:     KeyTypeMismatch,
		Message: fmt.Sprintf("Value is of incorrect type. Expected '%s' but got '%T'", want, v),
	}}
}

// ParseError reports wire text a type could not interpret.
type ParseError struct {
	Type   string
	Input  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("types: parse %s %q: %s: %v", e.Type, e.Input, e.Reason, e.Err)
	}
	return fmt.Sprintf("types: parse %s %q: %s", e.Type, e.Input, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// FormatError reports a value that cannot be rendered as wire text.
type FormatError struct {
	Type   string
	Value  any
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("types: format %s (%T): %s", e.Type, e.Value, e.Reason)
}
