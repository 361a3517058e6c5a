package schema

import (
	"errors"
	"fmt"
)

var ErrUnknownMessage = errors.New("schema: unknown message id")

// InvalidSchemaError reports a structurally invalid declaration.
type InvalidSchemaError struct {
	SchemaID string
	Field    string
	Reason   string
	Err      error
}

func (e *InvalidSchemaError) Error() string {
	msg := fmt.Sprintf("schema: id=%s", e.SchemaID)
	if e.Field != "" {
		msg += fmt.Sprintf(" field=%s", e.Field)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InvalidSchemaError) Unwrap() error {
	return e.Err
}

// DuplicateKeyError reports a key declared twice. Existing names the
// declaration that was kept.
type DuplicateKeyError struct {
	SchemaID string
	Key      string
	Existing string
	Name     string
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("schema: id=%s key=%s: %q already declared as %q", e.SchemaID, e.Key, e.Name, e.Existing)
}
