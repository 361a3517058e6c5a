package codec

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danmuck/sip2ctl/internal/protocol/types"
)

var (
	ErrMessageIDMismatch = errors.New("codec: message id mismatch")
	ErrTruncated         = errors.New("codec: truncated fixed fields")
	ErrMalformedField    = errors.New("codec: malformed named field")
	ErrDelimiterInValue  = errors.New("codec: value contains field delimiter")
	ErrInvalidEncoding   = errors.New("codec: body is not valid UTF-8")
)

// Keys used in FieldError in addition to the field type keys.
const (
	KeyMissingField = "missing_field"
	KeyUnknownField = "unknown_field"
	KeyMessageID    = "message_id"
)

// FieldError is a validation error bound to a field. Tag is the named field
// key and is empty for fixed fields.
type FieldError struct {
	Field string
	Tag   string
	types.ValidationError
}

func (e FieldError) Error() string {
	if e.Tag != "" {
		return fmt.Sprintf("codec: field=%s key=%s: %s: %s", e.Field, e.Tag, e.Key, e.Message)
	}
	return fmt.Sprintf("codec: field=%s: %s: %s", e.Field, e.Key, e.Message)
}

// ValidationFailedError is returned by Encode when a message does not satisfy
// its schema.
type ValidationFailedError struct {
	SchemaID string
	Errors   []FieldError
}

func (e *ValidationFailedError) Error() string {
	parts := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		parts = append(parts, fmt.Sprintf("%s:%s", fe.Field, fe.Key))
	}
	return fmt.Sprintf("codec: message_id=%s: %d validation errors [%s]",
		e.SchemaID, len(e.Errors), strings.Join(parts, ", "))
}
