package types

import (
	"fmt"
	"strconv"
	"strings"
)

const TokenNumber = "number"

// NumberType carries integers as decimal text, zero padded to the configured
// width. Parse trims surrounding spaces and returns a *ParseError for anything
// that is not a base-10 integer. Parsed values are int64.
type NumberType struct {
	width  int
	min    int64
	hasMin bool
	max    int64
	hasMax bool
}

func NewNumber() *NumberType {
	return &NumberType{}
}

func (t *NumberType) Name() string {
	return TokenNumber
}

// WithWidth zero pads formatted values to n digits. Zero disables padding.
func (t *NumberType) WithWidth(n int) *NumberType {
	t.width = n
	return t
}

func (t *NumberType) WithMin(n int64) *NumberType {
	t.min, t.hasMin = n, true
	return t
}

func (t *NumberType) WithMax(n int64) *NumberType {
	t.max, t.hasMax = n, true
	return t
}

func (t *NumberType) Width() int {
	return t.width
}

func (t *NumberType) Format(v any) (string, error) {
	n, ok := toInt64(v)
	if !ok {
		return "", &FormatError{Type: TokenNumber, Value: v, Reason: "value is not an integer"}
	}
	return t.render(n), nil
}

func (t *NumberType) render(n int64) string {
	if t.width <= 0 {
		return strconv.FormatInt(n, 10)
	}
	if n < 0 {
		return fmt.Sprintf("-%0*d", t.width-1, uint64(-n))
	}
	return fmt.Sprintf("%0*d", t.width, n)
}

func (t *NumberType) Parse(text string) (any, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, &ParseError{Type: TokenNumber, Input: text, Reason: "empty value"}
	}
	n, err := strconv.ParseInt(trimmed, 10, 64)
	if err != nil {
		return nil, &ParseError{Type: TokenNumber, Input: text, Reason: "not an integer", Err: err}
	}
	return n, nil
}

func (t *NumberType) ValidateInput(v any) []ValidationError {
	n, ok := toInt64(v)
	if !ok {
		return typeMismatch("integer", v)
	}
	var errs []ValidationError
	if t.hasMin && n < t.min {
		errs = append(errs, ValidationError{
			Key:     KeyMinValue,
			Message: fmt.Sprintf("Value is too small. Min is %d but value is %d", t.min, n),
		})
	}
	if t.hasMax && n > t.max {
		errs = append(errs, ValidationError{
			Key:     KeyMaxValue,
			Message: fmt.Sprintf("Value is too large. Max is %d but value is %d", t.max, n),
		})
	}
	if t.width > 0 {
		if l := len(t.render(n)); l > t.width {
			errs = append(errs, ValidationError{
				Key:     KeyMaxLength,
				Message: fmt.Sprintf("Value is too long. Max Length is %d but value is %d", t.width, l),
			})
		}
	}
	return errs
}

func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint:
		if uint64(n) > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	case uint64:
		if n > 1<<63-1 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
