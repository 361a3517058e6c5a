package types

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

const TokenString = "string"

// StringType carries text unchanged between value and wire. Parse never fails.
type StringType struct {
	minLength int
	hasMin    bool
	maxLength int
	hasMax    bool
	options   []string
}

func NewString() *StringType {
	return &StringType{}
}

func (t *StringType) Name() string {
	return TokenString
}

func (t *StringType) Format(v any) (string, error) {
	s, ok := v.(string)
	if !ok {
		return "", &FormatError{Type: TokenString, Value: v, Reason: "value is not a string"}
	}
	return s, nil
}

func (t *StringType) Parse(text string) (any, error) {
	return text, nil
}

func (t *StringType) ValidateInput(v any) []ValidationError {
	s, ok := v.(string)
	if !ok {
		return typeMismatch(TokenString, v)
	}
	var errs []ValidationError
	n := utf8.RuneCountInString(s)
	if t.hasMin && n < t.minLength {
		errs = append(errs, ValidationError{
			Key:     KeyMinLength,
			Message: fmt.Sprintf("Value is too short. Min Length is %d but value is %d", t.minLength, n),
		})
	}
	if t.hasMax && n > t.maxLength {
		errs = append(errs, ValidationError{
			Key:     KeyMaxLength,
			Message: fmt.Sprintf("Value is too long. Max Length is %d but value is %d", t.maxLength, n),
		})
	}
	if t.options != nil && !slices.Contains(t.options, s) {
		errs = append(errs, ValidationError{
			Key:     KeyEnumeratedOption,
			Message: "Value is not in the list of acceptable values",
		})
	}
	return errs
}

func (t *StringType) MinLength() (int, bool) {
	return t.minLength, t.hasMin
}

func (t *StringType) MaxLength() (int, bool) {
	return t.maxLength, t.hasMax
}

// EnumeratedOptions returns a copy of the allowed values, or nil when any value
// is allowed.
func (t *StringType) EnumeratedOptions() []string {
	if t.options == nil {
		return nil
	}
	return slices.Clone(t.options)
}

func (t *StringType) WithMinLength(n int) *StringType {
	t.minLength, t.hasMin = n, true
	return t
}

func (t *StringType) WithoutMinLength() *StringType {
	t.minLength, t.hasMin = 0, false
	return t
}

func (t *StringType) WithMaxLength(n int) *StringType {
	t.maxLength, t.hasMax = n, true
	return t
}

func (t *StringType) WithoutMaxLength() *StringType {
	t.maxLength, t.hasMax = 0, false
	return t
}

// WithLength sets both bounds. With a single argument the length is exact.
func (t *StringType) WithLength(min int, max ...int) *StringType {
	t.WithMinLength(min)
	if len(max) == 0 {
		return t.WithMaxLength(min)
	}
	return t.WithMaxLength(max[0])
}

func (t *StringType) WithEnumeratedOption(v string) *StringType {
	t.options = append(t.options, v)
	return t
}

// WithEnumeratedOptions replaces the allowed values. A nil list lifts the
// restriction like WithoutEnumeratedOptions; an empty non-nil list allows
// nothing.
func (t *StringType) WithEnumeratedOptions(opts []string) *StringType {
	if opts == nil {
		return t.WithoutEnumeratedOptions()
	}
	t.options = append(make([]string, 0, len(opts)), opts...)
	return t
}

func (t *StringType) WithoutEnumeratedOptions() *StringType {
	t.options = nil
	return t
}
