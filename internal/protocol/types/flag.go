package types

import "strings"

const TokenFlag = "flag"

// FlagType carries bool values as a single "Y" or "N". Parse accepts either
// letter in any case; a blank is false only when WithBlankAsFalse is set.
// Anything else is a *ParseError.
type FlagType struct {
	blankAsFalse bool
}

func NewFlag() *FlagType {
	return &FlagType{}
}

func (t *FlagType) Name() string {
	return TokenFlag
}

func (t *FlagType) WithBlankAsFalse() *FlagType {
	t.blankAsFalse = true
	return t
}

func (t *FlagType) Format(v any) (string, error) {
	b, ok := v.(bool)
	if !ok {
		return "", &FormatError{Type: TokenFlag, Value: v, Reason: "value is not a bool"}
	}
	if b {
		return "Y", nil
	}
	return "N", nil
}

func (t *FlagType) Parse(text string) (any, error) {
	switch strings.ToUpper(text) {
	case "Y":
		return true, nil
	case "N":
		return false, nil
	case " ", "":
		if t.blankAsFalse {
			return false, nil
		}
	}
	return nil, &ParseError{Type: TokenFlag, Input: text, Reason: "expected Y or N"}
}

func (t *FlagType) ValidateInput(v any) []ValidationError {
	if _, ok := v.(bool); !ok {
		return typeMismatch("bool", v)
	}
	return nil
}
