package types

import (
	"errors"
	"strings"
	"testing"

	"github.com/danmuck/sip2ctl/internal/testutil/testlog"
)

func keys(errs []ValidationError) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Key)
	}
	return out
}

func TestStringFormatParseIdentity(t *testing.T) {
	testlog.Start(t)
	st := NewString()
	got, err := st.Format("hello|world")
	if err != nil || got != "hello|world" {
		t.Fatalf("format: %q %v", got, err)
	}
	v, err := st.Parse("  padded ")
	if err != nil || v != "  padded " {
		t.Fatalf("parse: %q %v", v, err)
	}
	if st.Name() != TokenString {
		t.Fatalf("unexpected name: %s", st.Name())
	}
}

func TestStringFormatRejectsNonString(t *testing.T) {
	testlog.Start(t)
	_, err := NewString().Format(42)
	var fe *FormatError
	if !errors.As(err, &fe) {
		t.Fatalf("expected FormatError, got %v", err)
	}
}

func TestStringTypeMismatchIsTerminal(t *testing.T) {
	testlog.Start(t)
	st := NewString().WithLength(3).WithEnumeratedOptions([]string{"A", "B"})
	for _, v := range []any{12, nil, []byte("abc"), 1.5, true} {
		errs := st.ValidateInput(v)
		if len(errs) != 1 || errs[0].Key != KeyTypeMismatch {
			t.Fatalf("value %#v: unexpected errors %+v", v, errs)
		}
	}
	errs := st.ValidateInput(12)
	if !strings.Contains(errs[0].Message, "'int'") {
		t.Fatalf("expected observed type in message: %q", errs[0].Message)
	}
}

func TestStringExactLength(t *testing.T) {
	testlog.Start(t)
	st := NewString().WithLength(3)
	if min, ok := st.MinLength(); !ok || min != 3 {
		t.Fatalf("unexpected min: %d %v", min, ok)
	}
	if max, ok := st.MaxLength(); !ok || max != 3 {
		t.Fatalf("unexpected max: %d %v", max, ok)
	}

	errs := st.ValidateInput("ab")
	if len(errs) != 1 || errs[0].Key != KeyMinLength {
		t.Fatalf("short value: %+v", errs)
	}
	if !strings.Contains(errs[0].Message, "3") || !strings.Contains(errs[0].Message, "2") {
		t.Fatalf("expected both bounds in message: %q", errs[0].Message)
	}
	errs = st.ValidateInput("abcd")
	if len(errs) != 1 || errs[0].Key != KeyMaxLength {
		t.Fatalf("long value: %+v", errs)
	}
	if errs := st.ValidateInput("abc"); len(errs) != 0 {
		t.Fatalf("exact value: %+v", errs)
	}
}

func TestStringLengthRange(t *testing.T) {
	testlog.Start(t)
	st := NewString().WithLength(1, 5)
	if errs := st.ValidateInput(""); len(errs) != 1 || errs[0].Key != KeyMinLength {
		t.Fatalf("empty value: %+v", errs)
	}
	if errs := st.ValidateInput("abcde"); len(errs) != 0 {
		t.Fatalf("max value: %+v", errs)
	}
	if errs := st.ValidateInput("äöü"); len(errs) != 0 {
		t.Fatalf("length should count characters: %+v", errs)
	}

	st.WithoutMinLength().WithoutMaxLength()
	if errs := st.ValidateInput(strings.Repeat("x", 100)); len(errs) != 0 {
		t.Fatalf("unbounded value: %+v", errs)
	}
	if _, ok := st.MinLength(); ok {
		t.Fatalf("expected min unset")
	}
}

func TestStringEnumeratedOptions(t *testing.T) {
	testlog.Start(t)
	st := NewString().WithEnumeratedOptions([]string{"A", "B"})
	errs := st.ValidateInput("C")
	if len(errs) != 1 || errs[0].Key != KeyEnumeratedOption {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if strings.Contains(errs[0].Message, "C") {
		t.Fatalf("message should not echo the value: %q", errs[0].Message)
	}
	if errs := st.ValidateInput("A"); len(errs) != 0 {
		t.Fatalf("allowed value: %+v", errs)
	}

	st.WithoutEnumeratedOptions()
	if st.EnumeratedOptions() != nil {
		t.Fatalf("expected options cleared")
	}
	st.WithEnumeratedOption("Z")
	if errs := st.ValidateInput("A"); len(errs) != 1 {
		t.Fatalf("expected lazily initialized option list: %+v", errs)
	}
	if opts := st.EnumeratedOptions(); len(opts) != 1 || opts[0] != "Z" {
		t.Fatalf("unexpected options: %+v", opts)
	}
}

func TestStringEnumeratedOptionsAreCopied(t *testing.T) {
	testlog.Start(t)
	in := []string{"A"}
	st := NewString().WithEnumeratedOptions(in)
	in[0] = "X"
	if errs := st.ValidateInput("A"); len(errs) != 0 {
		t.Fatalf("caller slice leaked into type: %+v", errs)
	}
	st.EnumeratedOptions()[0] = "Y"
	if errs := st.ValidateInput("A"); len(errs) != 0 {
		t.Fatalf("accessor slice leaked into type: %+v", errs)
	}
}

func TestStringEmptyOptionListRejectsEverything(t *testing.T) {
	testlog.Start(t)
	st := NewString().WithEnumeratedOptions([]string{})
	if errs := st.ValidateInput(""); len(errs) != 1 || errs[0].Key != KeyEnumeratedOption {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestStringNilOptionListUnsetsRestriction(t *testing.T) {
	testlog.Start(t)
	st := NewString().WithEnumeratedOption("A").WithEnumeratedOptions(nil)
	if opts := st.EnumeratedOptions(); opts != nil {
		t.Fatalf("options should be unset: %v", opts)
	}
	if errs := st.ValidateInput("anything"); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestStringAccumulatesViolations(t *testing.T) {
	testlog.Start(t)
	st := NewString().WithMinLength(4).WithEnumeratedOption("ABCD")
	got := keys(st.ValidateInput("ab"))
	if len(got) != 2 || got[0] != KeyMinLength || got[1] != KeyEnumeratedOption {
		t.Fatalf("unexpected keys: %v", got)
	}
}
