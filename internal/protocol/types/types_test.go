package types

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/danmuck/sip2ctl/internal/testutil/testlog"
)

func TestDateFormatParseUTC(t *testing.T) {
	testlog.Start(t)
	dt := NewDate()
	ts := time.Date(2024, time.March, 9, 14, 5, 7, 0, time.UTC)
	text, err := dt.Format(ts)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if text != "20240309   Z140507" {
		t.Fatalf("unexpected text: %q", text)
	}
	if len(text) != DateLength {
		t.Fatalf("unexpected width: %d", len(text))
	}
	v, err := dt.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !v.(time.Time).Equal(ts) {
		t.Fatalf("round trip mismatch: %v", v)
	}
}

func TestDateFormatParseLocalZone(t *testing.T) {
	testlog.Start(t)
	loc := time.FixedZone("terminal", -5*3600)
	dt := NewDate().WithLocation(loc)
	ts := time.Date(2023, time.December, 31, 23, 59, 58, 0, loc)
	text, err := dt.Format(ts)
	if err != nil {
		t.Fatalf("format: %v", err)
	}
	if text != "20231231    235958" {
		t.Fatalf("unexpected text: %q", text)
	}
	v, err := dt.Parse(text)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if !v.(time.Time).Equal(ts) {
		t.Fatalf("round trip mismatch: %v", v)
	}
}

func TestDateParseFailures(t *testing.T) {
	testlog.Start(t)
	dt := NewDate()
	for _, text := range []string{
		"",
		"20240309",
		"20241309    120000",
		"2024030X    120000",
		"20240309 EST120000",
	} {
		_, err := dt.Parse(text)
		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Fatalf("%q: expected ParseError, got %v", text, err)
		}
		if pe.Type != TokenDate || pe.Input != text {
			t.Fatalf("%q: unexpected parse error %+v", text, pe)
		}
	}
}

func TestDateValidate(t *testing.T) {
	testlog.Start(t)
	earliest := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	dt := NewDate().WithEarliest(earliest)
	if errs := dt.ValidateInput("20240309    120000"); len(errs) != 1 || errs[0].Key != KeyTypeMismatch {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if errs := dt.ValidateInput(earliest.AddDate(-1, 0, 0)); len(errs) != 1 || errs[0].Key != KeyDateRange {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if errs := dt.ValidateInput(earliest.AddDate(1, 0, 0)); len(errs) != 0 {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if errs := dt.ValidateInput(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)); len(errs) != 1 || errs[0].Key != KeyDateRange {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestFlag(t *testing.T) {
	testlog.Start(t)
	ft := NewFlag()
	if s, _ := ft.Format(true); s != "Y" {
		t.Fatalf("unexpected true: %q", s)
	}
	if s, _ := ft.Format(false); s != "N" {
		t.Fatalf("unexpected false: %q", s)
	}
	if v, err := ft.Parse("y"); err != nil || v != true {
		t.Fatalf("parse y: %v %v", v, err)
	}
	if _, err := ft.Parse(" "); err == nil {
		t.Fatalf("expected blank to fail without blank-as-false")
	}
	if v, err := ft.WithBlankAsFalse().Parse(" "); err != nil || v != false {
		t.Fatalf("parse blank: %v %v", v, err)
	}
	var pe *ParseError
	if _, err := ft.Parse("X"); !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if errs := ft.ValidateInput("Y"); len(errs) != 1 || errs[0].Key != KeyTypeMismatch {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestNumber(t *testing.T) {
	testlog.Start(t)
	nt := NewNumber().WithWidth(4).WithMin(0).WithMax(9999)
	if s, err := nt.Format(42); err != nil || s != "0042" {
		t.Fatalf("format: %q %v", s, err)
	}
	if s, err := NewNumber().WithWidth(4).Format(int64(-7)); err != nil || s != "-007" {
		t.Fatalf("format negative: %q %v", s, err)
	}
	if v, err := nt.Parse(" 0042 "); err != nil || v != int64(42) {
		t.Fatalf("parse: %v %v", v, err)
	}
	var pe *ParseError
	if _, err := nt.Parse("12a"); !errors.As(err, &pe) {
		t.Fatalf("expected ParseError, got %v", err)
	}
	if !errors.Is(pe, strconv.ErrSyntax) {
		t.Fatalf("expected wrapped strconv error: %v", pe)
	}
	if _, err := nt.Parse("   "); err == nil {
		t.Fatalf("expected blank to fail")
	}

	if errs := nt.ValidateInput("42"); len(errs) != 1 || errs[0].Key != KeyTypeMismatch {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	if errs := nt.ValidateInput(-1); len(errs) != 1 || errs[0].Key != KeyMinValue {
		t.Fatalf("unexpected errors: %+v", errs)
	}
	got := keys(nt.ValidateInput(uint32(12345)))
	if len(got) != 2 || got[0] != KeyMaxValue || got[1] != KeyMaxLength {
		t.Fatalf("unexpected keys: %v", got)
	}
	if errs := nt.ValidateInput(uint64(1 << 63)); len(errs) != 1 || errs[0].Key != KeyTypeMismatch {
		t.Fatalf("unexpected errors: %+v", errs)
	}
}

func TestRegistryResolve(t *testing.T) {
	testlog.Start(t)
	reg := DefaultRegistry()
	want := []string{TokenDate, TokenFlag, TokenNumber, TokenString}
	got := reg.Tokens()
	if len(got) != len(want) {
		t.Fatalf("unexpected tokens: %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected tokens: %v", got)
		}
	}

	a, err := reg.Resolve(TokenString)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	b, _ := reg.Resolve(TokenString)
	a.(*StringType).WithLength(2)
	if errs := b.ValidateInput("abc"); len(errs) != 0 {
		t.Fatalf("resolved instances must be independent: %+v", errs)
	}
	if _, ok := a.(*StringType); !ok {
		t.Fatalf("unexpected type %T", a)
	}
	if ft, _ := reg.Resolve(TokenDate); ft.Name() != TokenDate {
		t.Fatalf("unexpected date type %T", ft)
	}

	if _, err := reg.Resolve("money"); !errors.Is(err, ErrUnknownToken) {
		t.Fatalf("expected ErrUnknownToken, got %v", err)
	}
}

func TestRegistryRegister(t *testing.T) {
	testlog.Start(t)
	reg := NewRegistry()
	if reg.Has(TokenString) {
		t.Fatalf("new registry should be empty")
	}
	if err := reg.Register("", func() FieldType { return NewString() }); !errors.Is(err, ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	if err := reg.Register("text", nil); !errors.Is(err, ErrNilFactory) {
		t.Fatalf("expected ErrNilFactory, got %v", err)
	}
	if err := reg.Register("text", func() FieldType { return NewString() }); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := reg.Register("text", func() FieldType { return NewString() }); !errors.Is(err, ErrDuplicateToken) {
		t.Fatalf("expected ErrDuplicateToken, got %v", err)
	}
	if !reg.Has("text") {
		t.Fatalf("expected token registered")
	}
}
