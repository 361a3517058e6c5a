package types

import (
	"fmt"
	"strings"
	"time"
)

const TokenDate = "date"

// DateLength is the wire width of a timestamp: YYYYMMDDZZZZHHMMSS.
const DateLength = 18

const (
	zoneLocal = "    "
	zoneUTC   = "   Z"
)

// DateType carries time.Time values as 18-character timestamps. The four zone
// characters are blank for the terminal's local zone or "   Z" for UTC.
//
// Parse is strict: any text that is not exactly a well formed timestamp
// returns a *ParseError. No best-effort value is produced.
type DateType struct {
	loc      *time.Location
	earliest time.Time
	latest   time.Time
}

func NewDate() *DateType {
	return &DateType{loc: time.Local}
}

func (t *DateType) Name() string {
	return TokenDate
}

// WithLocation sets the zone that blank zone characters refer to.
func (t *DateType) WithLocation(loc *time.Location) *DateType {
	if loc == nil {
		loc = time.Local
	}
	t.loc = loc
	return t
}

func (t *DateType) WithEarliest(v time.Time) *DateType {
	t.earliest = v
	return t
}

func (t *DateType) WithLatest(v time.Time) *DateType {
	t.latest = v
	return t
}

func (t *DateType) Format(v any) (string, error) {
	ts, ok := v.(time.Time)
	if !ok {
		return "", &FormatError{Type: TokenDate, Value: v, Reason: "value is not a time.Time"}
	}
	zone := zoneLocal
	if ts.Location() == time.UTC {
		zone = zoneUTC
	} else {
		ts = ts.In(t.location())
	}
	if ts.Year() < 0 || ts.Year() > 9999 {
		return "", &FormatError{Type: TokenDate, Value: v, Reason: "year outside 0000-9999"}
	}
	return ts.Format("20060102") + zone + ts.Format("150405"), nil
}

func (t *DateType) Parse(text string) (any, error) {
	if len(text) != DateLength {
		return nil, &ParseError{
			Type:   TokenDate,
			Input:  text,
			Reason: fmt.Sprintf("expected %d characters, got %d", DateLength, len(text)),
		}
	}
	day, zone, clock := text[0:8], text[8:12], text[12:18]
	var loc *time.Location
	switch {
	case zone == zoneLocal:
		loc = t.location()
	case strings.TrimLeft(zone, " ") == "Z":
		loc = time.UTC
	default:
		return nil, &ParseError{Type: TokenDate, Input: text, Reason: fmt.Sprintf("unsupported zone %q", zone)}
	}
	ts, err := time.ParseInLocation("20060102150405", day+clock, loc)
	if err != nil {
		return nil, &ParseError{Type: TokenDate, Input: text, Reason: "malformed date", Err: err}
	}
	return ts, nil
}

func (t *DateType) ValidateInput(v any) []ValidationError {
	ts, ok := v.(time.Time)
	if !ok {
		return typeMismatch("time.Time", v)
	}
	var errs []ValidationError
	if y := ts.In(t.zoneFor(ts)).Year(); y < 0 || y > 9999 {
		errs = append(errs, ValidationError{
			Key:     KeyDateRange,
			Message: fmt.Sprintf("Year %d cannot be represented", y),
		})
	}
	if !t.earliest.IsZero() && ts.Before(t.earliest) {
		errs = append(errs, ValidationError{
			Key:     KeyDateRange,
			Message: fmt.Sprintf("Value is before %s", t.earliest.Format(time.RFC3339)),
		})
	}
	if !t.latest.IsZero() && ts.After(t.latest) {
		errs = append(errs, ValidationError{
			Key:     KeyDateRange,
			Message: fmt.Sprintf("Value is after %s", t.latest.Format(time.RFC3339)),
		})
	}
	return errs
}

func (t *DateType) zoneFor(ts time.Time) *time.Location {
	if ts.Location() == time.UTC {
		return time.UTC
	}
	return t.location()
}

func (t *DateType) location() *time.Location {
	if t.loc == nil {
		return time.Local
	}
	return t.loc
}
