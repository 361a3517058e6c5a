// Package codec turns message bodies into values and back using a schema.
//
// A body is the two-character message id, the fixed fields concatenated in
// position order, then named fields written as KEYvalue followed by "|".
// Sequence numbers, checksums and terminators belong to the framing layer and
// are not handled here.
package codec

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/danmuck/sip2ctl/internal/observability"
	"github.com/danmuck/sip2ctl/internal/protocol/schema"
	"github.com/danmuck/sip2ctl/internal/protocol/types"
	"github.com/rs/zerolog/log"
)

// Delimiter terminates every named field.
const Delimiter = "|"

// Message holds field values for one message. Fixed is indexed by position,
// Named by key. Unknown collects keyed fields the schema does not declare.
type Message struct {
	ID      string
	Fixed   []any
	Named   map[string]any
	Unknown map[string]string
}

// NewMessage returns an empty message shaped for s.
func NewMessage(s *schema.MessageSchema) Message {
	return Message{
		ID:    s.ID(),
		Fixed: make([]any, s.NumFixedParameters()),
		Named: make(map[string]any),
	}
}

// SetFixed stores v in the first fixed field named name.
func (m *Message) SetFixed(s *schema.MessageSchema, name string, v any) bool {
	for i, p := range s.FixedParameters() {
		if p.Name == name {
			for len(m.Fixed) <= i {
				m.Fixed = append(m.Fixed, nil)
			}
			m.Fixed[i] = v
			return true
		}
	}
	return false
}

// FixedValue returns the value of the first fixed field named name.
func (m Message) FixedValue(s *schema.MessageSchema, name string) (any, bool) {
	for i, p := range s.FixedParameters() {
		if p.Name == name {
			if i >= len(m.Fixed) || m.Fixed[i] == nil {
				return nil, false
			}
			return m.Fixed[i], true
		}
	}
	return nil, false
}

// NamedValue returns the value of the named field called name.
func (m Message) NamedValue(s *schema.MessageSchema, name string) (any, bool) {
	p, ok := s.NamedParameterByName(name)
	if !ok {
		return nil, false
	}
	v, ok := m.Named[p.Key]
	return v, ok
}

// Validate checks every present value against its field type. Every fixed
// field is required and must format to exactly its declared width; named
// fields are optional. The result is never an error: the caller decides
// whether to reject the message.
func Validate(s *schema.MessageSchema, msg Message) []FieldError {
	var errs []FieldError
	if msg.ID != s.ID() {
		errs = append(errs, FieldError{Field: "id", ValidationError: violation(KeyMessageID,
			fmt.Sprintf("Message id is %q but schema is %q", msg.ID, s.ID()))})
	}
	for i, p := range s.FixedParameters() {
		if i >= len(msg.Fixed) || msg.Fixed[i] == nil {
			errs = append(errs, FieldError{Field: p.Name, ValidationError: violation(KeyMissingField,
				"Fixed field is required")})
			continue
		}
		ves := p.Type.ValidateInput(msg.Fixed[i])
		for _, ve := range ves {
			errs = append(errs, FieldError{Field: p.Name, ValidationError: ve})
		}
		if len(ves) == 0 {
			if ve, bad := widthViolation(p, msg.Fixed[i]); bad {
				errs = append(errs, FieldError{Field: p.Name, ValidationError: ve})
			}
		}
	}
	for i := s.NumFixedParameters(); i < len(msg.Fixed); i++ {
		errs = append(errs, FieldError{Field: fmt.Sprintf("#%d", i), ValidationError: violation(KeyUnknownField,
			"Message has more fixed values than the schema declares")})
	}
	for _, p := range s.NamedParameters() {
		v, ok := msg.Named[p.Key]
		if !ok {
			continue
		}
		for _, ve := range p.Type.ValidateInput(v) {
			errs = append(errs, FieldError{Field: p.Name, Tag: p.Key, ValidationError: ve})
		}
	}
	keys := make([]string, 0, len(msg.Named))
	for key := range msg.Named {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		if _, ok := s.NamedParameterByKey(key); !ok {
			errs = append(errs, FieldError{Field: key, Tag: key, ValidationError: violation(KeyUnknownField,
				"Key is not declared by the schema")})
		}
	}

	result := observability.ResultOK
	if len(errs) > 0 {
		result = observability.ResultInvalid
	}
	for _, fe := range errs {
		observability.RecordValidationError(s.ID(), fe.Field, fe.Key)
	}
	observability.RecordCodecMessage(observability.OpValidate, s.ID(), result)
	log.Debug().Str("id", s.ID()).Int("errors", len(errs)).Msg("codec.Validate")
	return errs
}

// Encode validates msg and renders its body.
func Encode(s *schema.MessageSchema, msg Message) (string, error) {
	text, err := encode(s, msg)
	if err != nil {
		observability.RecordCodecMessage(observability.OpEncode, s.ID(), observability.ResultError)
		log.Error().Err(err).Str("id", s.ID()).Msg("codec.Encode")
		return "", err
	}
	observability.RecordCodecMessage(observability.OpEncode, s.ID(), observability.ResultOK)
	return text, nil
}

func encode(s *schema.MessageSchema, msg Message) (string, error) {
	if errs := Validate(s, msg); len(errs) > 0 {
		return "", &ValidationFailedError{SchemaID: s.ID(), Errors: errs}
	}
	var b strings.Builder
	b.WriteString(s.ID())
	for i, p := range s.FixedParameters() {
		text, err := p.Type.Format(msg.Fixed[i])
		if err != nil {
			return "", fmt.Errorf("codec: field=%s: %w", p.Name, err)
		}
		b.WriteString(text)
	}
	for _, p := range s.NamedParameters() {
		v, ok := msg.Named[p.Key]
		if !ok {
			continue
		}
		text, err := p.Type.Format(v)
		if err != nil {
			return "", fmt.Errorf("codec: field=%s: %w", p.Name, err)
		}
		if strings.Contains(text, Delimiter) {
			return "", fmt.Errorf("%w: field=%s", ErrDelimiterInValue, p.Name)
		}
		b.WriteString(p.Key)
		b.WriteString(text)
		b.WriteString(Delimiter)
	}
	return b.String(), nil
}

// Decode parses body against s. A repeated named key keeps its first value.
func Decode(s *schema.MessageSchema, body string) (Message, error) {
	msg, err := decode(s, body)
	if err != nil {
		observability.RecordCodecMessage(observability.OpDecode, s.ID(), observability.ResultError)
		log.Error().Err(err).Str("id", s.ID()).Msg("codec.Decode")
		return Message{}, err
	}
	observability.RecordCodecMessage(observability.OpDecode, s.ID(), observability.ResultOK)
	return msg, nil
}

func decode(s *schema.MessageSchema, body string) (Message, error) {
	if !utf8.ValidString(body) {
		return Message{}, ErrInvalidEncoding
	}
	if !strings.HasPrefix(body, s.ID()) {
		return Message{}, fmt.Errorf("%w: want %q", ErrMessageIDMismatch, s.ID())
	}
	runes := []rune(body[len(s.ID()):])
	if len(runes) < s.FixedLength() {
		return Message{}, fmt.Errorf("%w: need %d characters, have %d", ErrTruncated, s.FixedLength(), len(runes))
	}

	msg := NewMessage(s)
	for i, p := range s.FixedParameters() {
		v, err := p.Type.Parse(string(runes[p.Offset : p.Offset+p.Length]))
		if err != nil {
			return Message{}, fmt.Errorf("codec: field=%s: %w", p.Name, err)
		}
		msg.Fixed[i] = v
	}

	for _, segment := range strings.Split(string(runes[s.FixedLength():]), Delimiter) {
		if segment == "" {
			continue
		}
		if utf8.RuneCountInString(segment) < schema.KeyLength {
			return Message{}, fmt.Errorf("%w: %q", ErrMalformedField, segment)
		}
		seg := []rune(segment)
		key, raw := string(seg[:schema.KeyLength]), string(seg[schema.KeyLength:])
		p, ok := s.NamedParameterByKey(key)
		if !ok {
			if msg.Unknown == nil {
				msg.Unknown = make(map[string]string)
			}
			if _, seen := msg.Unknown[key]; !seen {
				msg.Unknown[key] = raw
			}
			continue
		}
		if _, seen := msg.Named[key]; seen {
			log.Warn().Str("id", s.ID()).Str("key", key).Msg("codec.Decode repeated key ignored")
			continue
		}
		v, err := p.Type.Parse(raw)
		if err != nil {
			return Message{}, fmt.Errorf("codec: field=%s key=%s: %w", p.Name, key, err)
		}
		msg.Named[key] = v
	}
	log.Debug().
		Str("id", s.ID()).
		Int("named", len(msg.Named)).
		Int("unknown", len(msg.Unknown)).
		Msg("codec.Decode")
	return msg, nil
}

// DecodeWith selects the schema whose id is the longest prefix of body.
func DecodeWith(c *schema.Catalog, body string) (*schema.MessageSchema, Message, error) {
	s, ok := c.Match(body)
	if !ok {
		return nil, Message{}, fmt.Errorf("%w: body %q", schema.ErrUnknownMessage, body)
	}
	msg, err := Decode(s, body)
	if err != nil {
		return nil, Message{}, err
	}
	return s, msg, nil
}

// widthViolation formats v and compares its width with the declaration. A
// format failure is left for Encode to report.
func widthViolation(p schema.FixedParameter, v any) (types.ValidationError, bool) {
	text, err := p.Type.Format(v)
	if err != nil {
		return types.ValidationError{}, false
	}
	n := utf8.RuneCountInString(text)
	if n == p.Length {
		return types.ValidationError{}, false
	}
	key := types.KeyMaxLength
	if n < p.Length {
		key = types.KeyMinLength
	}
	return violation(key, fmt.Sprintf("Formatted value is %d characters but the field is %d wide", n, p.Length)), true
}

func violation(key, message string) types.ValidationError {
	return types.ValidationError{Key: key, Message: message}
}
