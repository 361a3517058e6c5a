// Package schema describes the structure of protocol messages: the fixed
// fields that occupy known positions after the message id, and the named
// fields identified by two-character keys.
//
// Schemas are declared once through a Builder and are read-only afterwards, so
// a built *MessageSchema may be shared by any number of goroutines.
package schema

import (
	"fmt"
	"unicode/utf8"

	"github.com/danmuck/sip2ctl/internal/protocol/types"
	"github.com/rs/zerolog/log"
)

// KeyLength is the width of a named field key on the wire.
const KeyLength = 2

// FixedParameter is a field addressed by position. Offset counts characters
// from the end of the message id.
type FixedParameter struct {
	Name   string
	Length int
	Offset int
	Type   types.FieldType
}

// NamedParameter is a field addressed by key.
type NamedParameter struct {
	Key  string
	Name string
	Type types.FieldType
}

// MessageSchema is the immutable description of one message type.
type MessageSchema struct {
	id          string
	name        string
	fixed       []FixedParameter
	named       []NamedParameter
	byKey       map[string]int
	fixedLength int
}

func (s *MessageSchema) ID() string {
	return s.id
}

func (s *MessageSchema) Name() string {
	return s.name
}

func (s *MessageSchema) NumFixedParameters() int {
	return len(s.fixed)
}

func (s *MessageSchema) NumNamedParameters() int {
	return len(s.named)
}

// FixedLength is the combined width of all fixed fields.
func (s *MessageSchema) FixedLength() int {
	return s.fixedLength
}

// FixedParameterByPosition returns the fixed field at zero-based position i.
func (s *MessageSchema) FixedParameterByPosition(i int) (FixedParameter, bool) {
	if i < 0 || i >= len(s.fixed) {
		return FixedParameter{}, false
	}
	return s.fixed[i], true
}

// FixedParameterByName returns the first fixed field declared with name.
func (s *MessageSchema) FixedParameterByName(name string) (FixedParameter, bool) {
	for _, p := range s.fixed {
		if p.Name == name {
			return p, true
		}
	}
	return FixedParameter{}, false
}

func (s *MessageSchema) NamedParameterByKey(key string) (NamedParameter, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return NamedParameter{}, false
	}
	return s.named[i], true
}

// NamedParameterByName returns the first named field declared with name.
func (s *MessageSchema) NamedParameterByName(name string) (NamedParameter, bool) {
	for _, p := range s.named {
		if p.Name == name {
			return p, true
		}
	}
	return NamedParameter{}, false
}

// FixedParameters returns the fixed fields in wire order.
func (s *MessageSchema) FixedParameters() []FixedParameter {
	out := make([]FixedParameter, len(s.fixed))
	copy(out, s.fixed)
	return out
}

// NamedParameters returns the named fields in declaration order.
func (s *MessageSchema) NamedParameters() []NamedParameter {
	out := make([]NamedParameter, len(s.named))
	copy(out, s.named)
	return out
}

type Option func(*Builder)

// WithRegistry sets the registry used to resolve type tokens.
func WithRegistry(reg *types.Registry) Option {
	return func(b *Builder) {
		if reg != nil {
			b.registry = reg
		}
	}
}

// Builder collects declarations for one message type. The first failed
// declaration is kept and every later call is ignored; Build reports it.
type Builder struct {
	id       string
	name     string
	registry *types.Registry
	fixed    []FixedParameter
	named    []NamedParameter
	byKey    map[string]int
	offset   int
	err      error
}

func New(id, name string, opts ...Option) *Builder {
	b := &Builder{
		id:    id,
		name:  name,
		byKey: make(map[string]int),
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.registry == nil {
		b.registry = types.DefaultRegistry()
	}
	switch {
	case id == "":
		b.fail(&InvalidSchemaError{SchemaID: id, Reason: "empty message id"})
	case name == "":
		b.fail(&InvalidSchemaError{SchemaID: id, Reason: "empty message name"})
	}
	return b
}

// WithFixedParameter appends a fixed field. typ is a registry token or a
// types.FieldType.
func (b *Builder) WithFixedParameter(name string, length int, typ any) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.fail(&InvalidSchemaError{SchemaID: b.id, Reason: "empty fixed parameter name"})
		return b
	}
	if length <= 0 {
		b.fail(&InvalidSchemaError{
			SchemaID: b.id,
			Field:    name,
			Reason:   fmt.Sprintf("fixed length must be positive, got %d", length),
		})
		return b
	}
	ft, err := b.resolve(name, typ)
	if err != nil {
		b.fail(err)
		return b
	}
	if _, ok := ft.(*types.DateType); ok && length != types.DateLength {
		b.fail(&InvalidSchemaError{
			SchemaID: b.id,
			Field:    name,
			Reason:   fmt.Sprintf("date field must be %d characters, got %d", types.DateLength, length),
		})
		return b
	}
	b.fixed = append(b.fixed, FixedParameter{Name: name, Length: length, Offset: b.offset, Type: ft})
	b.offset += length
	return b
}

// WithNamedParameter declares a keyed field. Keys must be unique.
func (b *Builder) WithNamedParameter(name, key string, typ any) *Builder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.fail(&InvalidSchemaError{SchemaID: b.id, Field: key, Reason: "empty named parameter name"})
		return b
	}
	if utf8.RuneCountInString(key) != KeyLength {
		b.fail(&InvalidSchemaError{
			SchemaID: b.id,
			Field:    name,
			Reason:   fmt.Sprintf("key %q must be %d characters", key, KeyLength),
		})
		return b
	}
	if i, exists := b.byKey[key]; exists {
		b.fail(&DuplicateKeyError{SchemaID: b.id, Key: key, Existing: b.named[i].Name, Name: name})
		return b
	}
	ft, err := b.resolve(name, typ)
	if err != nil {
		b.fail(err)
		return b
	}
	b.byKey[key] = len(b.named)
	b.named = append(b.named, NamedParameter{Key: key, Name: name, Type: ft})
	return b
}

func (b *Builder) resolve(field string, typ any) (types.FieldType, error) {
	switch t := typ.(type) {
	case nil:
		return nil, &InvalidSchemaError{SchemaID: b.id, Field: field, Reason: "nil field type"}
	case string:
		ft, err := b.registry.Resolve(t)
		if err != nil {
			return nil, &InvalidSchemaError{SchemaID: b.id, Field: field, Reason: "unresolved type", Err: err}
		}
		return ft, nil
	case types.FieldType:
		return t, nil
	default:
		return nil, &InvalidSchemaError{
			SchemaID: b.id,
			Field:    field,
			Reason:   fmt.Sprintf("unsupported type argument %T", typ),
		}
	}
}

func (b *Builder) fail(err error) {
	b.err = err
	log.Error().Err(err).Str("id", b.id).Str("name", b.name).Msg("schema.declare failed")
}

// Err returns the first declaration error, if any.
func (b *Builder) Err() error {
	return b.err
}

// Build returns the finished schema. Later builder calls do not affect it.
func (b *Builder) Build() (*MessageSchema, error) {
	if b.err != nil {
		return nil, b.err
	}
	s := &MessageSchema{
		id:          b.id,
		name:        b.name,
		fixed:       make([]FixedParameter, len(b.fixed)),
		named:       make([]NamedParameter, len(b.named)),
		byKey:       make(map[string]int, len(b.byKey)),
		fixedLength: b.offset,
	}
	copy(s.fixed, b.fixed)
	copy(s.named, b.named)
	for k, v := range b.byKey {
		s.byKey[k] = v
	}
	log.Debug().
		Str("id", s.id).
		Str("name", s.name).
		Int("fixed", len(s.fixed)).
		Int("named", len(s.named)).
		Msg("schema.Build")
	return s, nil
}

// MustBuild is Build for package level declarations; it panics on error.
func (b *Builder) MustBuild() *MessageSchema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
