package types

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	ErrEmptyToken     = errors.New("types: empty type token")
	ErrNilFactory     = errors.New("types: nil factory")
	ErrDuplicateToken = errors.New("types: type token already registered")
	ErrUnknownToken   = errors.New("types: unknown type token")
)

// Factory builds a fresh FieldType instance.
type Factory func() FieldType

// Registry maps type tokens to factories. Resolve returns a new instance on
// every call, so constraints set on one field never reach another.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]Factory)}
}

// DefaultRegistry returns a new registry holding the built-in types.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.mustRegister(TokenString, func() FieldType { return NewString() })
	r.mustRegister(TokenDate, func() FieldType { return NewDate() })
	r.mustRegister(TokenFlag, func() FieldType { return NewFlag() })
	r.mustRegister(TokenNumber, func() FieldType { return NewNumber() })
	return r
}

func (r *Registry) Register(token string, factory Factory) error {
	if token == "" {
		return ErrEmptyToken
	}
	if factory == nil {
		return fmt.Errorf("%w: %s", ErrNilFactory, token)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[token]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateToken, token)
	}
	r.factories[token] = factory
	return nil
}

func (r *Registry) mustRegister(token string, factory Factory) {
	if err := r.Register(token, factory); err != nil {
		panic(err)
	}
}

func (r *Registry) Resolve(token string) (FieldType, error) {
	r.mu.RLock()
	factory, ok := r.factories[token]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownToken, token)
	}
	return factory(), nil
}

func (r *Registry) Has(token string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.factories[token]
	return ok
}

// Tokens lists the registered tokens in sorted order.
func (r *Registry) Tokens() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for token := range r.factories {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}
