package schema

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

// Catalog indexes schemas by message id.
type Catalog struct {
	mu   sync.RWMutex
	byID map[string]*MessageSchema
}

func NewCatalog() *Catalog {
	return &Catalog{byID: make(map[string]*MessageSchema)}
}

// Add registers s. A second schema with the same id is a *DuplicateKeyError.
func (c *Catalog) Add(s *MessageSchema) error {
	if s == nil {
		return fmt.Errorf("schema: nil schema")
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if existing, ok := c.byID[s.ID()]; ok {
		err := &DuplicateKeyError{SchemaID: s.ID(), Key: s.ID(), Existing: existing.Name(), Name: s.Name()}
		log.Error().Err(err).Msg("schema.Catalog.Add")
		return err
	}
	c.byID[s.ID()] = s
	log.Debug().Str("id", s.ID()).Str("name", s.Name()).Msg("schema.Catalog.Add")
	return nil
}

func (c *Catalog) Get(id string) (*MessageSchema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.byID[id]
	return s, ok
}

// Match returns the schema whose id is the longest prefix of body.
func (c *Catalog) Match(body string) (*MessageSchema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var best *MessageSchema
	for id, s := range c.byID {
		if strings.HasPrefix(body, id) && (best == nil || len(id) > len(best.ID())) {
			best = s
		}
	}
	return best, best != nil
}

// ByName returns the schema with the given message name.
func (c *Catalog) ByName(name string) (*MessageSchema, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, s := range c.byID {
		if s.Name() == name {
			return s, true
		}
	}
	return nil, false
}

// IDs lists registered message ids in sorted order.
func (c *Catalog) IDs() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.byID))
	for id := range c.byID {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func (c *Catalog) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.byID)
}
