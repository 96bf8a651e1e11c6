package schema

import (
	_ "embed"
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed defs/fretboard.yaml
var embeddedSchema []byte

// Store loads the schema once and caches it for the life of the process.
// Get always returns the same *Schema until Reload swaps in a fresh copy;
// the cached value itself is never mutated.
type Store struct {
	path string

	mu     sync.RWMutex
	cached *Schema
}

// NewStore creates a schema store reading from the given definition file.
// An empty path selects the embedded definition.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Get returns the cached schema, loading it on first use.
func (s *Store) Get() (*Schema, error) {
	s.mu.RLock()
	cached := s.cached
	s.mu.RUnlock()
	if cached != nil {
		return cached, nil
	}
	return s.Reload()
}

// Reload re-reads the definition and replaces the cache on success. The old
// cached schema stays valid for holders of the pointer.
func (s *Store) Reload() (*Schema, error) {
	loaded, err := s.load()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.cached = loaded
	s.mu.Unlock()
	return loaded, nil
}

func (s *Store) load() (*Schema, error) {
	source := "embedded"
	data := embeddedSchema
	if s.path != "" {
		source = s.path
		var err error
		data, err = os.ReadFile(s.path)
		if err != nil {
			return nil, &LoadError{Source: source, Err: err}
		}
	}

	var parsed Schema
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, &LoadError{Source: source, Err: fmt.Errorf("parse: %w", err)}
	}
	if err := Validate(&parsed); err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return &parsed, nil
}
