// Package predicate provides named character predicates for filtered views.
//
// Predicates are looked up by spec strings so they can be named on the
// command line or in configuration files:
//
//	alpha            a registered predicate
//	not:digit        negation of another spec
//	oneof:aeiou      characters in a set
//	noneof:,;        characters outside a set
//	range:a-f        characters in an inclusive byte range
//
// Chain resolves a list of specs for view.Compose.
package predicate

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/dshills/fsview/internal/view"
)

// Errors returned by predicate lookups.
var (
	// ErrUnknownPredicate indicates a spec names no registered predicate.
	ErrUnknownPredicate = errors.New("unknown predicate")

	// ErrInvalidSpec indicates a malformed parameterised spec.
	ErrInvalidSpec = errors.New("invalid predicate spec")

	// ErrAlreadyRegistered indicates a duplicate registration.
	ErrAlreadyRegistered = errors.New("predicate already registered")
)

// Registry maps names to predicates.
type Registry struct {
	mu    sync.RWMutex
	preds map[string]view.Predicate
	help  map[string]string
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		preds: make(map[string]view.Predicate),
		help:  make(map[string]string),
	}
}

// NewWithDefaults creates a registry holding the built-in predicates.
func NewWithDefaults() *Registry {
	r := New()
	r.RegisterDefaults()
	return r
}

// Register adds a named predicate.
// Returns an error if the name is already taken.
func (r *Registry) Register(name, help string, p view.Predicate) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.preds[name]; exists {
		return fmt.Errorf("%w: %s", ErrAlreadyRegistered, name)
	}
	r.preds[name] = p
	r.help[name] = help
	return nil
}

// MustRegister registers a predicate and panics on error.
func (r *Registry) MustRegister(name, help string, p view.Predicate) {
	if err := r.Register(name, help, p); err != nil {
		panic(err)
	}
}

// Get returns the predicate registered under name.
func (r *Registry) Get(name string) (view.Predicate, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.preds[name]
	return p, ok
}

// Has checks if a name is registered.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Help returns the description of a registered predicate.
func (r *Registry) Help(name string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.help[name]
}

// Names returns the registered names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.preds))
	for name := range r.preds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
