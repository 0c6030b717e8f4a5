package domain

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry maps sanitized resource names to handles. Handles are registered
// at startup; lookups are safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	handles map[string]Handle
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handles: make(map[string]Handle)}
}

// Register adds handle under name. The name must already be in sanitized
// form and must not be registered yet.
func (r *Registry) Register(name string, handle Handle) error {
	if name == "" || Sanitize(name) != name {
		return fmt.Errorf("invalid resource name %q", name)
	}
	if handle == nil {
		return fmt.Errorf("nil handle for resource %q", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handles[name]; exists {
		return fmt.Errorf("resource %q already registered", name)
	}
	r.handles[name] = handle
	return nil
}

// MustRegister is like Register but panics on error.
func (r *Registry) MustRegister(name string, handle Handle) {
	if err := r.Register(name, handle); err != nil {
		panic(err)
	}
}

// Resolve sanitizes segment and returns the registered handle and its name.
// Returns ErrUnknownResource when nothing is registered under the sanitized name.
func (r *Registry) Resolve(segment string) (string, Handle, error) {
	name := Sanitize(segment)

	r.mu.RLock()
	handle, ok := r.handles[name]
	r.mu.RUnlock()

	if !ok {
		return name, nil, ErrUnknownResource
	}
	return name, handle, nil
}

// Names returns the registered resource names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handles))
	for name := range r.handles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sanitize strips every rune outside [A-Za-z0-9_-].
func Sanitize(segment string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, segment)
}
