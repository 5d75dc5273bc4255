package document

import (
	"sort"
	"sync"

	"github.com/vango-dev/vrender/pkg/vdom"
)

// Registry maps document tag names to components.
// It is safe for concurrent use.
type Registry struct {
	mu         sync.RWMutex
	components map[string]vdom.Component
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{components: make(map[string]vdom.Component)}
}

// Register installs c under name, replacing any previous component.
// A nil component removes the name.
func (r *Registry) Register(name string, c vdom.Component) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if c == nil {
		delete(r.components, name)
		return
	}
	r.components[name] = c
}

// Lookup returns the component registered under name.
// A nil registry has no components.
func (r *Registry) Lookup(name string) (vdom.Component, bool) {
	if r == nil {
		return nil, false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.components[name]
	return c, ok
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.components))
	for name := range r.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
