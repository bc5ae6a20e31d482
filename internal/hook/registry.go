package hook

import (
	"sort"
	"sync"

	"github.com/dg-vibecoding/vibehooks/internal/errors"
)

// Registry is an ordered set of handlers keyed by name.
type Registry struct {
	mu       sync.RWMutex
	handlers []Handler
	byName   map[string]Handler
}

// NewRegistry creates a registry holding handlers in the given order.
// A later handler with a duplicate name replaces the earlier one.
func NewRegistry(handlers ...Handler) *Registry {
	r := &Registry{byName: make(map[string]Handler)}
	for _, h := range handlers {
		r.Register(h)
	}
	return r
}

// Register adds or replaces a handler.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byName[h.Name()]; exists {
		for i, existing := range r.handlers {
			if existing.Name() == h.Name() {
				r.handlers[i] = h
			}
		}
	} else {
		r.handlers = append(r.handlers, h)
	}
	r.byName[h.Name()] = h
}

// Get returns the handler registered under name.
func (r *Registry) Get(name string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.byName[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownHook, "unknown hook: "+name, nil).
			WithSuggestion("Run 'vibehooks hook --help' to list available hooks")
	}
	return h, nil
}

// Handlers returns the handlers in registration order.
func (r *Registry) Handlers() []Handler {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Handler, len(r.handlers))
	copy(out, r.handlers)
	return out
}

// Names returns the registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ForEvent returns the handlers registered for event, in registration order.
func (r *Registry) ForEvent(event Event) []Handler {
	var out []Handler
	for _, h := range r.Handlers() {
		if h.Event() == event {
			out = append(out, h)
		}
	}
	return out
}
