package terminal

import (
	"context"
	"fmt"
	"sort"
)

// Handler executes one command against a session.
type Handler interface {
	Execute(ctx context.Context, args []string, sess *Session) Result
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, args []string, sess *Session) Result

// Execute implements Handler.
func (f HandlerFunc) Execute(ctx context.Context, args []string, sess *Session) Result {
	return f(ctx, args, sess)
}

// Registry maps command names to handlers. It is populated once at startup
// and treated as immutable afterwards; lookups are case-sensitive exact
// matches.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register adds a handler under a name. Registering the same name twice is a
// configuration error, not a silent overwrite.
func (r *Registry) Register(name string, h Handler) error {
	if name == "" {
		return fmt.Errorf("register: empty command name")
	}
	if h == nil {
		return fmt.Errorf("register %q: nil handler", name)
	}
	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("register %q: duplicate command name", name)
	}
	r.handlers[name] = h
	return nil
}

// MustRegister is Register for startup wiring; it panics on error so a
// misconfigured command table fails fast before any dispatch.
func (r *Registry) MustRegister(name string, h Handler) {
	if err := r.Register(name, h); err != nil {
		panic(err)
	}
}

// Lookup returns the handler registered under name.
func (r *Registry) Lookup(name string) (Handler, bool) {
	h, ok := r.handlers[name]
	return h, ok
}

// Names returns all registered command names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
