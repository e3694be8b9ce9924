package cachex

import (
	"context"
	"errors"
	"sync"
)

// Entry binds a Backend to the name it was registered under.
type Entry struct {
	Name    string
	Backend Backend
}

// Registry holds named backends and the default used for empty names.
// The first registered backend is the default unless SetDefault picks another.
// Normally populated once at startup; Register stays safe to call later.
type Registry struct {
	mu      sync.RWMutex
	entries map[string]Entry
	order   []string // registration order
	def     string
}

func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]Entry)}
}

// Register adds or replaces the backend for name. Replacing keeps the name's
// original position and, if it is the default, the new backend becomes default.
func (r *Registry) Register(name string, b Backend) error {
	if name == "" {
		return ErrEmptyName
	}
	if b == nil {
		return ErrNilBackend
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		r.order = append(r.order, name)
	}
	r.entries[name] = Entry{Name: name, Backend: b}
	if r.def == "" {
		r.def = name
	}
	return nil
}

// SetDefault designates an already registered backend as the default.
func (r *Registry) SetDefault(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[name]; !ok {
		return &NoSuchCacheError{Name: name}
	}
	r.def = name
	return nil
}

// Resolve returns the default entry for an empty name and the named entry
// otherwise. An unknown name is never substituted with the default.
func (r *Registry) Resolve(name string) (Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		if r.def == "" {
			return Entry{}, ErrNoDefaultCache
		}
		return r.entries[r.def], nil
	}
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, &NoSuchCacheError{Name: name}
	}
	return e, nil
}

// Default returns the default entry; ok is false for an empty registry.
func (r *Registry) Default() (Entry, bool) {
	e, err := r.Resolve("")
	return e, err == nil
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Close closes every registered backend that has a Close(context.Context)
// error method, once per backend even if registered under several names.
func (r *Registry) Close(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var errs []error
	closed := make(map[Backend]struct{}, len(r.entries))
	for _, name := range r.order {
		b := r.entries[name].Backend
		if _, ok := closed[b]; ok {
			continue
		}
		closed[b] = struct{}{}
		if c, ok := b.(interface{ Close(context.Context) error }); ok {
			if err := c.Close(ctx); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}
