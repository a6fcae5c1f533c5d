package value

import (
	"fmt"
	"sync"

	"github.com/wetware/gval/gtype"
)

// VTable is the pair of handlers that move data between a Go value and
// the native storage of a Value.
//
// Set receives the Go datum to store.  Get receives a non-nil pointer to
// the Go variable that should receive the datum.  Handlers are only called
// once the Value's type has been checked against the handler's type, so
// they may use the Value's typed slot accessors directly.
type VTable struct {
	Set func(v *Value, data any) error
	Get func(v *Value, out any) error
}

// Registry maps type identifiers to handlers.  It is safe for concurrent
// use: lookups share a read lock and registrations take the write lock.
type Registry struct {
	mu      sync.RWMutex
	vtables map[gtype.Type]VTable
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{vtables: make(map[gtype.Type]VTable)}
}

var (
	defaultOnce sync.Once
	defaultReg  *Registry
)

// DefaultRegistry returns the process-wide registry used by Value.  It is
// created on first use and holds the builtin handlers for every
// fundamental type and for the builtin boxed types.
func DefaultRegistry() *Registry {
	defaultOnce.Do(func() {
		defaultReg = NewRegistry()
		registerBuiltins(defaultReg)
	})

	return defaultReg
}

// Register installs vt as the handler for t, replacing any previous one.
func (r *Registry) Register(t gtype.Type, vt VTable) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.vtables[t] = vt
}

// Unregister removes the handler for t.  Lookups for t fall back to its
// ancestors afterwards.
func (r *Registry) Unregister(t gtype.Type) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.vtables, t)
}

// Scoped installs vt for t and returns a function that restores whatever
// was registered for t beforehand.  The release function may be called
// more than once.
func (r *Registry) Scoped(t gtype.Type, vt VTable) (release func()) {
	r.mu.Lock()
	prev, existed := r.vtables[t]
	r.vtables[t] = vt
	r.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			r.mu.Lock()
			defer r.mu.Unlock()

			if existed {
				r.vtables[t] = prev
			} else {
				delete(r.vtables, t)
			}
		})
	}
}

// Lookup returns the handler registered for t, or for its nearest
// ancestor that has one.  An entry with nil functions is still returned;
// it masks the ancestors of t.
func (r *Registry) Lookup(t gtype.Type) (VTable, error) {
	vt, _, err := r.Resolve(t)
	return vt, err
}

// Resolve is like Lookup, but also reports the type whose entry was found.
func (r *Registry) Resolve(t gtype.Type) (VTable, gtype.Type, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for at := t; at != gtype.Invalid; at = at.Parent() {
		if vt, ok := r.vtables[at]; ok {
			return vt, at, nil
		}
	}

	return VTable{}, gtype.Invalid, fmt.Errorf("%w: %s", ErrUnregisteredType, t)
}

// Len returns the number of registered entries.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.vtables)
}
