package slab

import (
	"io"
	"sync"
)

// Registry links caches together for global diagnostics. Caches register
// at construction and are never removed; Alloc/Free never touch the
// registry. A Registry must not be copied after first use.
type Registry struct {
	mu     sync.Mutex
	caches []*Cache
}

// DefaultRegistry receives every cache whose Config names no registry.
var DefaultRegistry = NewRegistry()

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

func (r *Registry) add(c *Cache) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.caches = append(r.caches, c)
}

// Caches returns a snapshot of the registered caches in registration
// order.
func (r *Registry) Caches() []*Cache {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*Cache, len(r.caches))
	copy(out, r.caches)
	return out
}

// WriteAllStats reports occupancy for every registered cache, one line
// per cache.
func (r *Registry) WriteAllStats(w io.Writer) error {
	for _, c := range r.Caches() {
		if err := c.WriteStats(w); err != nil {
			return err
		}
	}
	return nil
}
