package sheet

import (
	"sync"
	"time"
)

// Registry hands out one Store per (workbook path, worksheet) pair so all
// handlers share the same read cache and write lock for a given book.
type Registry struct {
	ttl time.Duration

	mu     sync.Mutex
	stores map[string]*Store
}

// NewRegistry returns a registry whose stores use the given read TTL.
func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Registry{
		ttl:    ttl,
		stores: make(map[string]*Store),
	}
}

// For returns the shared store for a workbook path and worksheet, creating
// it on first use.
func (r *Registry) For(path, worksheet string) *Store {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := path + "\x00" + worksheet
	if s, ok := r.stores[key]; ok {
		return s
	}
	s := NewStore(path, worksheet, r.ttl)
	r.stores[key] = s
	return s
}
