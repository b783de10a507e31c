package surface

import (
	"fmt"
	"sort"
	"sync"
)

// DefaultID is the identifier the controller looks up on startup.
const DefaultID = "canvas"

// Registry maps well known identifiers to surfaces.
type Registry struct {
	mu       sync.RWMutex
	surfaces map[string]Surface
}

func NewRegistry() *Registry {
	return &Registry{
		surfaces: make(map[string]Surface),
	}
}

// Register adds s under id, replacing any previous entry.
func (r *Registry) Register(id string, s Surface) {
	r.mu.Lock()
	r.surfaces[id] = s
	r.mu.Unlock()
}

func (r *Registry) Unregister(id string) {
	r.mu.Lock()
	delete(r.surfaces, id)
	r.mu.Unlock()
}

// Lookup returns the surface registered under id.
func (r *Registry) Lookup(id string) (Surface, error) {
	r.mu.RLock()
	s, ok := r.surfaces[id]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: no surface with id %q", ErrSurfaceUnavailable, id)
	}
	return s, nil
}

func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.surfaces))
	for id := range r.surfaces {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
