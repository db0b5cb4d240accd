package cart

import (
	"sync"
	"time"
)

type entry struct {
	cart *Cart
	seen time.Time
}

// Registry holds one cart per client session.
type Registry struct {
	mu    sync.Mutex
	carts map[string]*entry
	now   func() time.Time
}

func NewRegistry() *Registry {
	return &Registry{carts: make(map[string]*entry), now: time.Now}
}

// Get returns the session cart, creating an empty one on first use.
func (r *Registry) Get(sessionID string) *Cart {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.carts[sessionID]
	if !ok {
		e = &entry{cart: New()}
		r.carts[sessionID] = e
	}
	e.seen = r.now()
	return e.cart
}

// Expire drops carts not used for idle and returns their session ids.
func (r *Registry) Expire(idle time.Duration) []string {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	defer r.mu.Unlock()

	var ids []string
	for id, e := range r.carts {
		if e.seen.After(cutoff) {
			continue
		}
		delete(r.carts, id)
		ids = append(ids, id)
	}
	return ids
}
