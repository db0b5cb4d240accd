package checkout

import (
	"sync"
	"time"

	"storefront-service/internal/cart"

	"go.uber.org/zap"
)

type registryEntry struct {
	wizard *Wizard
	seen   time.Time
}

// Registry keeps one wizard per client session.
type Registry struct {
	mu      sync.Mutex
	wizards map[string]*registryEntry
	placer  Placer
	proofs  ProofReleaser
	opts    Options
	log     *zap.Logger
	now     func() time.Time
}

// NewRegistry builds wizards that place orders through placer. proofs may be nil.
func NewRegistry(placer Placer, proofs ProofReleaser, opts Options, log *zap.Logger) *Registry {
	if log == nil {
		log = zap.NewNop()
	}
	return &Registry{
		wizards: make(map[string]*registryEntry),
		placer:  placer,
		proofs:  proofs,
		opts:    opts,
		log:     log,
		now:     time.Now,
	}
}

// Get returns the session wizard, creating it bound to c on first use.
func (r *Registry) Get(sessionID string, c *cart.Cart) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.wizards[sessionID]
	if !ok {
		w := NewWizard(c, r.placer, r.opts, r.log.With(zap.String("session", sessionID)))
		w.proofs = r.proofs
		e = &registryEntry{wizard: w}
		r.wizards[sessionID] = e
	}
	e.seen = r.now()
	return e.wizard
}

// Expire drops wizards unused for idle and deletes their unplaced proofs.
// Wizards in the middle of a submission are kept.
func (r *Registry) Expire(idle time.Duration) []string {
	cutoff := r.now().Add(-idle)

	r.mu.Lock()
	var stale []*Wizard
	var ids []string
	for id, e := range r.wizards {
		if e.seen.After(cutoff) || e.wizard.Step() == StepSubmitting {
			continue
		}
		delete(r.wizards, id)
		stale = append(stale, e.wizard)
		ids = append(ids, id)
	}
	r.mu.Unlock()

	for i, w := range stale {
		if !w.discard() {
			r.log.Debug("wizard started submitting while expiring", zap.String("session", ids[i]))
		}
	}
	return ids
}
