package session

import (
	"context"
	"sync"
	"time"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

// Hooks lets the caller observe engine lifecycle without the registry
// knowing about metrics.
type Hooks struct {
	Loaded   func(cart.LoadOutcome)
	Sessions func(active int)
}

// Registry holds one cart engine per browser session. Engines are opened
// lazily from storage and dropped after sitting idle; their state is
// already persisted, so a dropped engine is simply re-opened on next use.
type Registry struct {
	mu        sync.Mutex
	store     cart.Storage
	keyPrefix string
	subs      []cart.Subscriber
	hooks     Hooks
	entries   map[string]*entry
	now       func() time.Time
}

type entry struct {
	engine   *cart.Engine
	lastSeen time.Time
}

func NewRegistry(store cart.Storage, keyPrefix string, hooks Hooks, subs ...cart.Subscriber) *Registry {
	return &Registry{
		store:     store,
		keyPrefix: keyPrefix,
		subs:      subs,
		hooks:     hooks,
		entries:   make(map[string]*entry),
		now:       time.Now,
	}
}

// Key is the storage key for a session.
func (r *Registry) Key(sid string) string {
	return r.keyPrefix + ":" + sid
}

// Engine returns the session's engine, opening it on first use.
// Storage is read outside the registry lock so a slow load only delays its
// own session; when two requests race to open the same session the first
// engine stored wins.
func (r *Registry) Engine(ctx context.Context, sid string) *cart.Engine {
	if eng, ok := r.cached(sid); ok {
		return eng
	}

	opts := make([]cart.Option, 0, len(r.subs)+1)
	opts = append(opts, cart.WithLogger(logging.New("cart").With("sid", sid)))
	for _, s := range r.subs {
		opts = append(opts, cart.WithSubscriber(s))
	}
	eng := cart.Open(ctx, r.store, r.Key(sid), opts...)
	if ctx.Err() != nil {
		// the load may have been cut short; don't keep an engine that could
		// overwrite the stored cart with a partial view
		return eng
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[sid]; ok {
		e.lastSeen = r.now()
		return e.engine
	}
	r.entries[sid] = &entry{engine: eng, lastSeen: r.now()}

	if r.hooks.Loaded != nil {
		r.hooks.Loaded(eng.LoadOutcome())
	}
	r.reportLocked()
	return eng
}

func (r *Registry) cached(sid string) (*cart.Engine, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[sid]
	if !ok {
		return nil, false
	}
	e.lastSeen = r.now()
	return e.engine, true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Sweep forgets engines idle for longer than idle and returns how many it dropped.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for sid, e := range r.entries {
		if e.lastSeen.Before(cutoff) {
			delete(r.entries, sid)
			n++
		}
	}
	if n > 0 {
		r.reportLocked()
	}
	return n
}

// RunSweeper sweeps every interval until ctx is done.
func (r *Registry) RunSweeper(ctx context.Context, interval, idle time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(idle); n > 0 {
				logging.New("session").Debug("swept idle carts", "dropped", n)
			}
		}
	}
}

func (r *Registry) reportLocked() {
	if r.hooks.Sessions != nil {
		r.hooks.Sessions(len(r.entries))
	}
}
