package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	domain "github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/entity"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

var ErrInvalidQuantity = errors.New("quantity must be positive")

// LoadOutcome describes what Open found in storage.
type LoadOutcome string

const (
	LoadRestored LoadOutcome = "restored"
	LoadEmpty    LoadOutcome = "empty"
	LoadCorrupt  LoadOutcome = "corrupt"
)

// Engine owns the contents and visibility of one shopping session's cart.
// All mutations go through its methods and are persisted before they return.
type Engine struct {
	mu      sync.Mutex
	key     string
	store   Storage
	items   []domain.LineItem
	open    bool
	outcome LoadOutcome

	// seq numbers changes under mu; deliver hands them out in that order.
	seq    uint64
	turnMu sync.Mutex
	turn   *sync.Cond
	next   uint64

	subsMu sync.Mutex
	subs   map[int]Subscriber
	nextID int

	log *slog.Logger
}

type Option func(*Engine)

func WithLogger(l *slog.Logger) Option { return func(e *Engine) { e.log = l } }

func WithSubscriber(s Subscriber) Option {
	return func(e *Engine) { e.addSubscriber(s) }
}

// Open builds an engine bound to key and hydrates it from store.
// A missing or unreadable snapshot yields an empty cart; Open never fails on it.
func Open(ctx context.Context, store Storage, key string, opts ...Option) *Engine {
	if store == nil {
		panic("cart: Open called without storage")
	}
	e := &Engine{
		key:   key,
		store: store,
		items: []domain.LineItem{},
		subs:  make(map[int]Subscriber),
	}
	e.turn = sync.NewCond(&e.turnMu)
	for _, opt := range opts {
		opt(e)
	}
	if e.log == nil {
		e.log = logging.New("cart")
	}
	e.outcome = e.load(ctx)
	return e
}

func (e *Engine) load(ctx context.Context) LoadOutcome {
	raw, err := e.store.Load(ctx, e.key)
	if errors.Is(err, ErrNoSnapshot) {
		return LoadEmpty
	}
	if err != nil {
		e.log.Warn("cart: snapshot unreadable, starting empty", "key", e.key, "err", err)
		return LoadCorrupt
	}
	var items []domain.LineItem
	if err := json.Unmarshal(raw, &items); err != nil {
		e.log.Warn("cart: snapshot corrupt, starting empty", "key", e.key, "err", err)
		return LoadCorrupt
	}
	kept := make([]domain.LineItem, 0, len(items))
	merged := 0
	for _, it := range items {
		if it.Quantity < 1 || it.Product.ID == "" {
			continue
		}
		if i := indexOf(kept, it.Product.ID, it.Variant); i >= 0 {
			kept[i].Quantity += it.Quantity
			merged++
			continue
		}
		kept = append(kept, it)
	}
	if dropped := len(items) - len(kept) - merged; dropped > 0 || merged > 0 {
		e.log.Warn("cart: snapshot repaired", "key", e.key, "dropped", dropped, "merged", merged)
	}
	e.items = kept
	if len(e.items) == 0 {
		return LoadEmpty
	}
	return LoadRestored
}

func (e *Engine) Key() string { return e.key }

func (e *Engine) LoadOutcome() LoadOutcome { return e.outcome }

// AddToCart merges quantity into the line matching (product, variant) or
// appends a new line holding a snapshot of product. It always opens the cart.
func (e *Engine) AddToCart(ctx context.Context, p domain.Product, quantity int, v *domain.Variant) error {
	e.mustInit()
	if quantity <= 0 {
		return ErrInvalidQuantity
	}
	return e.mutate(ctx, OpAdd, func() bool {
		if i := e.indexOf(p.ID, v); i >= 0 {
			e.items[i].Quantity += quantity
		} else {
			e.items = append(e.items, domain.NewLineItem(p, quantity, v))
		}
		e.open = true
		return true
	})
}

// RemoveFromCart drops the line matching (productID, variant). Missing lines are a no-op.
func (e *Engine) RemoveFromCart(ctx context.Context, productID string, v *domain.Variant) error {
	e.mustInit()
	return e.mutate(ctx, OpRemove, func() bool { return e.remove(productID, v) })
}

// UpdateQuantity sets an absolute quantity. Zero or less removes the line.
func (e *Engine) UpdateQuantity(ctx context.Context, productID string, quantity int, v *domain.Variant) error {
	e.mustInit()
	if quantity <= 0 {
		return e.mutate(ctx, OpRemove, func() bool { return e.remove(productID, v) })
	}
	return e.mutate(ctx, OpUpdate, func() bool {
		i := e.indexOf(productID, v)
		if i < 0 {
			return false
		}
		e.items[i].Quantity = quantity
		return true
	})
}

// ClearCart empties the cart and persists the empty list. Visibility is unchanged.
func (e *Engine) ClearCart(ctx context.Context) error {
	e.mustInit()
	return e.mutate(ctx, OpClear, func() bool {
		e.items = []domain.LineItem{}
		return true
	})
}

// ToggleCart flips visibility. Visibility is never persisted.
func (e *Engine) ToggleCart() {
	e.mustInit()
	e.mu.Lock()
	e.open = !e.open
	st := e.snapshotLocked()
	seq := e.nextSeqLocked()
	e.mu.Unlock()
	e.deliver(seq, Change{Key: e.key, Op: OpToggle, State: st})
}

func (e *Engine) Items() []domain.LineItem {
	e.mustInit()
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneItems(e.items)
}

func (e *Engine) IsOpen() bool {
	e.mustInit()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

func (e *Engine) TotalItems() int {
	e.mustInit()
	e.mu.Lock()
	defer e.mu.Unlock()
	return totalItems(e.items)
}

func (e *Engine) TotalPrice() int64 {
	e.mustInit()
	e.mu.Lock()
	defer e.mu.Unlock()
	return totalPrice(e.items)
}

func (e *Engine) Snapshot() State {
	e.mustInit()
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// Subscribe registers s and returns a function that removes it.
func (e *Engine) Subscribe(s Subscriber) (unsubscribe func()) {
	e.mustInit()
	id := e.addSubscriber(s)
	return func() {
		e.subsMu.Lock()
		delete(e.subs, id)
		e.subsMu.Unlock()
	}
}

func (e *Engine) addSubscriber(s Subscriber) int {
	e.subsMu.Lock()
	defer e.subsMu.Unlock()
	id := e.nextID
	e.nextID++
	e.subs[id] = s
	return id
}

// mutate applies fn under the lock and, when fn reports a change, saves the
// new snapshot before releasing it. The in-memory state stays applied even
// if the save fails.
func (e *Engine) mutate(ctx context.Context, op Op, fn func() bool) error {
	e.mu.Lock()
	if !fn() {
		e.mu.Unlock()
		return nil
	}
	err := e.saveLocked(ctx)
	st := e.snapshotLocked()
	seq := e.nextSeqLocked()
	e.mu.Unlock()

	if err != nil {
		e.log.Error("cart: persist failed", "key", e.key, "op", op, "err", err)
	}
	e.deliver(seq, Change{Key: e.key, Op: op, State: st})
	return err
}

func (e *Engine) saveLocked(ctx context.Context) error {
	raw, err := json.Marshal(e.items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := e.store.Save(ctx, e.key, raw); err != nil {
		return fmt.Errorf("save cart %s: %w", e.key, err)
	}
	return nil
}

func (e *Engine) snapshotLocked() State {
	return State{
		Items:      cloneItems(e.items),
		IsOpen:     e.open,
		TotalItems: totalItems(e.items),
		TotalPrice: totalPrice(e.items),
	}
}

func (e *Engine) remove(productID string, v *domain.Variant) bool {
	i := e.indexOf(productID, v)
	if i < 0 {
		return false
	}
	e.items = append(e.items[:i], e.items[i+1:]...)
	return true
}

func (e *Engine) indexOf(productID string, v *domain.Variant) int {
	return indexOf(e.items, productID, v)
}

func indexOf(items []domain.LineItem, productID string, v *domain.Variant) int {
	for i, it := range items {
		if it.Matches(productID, v) {
			return i
		}
	}
	return -1
}

func (e *Engine) nextSeqLocked() uint64 {
	n := e.seq
	e.seq++
	return n
}

// deliver waits until every earlier change has reached the subscribers,
// then notifies them of c.
func (e *Engine) deliver(seq uint64, c Change) {
	e.turnMu.Lock()
	for e.next != seq {
		e.turn.Wait()
	}
	e.turnMu.Unlock()

	defer func() {
		e.turnMu.Lock()
		e.next++
		e.turn.Broadcast()
		e.turnMu.Unlock()
	}()
	e.notify(c)
}

func (e *Engine) notify(c Change) {
	e.subsMu.Lock()
	subs := make([]Subscriber, 0, len(e.subs))
	for _, s := range e.subs {
		subs = append(subs, s)
	}
	e.subsMu.Unlock()
	for _, s := range subs {
		s(c)
	}
}

func (e *Engine) mustInit() {
	if e == nil || e.store == nil {
		panic("cart: engine used before Open")
	}
}
