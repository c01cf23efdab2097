package cart

import domain "github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/entity"

type Op string

const (
	OpAdd    Op = "add"
	OpRemove Op = "remove"
	OpUpdate Op = "update"
	OpClear  Op = "clear"
	OpToggle Op = "toggle"
)

// State is a point-in-time copy of an engine.
type State struct {
	Items      []domain.LineItem `json:"items"`
	IsOpen     bool              `json:"isOpen"`
	TotalItems int               `json:"totalItems"`
	TotalPrice int64             `json:"totalPrice"`
}

// Change is delivered to subscribers after every operation.
type Change struct {
	Key   string
	Op    Op
	State State
}

// Subscriber receives change notifications in mutation order. It is called
// outside the state lock, so it may read the engine, but it must not mutate
// the same engine and should not block for long: the next mutation's
// notification waits for it.
type Subscriber func(Change)

func totalItems(items []domain.LineItem) int {
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n
}

func totalPrice(items []domain.LineItem) int64 {
	var sum int64
	for _, it := range items {
		sum += it.Subtotal()
	}
	return sum
}

func cloneItems(items []domain.LineItem) []domain.LineItem {
	out := make([]domain.LineItem, len(items))
	for i, it := range items {
		out[i] = it.Clone()
	}
	return out
}
