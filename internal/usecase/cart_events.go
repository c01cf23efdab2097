package usecase

import (
	"context"
	"time"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

// CartEvents forwards engine changes to a publisher. Publishing is best
// effort: a broker outage never fails a cart operation.
type CartEvents struct {
	pub     CartEventPublisher
	timeout time.Duration
	now     func() time.Time
}

func NewCartEvents(pub CartEventPublisher, timeout time.Duration) *CartEvents {
	if timeout <= 0 {
		timeout = 2 * time.Second
	}
	return &CartEvents{pub: pub, timeout: timeout, now: time.Now}
}

// Subscriber adapts CartEvents to cart.Subscriber.
func (ce *CartEvents) Subscriber() cart.Subscriber {
	return func(c cart.Change) {
		ctx, cancel := context.WithTimeout(context.Background(), ce.timeout)
		defer cancel()
		if err := ce.pub.PublishCartChanged(ctx, ce.toMsg(c)); err != nil {
			logging.New("cart-events").Warn("publish cart change failed", "key", c.Key, "op", c.Op, "err", err)
		}
	}
}

func (ce *CartEvents) toMsg(c cart.Change) CartChangedMsg {
	lines := make([]CartLineMsg, 0, len(c.State.Items))
	for _, it := range c.State.Items {
		l := CartLineMsg{
			ProductID: it.Product.ID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Subtotal:  it.Subtotal(),
		}
		if it.Variant != nil {
			l.Variant = it.Variant.String()
		}
		lines = append(lines, l)
	}
	return CartChangedMsg{
		StorageKey: c.Key,
		Op:         string(c.Op),
		Items:      lines,
		TotalItems: c.State.TotalItems,
		TotalPrice: c.State.TotalPrice,
		IsOpen:     c.State.IsOpen,
		At:         ce.now().UTC(),
	}
}
