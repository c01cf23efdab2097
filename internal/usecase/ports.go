package usecase

import (
	"context"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/cart"
)

// CartView is the read side of a session cart.
type CartView interface {
	Snapshot() cart.State
}

// CartEventPublisher ships cart change notifications off-process.
type CartEventPublisher interface {
	PublishCartChanged(ctx context.Context, msg CartChangedMsg) error
}

var _ CartView = (*cart.Engine)(nil)
