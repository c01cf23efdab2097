package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/handoff"
	"github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/logging"
)

var ErrMissingCustomerData = errors.New("name, phone and address are required")

type CheckoutInput struct {
	Name, Phone, Address, Notes string
}

type CheckoutOutput struct {
	Kind    string // "order" | "inquiry"
	Message string
	URL     string
}

const (
	KindOrder   = "order"
	KindInquiry = "inquiry"
)

// Checkout formats the cart for the messaging hand-off. It never mutates the
// cart: the customer may come back and send the same order again.
type Checkout struct {
	settings handoff.Settings
}

func NewCheckout(settings handoff.Settings) *Checkout {
	return &Checkout{settings: settings}
}

func (uc *Checkout) Execute(ctx context.Context, view CartView, in CheckoutInput) (CheckoutOutput, error) {
	st := view.Snapshot()
	if len(st.Items) == 0 {
		return uc.Inquiry(), nil
	}

	c := handoff.Customer{
		Name:    strings.TrimSpace(in.Name),
		Phone:   strings.TrimSpace(in.Phone),
		Address: strings.TrimSpace(in.Address),
		Notes:   strings.TrimSpace(in.Notes),
	}
	if c.Name == "" || c.Phone == "" || c.Address == "" {
		return CheckoutOutput{}, ErrMissingCustomerData
	}

	msg := handoff.OrderMessage(uc.settings, st.Items, st.TotalPrice, c)
	logging.FromCtx(ctx).Info("checkout: handoff link built",
		"lines", len(st.Items), "total_items", st.TotalItems, "total_price", st.TotalPrice)

	return CheckoutOutput{
		Kind:    KindOrder,
		Message: msg,
		URL:     handoff.Link(uc.settings, msg),
	}, nil
}

// Inquiry is the generic contact message, without cart contents.
func (uc *Checkout) Inquiry() CheckoutOutput {
	msg := handoff.InquiryMessage(uc.settings)
	return CheckoutOutput{
		Kind:    KindInquiry,
		Message: msg,
		URL:     handoff.Link(uc.settings, msg),
	}
}
