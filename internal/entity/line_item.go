package domain

// LineItem is one (product, variant) entry of a cart.
type LineItem struct {
	Product  Product  `json:"product"`
	Quantity int      `json:"quantity"`
	Variant  *Variant `json:"variant,omitempty"`
}

func NewLineItem(p Product, quantity int, v *Variant) LineItem {
	return LineItem{Product: p.Clone(), Quantity: quantity, Variant: cloneVariant(v)}
}

// Matches applies the cart identity rule: same product id and same variant.
func (li LineItem) Matches(productID string, v *Variant) bool {
	return li.Product.ID == productID && SameVariant(li.Variant, v)
}

func (li LineItem) Subtotal() int64 {
	return li.Product.Price * int64(li.Quantity)
}

func (li LineItem) Clone() LineItem {
	return NewLineItem(li.Product, li.Quantity, li.Variant)
}
