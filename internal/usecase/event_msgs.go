package usecase

import "time"

// Published on every cart change when the event exchange is enabled.
type CartChangedMsg struct {
	StorageKey string        `json:"storageKey"`
	Op         string        `json:"op"`
	Items      []CartLineMsg `json:"items"`
	TotalItems int           `json:"totalItems"`
	TotalPrice int64         `json:"totalPrice"`
	IsOpen     bool          `json:"isOpen"`
	At         time.Time     `json:"at"`
}

type CartLineMsg struct {
	ProductID string `json:"productId"`
	Name      string `json:"name"`
	Variant   string `json:"variant,omitempty"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}
