package domain

import "strings"

// Variant is a selectable product configuration. It has no identity of its own:
// two variants are the same when every attribute matches.
type Variant struct {
	Aroma  string `json:"aroma,omitempty"`
	Color  string `json:"color,omitempty"`
	Size   string `json:"size,omitempty"`
	Gender string `json:"gender,omitempty"`
}

// Attributes returns the present attributes in display order.
func (v Variant) Attributes() []string {
	out := make([]string, 0, 4)
	for _, a := range []string{v.Aroma, v.Color, v.Size, v.Gender} {
		if a != "" {
			out = append(out, a)
		}
	}
	return out
}

func (v Variant) String() string {
	return strings.Join(v.Attributes(), ", ")
}

// SameVariant compares two optional variants by value.
// An absent variant only matches another absent variant.
func SameVariant(a, b *Variant) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func cloneVariant(v *Variant) *Variant {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
