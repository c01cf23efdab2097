package domain

import (
	"errors"
	"slices"
)

var (
	ErrInvalidPrice   = errors.New("invalid price")
	ErrMissingID      = errors.New("missing product id")
	ErrVariantNoAroma = errors.New("variant without aroma")
)

type ImageFit string

const (
	ImageFitDefault ImageFit = ""
	ImageFitContain ImageFit = "contain"
	ImageFitCover   ImageFit = "cover"
)

// Product is a catalog entry. Prices are whole units of the store currency.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category,omitempty"`
	Price       int64     `json:"price"`
	Description string    `json:"description,omitempty"`
	Image       string    `json:"image"`
	ImageFit    ImageFit  `json:"imageFit,omitempty"`
	Benefits    []string  `json:"benefits,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	Variants    []Variant `json:"variants,omitempty"`
}

// Normalize drops image fit values other than contain/cover.
func (p *Product) Normalize() {
	switch p.ImageFit {
	case ImageFitContain, ImageFitCover:
	default:
		p.ImageFit = ImageFitDefault
	}
}

func (p *Product) Validate() error {
	if p.ID == "" {
		return ErrMissingID
	}
	if p.Price < 0 {
		return ErrInvalidPrice
	}
	for _, v := range p.Variants {
		if v.Aroma == "" {
			return ErrVariantNoAroma
		}
	}
	return nil
}

// Clone returns a deep copy, so a cart snapshot never shares slices with the catalog.
func (p Product) Clone() Product {
	p.Benefits = slices.Clone(p.Benefits)
	p.Tags = slices.Clone(p.Tags)
	p.Variants = slices.Clone(p.Variants)
	return p
}

// Offers reports whether v is one of the product's variants.
// A product without variants only accepts an absent variant.
func (p Product) Offers(v *Variant) bool {
	if v == nil {
		return len(p.Variants) == 0
	}
	return slices.Contains(p.Variants, *v)
}
