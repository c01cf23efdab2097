package catalog

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	domain "github.com/bodegonlosdosangeles5-bit/isaromas-ecommerce/internal/entity"
)

//go:embed data/products.json
var defaultProducts []byte

var (
	ErrNotFound    = errors.New("product not found")
	ErrDuplicateID = errors.New("duplicate product id")
)

// Catalog is the read-only product list for a process. It is never mutated
// after Load returns.
type Catalog struct {
	products []domain.Product
	byID     map[string]int
}

// Default returns the catalog bundled with the binary.
func Default() (*Catalog, error) {
	return Parse(defaultProducts)
}

func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

func Load(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

func Parse(raw []byte) (*Catalog, error) {
	var products []domain.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(products)
}

// New validates and indexes products, keeping their order.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, 0, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	for i, p := range products {
		p = p.Clone()
		p.Normalize()
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("product #%d (%q): %w", i, p.ID, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("product %q: %w", p.ID, ErrDuplicateID)
		}
		c.byID[p.ID] = len(c.products)
		c.products = append(c.products, p)
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.products) }

func (c *Catalog) All() []domain.Product {
	out := make([]domain.Product, len(c.products))
	for i, p := range c.products {
		out[i] = p.Clone()
	}
	return out
}

func (c *Catalog) Find(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrNotFound
	}
	return c.products[i].Clone(), nil
}

// Categories lists distinct categories in first-seen order.
func (c *Catalog) Categories() []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range c.products {
		if p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		out = append(out, p.Category)
	}
	return out
}

// Search matches term case-insensitively against name and description, and
// category exactly. Empty arguments match everything.
func (c *Catalog) Search(term, category string) []domain.Product {
	term = strings.ToLower(strings.TrimSpace(term))
	out := []domain.Product{}
	for _, p := range c.products {
		if category != "" && p.Category != category {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.Description), term) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}
