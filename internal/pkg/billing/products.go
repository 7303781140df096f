package billing

import (
	"fmt"
	"strconv"
	"strings"
)

// Product is one purchasable credit pack.
type Product struct {
	Slug    string
	ID      string
	Credits int
}

// ProductTable maps provider product ids to credit amounts. The zero value
// is an empty table that classifies everything as zero credits.
type ProductTable struct {
	products []Product
	byID     map[string]Product
	bySlug   map[string]Product
}

// DefaultProducts returns the built-in Lite, Regular and Max packs.
func DefaultProducts() *ProductTable {
	t, _ := NewProductTable([]Product{
		{Slug: "Lite", ID: "9c20e6f9-0c32-47a1-a877-d8dfdf6fb873", Credits: 50},
		{Slug: "Regular", ID: "88f81aca-72c5-43ff-8d39-a8e3e1b19d0d", Credits: 100},
		{Slug: "Max", ID: "285f0a31-a5aa-4dd6-9c6f-d2b7b3ff0daa", Credits: 400},
	})
	return t
}

// NewProductTable validates the products and builds the lookup indexes.
// Slugs match case-insensitively.
func NewProductTable(products []Product) (*ProductTable, error) {
	t := &ProductTable{
		byID:   make(map[string]Product, len(products)),
		bySlug: make(map[string]Product, len(products)),
	}
	for _, p := range products {
		p.Slug = strings.TrimSpace(p.Slug)
		p.ID = strings.TrimSpace(p.ID)
		if p.Slug == "" || p.ID == "" {
			return nil, fmt.Errorf("product needs slug and id: %+v", p)
		}
		if p.Credits < 0 {
			return nil, fmt.Errorf("product %s has negative credits", p.Slug)
		}
		if _, dup := t.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %s", p.ID)
		}
		slugKey := strings.ToLower(p.Slug)
		if _, dup := t.bySlug[slugKey]; dup {
			return nil, fmt.Errorf("duplicate product slug %s", p.Slug)
		}
		t.products = append(t.products, p)
		t.byID[p.ID] = p
		t.bySlug[slugKey] = p
	}
	return t, nil
}

// ParseProductTable reads "slug:productID:credits" entries separated by
// commas. An empty string yields the default table.
func ParseProductTable(raw string) (*ProductTable, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultProducts(), nil
	}

	var products []Product
	for _, entry := range strings.Split(raw, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.Split(entry, ":")
		if len(parts) != 3 {
			return nil, fmt.Errorf("product entry %q: want slug:productID:credits", entry)
		}
		credits, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return nil, fmt.Errorf("product entry %q: credits: %w", entry, err)
		}
		products = append(products, Product{Slug: parts[0], ID: parts[1], Credits: credits})
	}
	return NewProductTable(products)
}

// CreditsFor classifies a product id. Unknown ids yield 0 and false.
func (t *ProductTable) CreditsFor(productID string) (int, bool) {
	if t == nil {
		return 0, false
	}
	p, ok := t.byID[strings.TrimSpace(productID)]
	if !ok {
		return 0, false
	}
	return p.Credits, true
}

// Lookup finds a product by slug or by id.
func (t *ProductTable) Lookup(ref string) (Product, bool) {
	if t == nil {
		return Product{}, false
	}
	ref = strings.TrimSpace(ref)
	if p, ok := t.byID[ref]; ok {
		return p, true
	}
	p, ok := t.bySlug[strings.ToLower(ref)]
	return p, ok
}

// ResolveProductIDs turns slugs or ids into provider product ids, keeping
// order and dropping duplicates.
func (t *ProductTable) ResolveProductIDs(refs []string) ([]string, error) {
	seen := make(map[string]struct{}, len(refs))
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		p, ok := t.Lookup(ref)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnrecognizedProduct, ref)
		}
		if _, dup := seen[p.ID]; dup {
			continue
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}
	return ids, nil
}

// Products returns a copy of the configured products in declaration order.
func (t *ProductTable) Products() []Product {
	if t == nil {
		return nil
	}
	out := make([]Product, len(t.products))
	copy(out, t.products)
	return out
}
