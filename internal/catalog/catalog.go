package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"still-goods-backend/pkg/validator"
)

// Product is a single catalog record. The catalog is the sole source of
// truth for price and currency; values arriving from clients are never
// consulted.
type Product struct {
	SKU         string `json:"sku" validate:"required,sku"`
	Name        string `json:"name" validate:"required"`
	Description string `json:"description" validate:"required"`
	PriceCents  int64  `json:"price_cents" validate:"gte=0"`
	Currency    string `json:"currency" validate:"required,currency_code"`
	ImageURL    string `json:"image_url" validate:"required,url"`
}

// Catalog is an immutable SKU-to-product mapping, constructed once and
// injected where needed. Safe for concurrent reads.
type Catalog struct {
	products map[string]Product
	order    []string
}

type catalogFile struct {
	Products []Product `json:"products"`
}

// New builds a catalog from the given records. Duplicate or invalid
// records are rejected.
func New(products []Product) (*Catalog, error) {
	if len(products) == 0 {
		return nil, errors.New("catalog requires at least one product")
	}

	bySKU := make(map[string]Product, len(products))
	order := make([]string, 0, len(products))

	for _, product := range products {
		if err := validator.Validate(product); err != nil {
			return nil, fmt.Errorf("invalid catalog record %q: %w", product.SKU, err)
		}
		if _, exists := bySKU[product.SKU]; exists {
			return nil, fmt.Errorf("duplicate catalog SKU %q", product.SKU)
		}
		bySKU[product.SKU] = product
		order = append(order, product.SKU)
	}

	return &Catalog{products: bySKU, order: order}, nil
}

// Default returns the embedded Still Goods catalog.
func Default() *Catalog {
	c, err := New(defaultProducts())
	if err != nil {
		// The embedded records are fixed at compile time; failing to
		// build them is a programming error.
		panic(err)
	}
	return c
}

// Load reads catalog records from a JSON file. A missing file falls back
// to the embedded defaults so deployments without an override keep
// working.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var file catalogFile
	if err := json.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}

	if len(file.Products) == 0 {
		return Default(), nil
	}

	return New(file.Products)
}

// Lookup resolves a SKU against the catalog.
func (c *Catalog) Lookup(sku string) (Product, bool) {
	if c == nil {
		return Product{}, false
	}
	product, ok := c.products[sku]
	return product, ok
}

// Products returns all records in a stable order.
func (c *Catalog) Products() []Product {
	if c == nil {
		return nil
	}
	result := make([]Product, 0, len(c.order))
	for _, sku := range c.order {
		result = append(result, c.products[sku])
	}
	return result
}

// SKUs returns the sorted set of known SKUs.
func (c *Catalog) SKUs() []string {
	if c == nil {
		return nil
	}
	skus := make([]string, len(c.order))
	copy(skus, c.order)
	sort.Strings(skus)
	return skus
}

func (c *Catalog) Len() int {
	if c == nil {
		return 0
	}
	return len(c.products)
}

func defaultProducts() []Product {
	return []Product{
		{
			SKU:         "SG-001",
			Name:        "Walnut Desk Tray",
			Description: "Solid walnut desk tray. Cut from a single piece.",
			PriceCents:  7800,
			Currency:    "cad",
			ImageURL:    "https://goods.scottbertrand.com/assets/products/desk-tray.jpg",
		},
		{
			SKU:         "SG-002",
			Name:        "Concrete Pen Holder",
			Description: "Weighted concrete pen holder. Minimal, functional desk anchor.",
			PriceCents:  4800,
			Currency:    "cad",
			ImageURL:    "https://goods.scottbertrand.com/assets/products/pen-holder.jpg",
		},
		{
			SKU:         "SG-003",
			Name:        "Brass Paperweight",
			Description: "Brushed brass paperweight. Develops patina over time.",
			PriceCents:  6800,
			Currency:    "cad",
			ImageURL:    "https://goods.scottbertrand.com/assets/products/paperweight.jpg",
		},
		{
			SKU:         "SG-004",
			Name:        "Leather Desk Mat",
			Description: "Vegetable-tanned leather desk mat. Develops character with use.",
			PriceCents:  12800,
			Currency:    "cad",
			ImageURL:    "https://goods.scottbertrand.com/assets/products/desk-mat.jpg",
		},
	}
}
