package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCatalogRecords(t *testing.T) {
	cat := Default()

	if cat.Len() != 4 {
		t.Fatalf("expected 4 embedded products, got %d", cat.Len())
	}

	product, ok := cat.Lookup("SG-001")
	if !ok {
		t.Fatalf("expected SG-001 to be present")
	}
	if product.Name != "Walnut Desk Tray" {
		t.Fatalf("unexpected name for SG-001: %s", product.Name)
	}
	if product.PriceCents != 7800 {
		t.Fatalf("expected SG-001 price 7800, got %d", product.PriceCents)
	}
	if product.Currency != "cad" {
		t.Fatalf("expected SG-001 currency cad, got %s", product.Currency)
	}

	for _, sku := range []string{"SG-001", "SG-002", "SG-003", "SG-004"} {
		if _, ok := cat.Lookup(sku); !ok {
			t.Fatalf("expected %s to be present", sku)
		}
	}
}

func TestLookupUnknownSKU(t *testing.T) {
	cat := Default()

	for _, sku := range []string{"", "BOGUS", "sg-001", "SG-005"} {
		if _, ok := cat.Lookup(sku); ok {
			t.Fatalf("expected lookup of %q to miss", sku)
		}
	}
}

func TestNewRejectsDuplicateSKU(t *testing.T) {
	products := defaultProducts()
	products = append(products, products[0])

	if _, err := New(products); err == nil {
		t.Fatalf("expected duplicate SKU to be rejected")
	}
}

func TestNewRejectsInvalidRecords(t *testing.T) {
	base := Product{
		SKU:         "SG-100",
		Name:        "Test Product",
		Description: "A product used in tests.",
		PriceCents:  100,
		Currency:    "cad",
		ImageURL:    "https://example.com/p.jpg",
	}

	cases := []struct {
		name   string
		mutate func(p *Product)
	}{
		{name: "Missing SKU", mutate: func(p *Product) { p.SKU = "" }},
		{name: "Negative price", mutate: func(p *Product) { p.PriceCents = -1 }},
		{name: "Uppercase currency", mutate: func(p *Product) { p.Currency = "CAD" }},
		{name: "Short currency", mutate: func(p *Product) { p.Currency = "ca" }},
		{name: "Relative image URL", mutate: func(p *Product) { p.ImageURL = "assets/p.jpg" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			product := base
			tc.mutate(&product)
			if _, err := New([]Product{product}); err == nil {
				t.Fatalf("expected record to be rejected")
			}
		})
	}
}

func TestLoadFallsBackWithoutFile(t *testing.T) {
	cat, err := Load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 4 {
		t.Fatalf("expected embedded defaults, got %d products", cat.Len())
	}

	cat, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	if err != nil {
		t.Fatalf("unexpected error for missing file: %v", err)
	}
	if cat.Len() != 4 {
		t.Fatalf("expected embedded defaults for missing file, got %d products", cat.Len())
	}
}

func TestLoadReadsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	content := `{"products":[{"sku":"SG-900","name":"Test Tray","description":"Tray for tests.","price_cents":1200,"currency":"cad","image_url":"https://example.com/tray.jpg"}]}`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	cat, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cat.Len() != 1 {
		t.Fatalf("expected 1 product from override, got %d", cat.Len())
	}
	product, ok := cat.Lookup("SG-900")
	if !ok {
		t.Fatalf("expected SG-900 from override file")
	}
	if product.PriceCents != 1200 {
		t.Fatalf("expected price 1200, got %d", product.PriceCents)
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := os.WriteFile(path, []byte("not json"), 0o600); err != nil {
		t.Fatalf("failed to write catalog file: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatalf("expected malformed catalog file to be rejected")
	}
}

func TestProductsStableOrder(t *testing.T) {
	cat := Default()
	products := cat.Products()

	expected := []string{"SG-001", "SG-002", "SG-003", "SG-004"}
	if len(products) != len(expected) {
		t.Fatalf("expected %d products, got %d", len(expected), len(products))
	}
	for i, sku := range expected {
		if products[i].SKU != sku {
			t.Fatalf("expected product %d to be %s, got %s", i, sku, products[i].SKU)
		}
	}
}
