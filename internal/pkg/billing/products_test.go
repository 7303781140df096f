package billing

import (
	"errors"
	"testing"
)

func TestDefaultProductsCredits(t *testing.T) {
	products := DefaultProducts()
	tests := []struct {
		productID string
		want      int
		known     bool
	}{
		{productID: "9c20e6f9-0c32-47a1-a877-d8dfdf6fb873", want: 50, known: true},
		{productID: "88f81aca-72c5-43ff-8d39-a8e3e1b19d0d", want: 100, known: true},
		{productID: "285f0a31-a5aa-4dd6-9c6f-d2b7b3ff0daa", want: 400, known: true},
		{productID: "00000000-0000-0000-0000-000000000000", want: 0, known: false},
		{productID: "", want: 0, known: false},
	}

	for _, tt := range tests {
		got, known := products.CreditsFor(tt.productID)
		if got != tt.want || known != tt.known {
			t.Fatalf("CreditsFor(%q) = %d,%v, want %d,%v", tt.productID, got, known, tt.want, tt.known)
		}
	}
}

func TestCreditsForNilTable(t *testing.T) {
	var products *ProductTable
	if got, known := products.CreditsFor("anything"); got != 0 || known {
		t.Fatalf("expected nil table to classify as zero, got %d,%v", got, known)
	}
}

func TestParseProductTable(t *testing.T) {
	products, err := ParseProductTable(" starter:prod_1:25 , pro:prod_2:250 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got, _ := products.CreditsFor("prod_2"); got != 250 {
		t.Fatalf("expected 250 credits for prod_2, got %d", got)
	}
	if got, _ := products.CreditsFor("9c20e6f9-0c32-47a1-a877-d8dfdf6fb873"); got != 0 {
		t.Fatalf("override must replace defaults, got %d", got)
	}
	if len(products.Products()) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products.Products()))
	}

	defaults, err := ParseProductTable("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(defaults.Products()) != 3 {
		t.Fatalf("expected default table for empty input")
	}
}

func TestParseProductTableRejectsBadEntries(t *testing.T) {
	for _, raw := range []string{
		"lite:prod_1",
		"lite:prod_1:many",
		"lite:prod_1:-5",
		"lite:prod_1:5,other:prod_1:6",
		"lite:prod_1:5,LITE:prod_2:6",
		":prod_1:5",
	} {
		if _, err := ParseProductTable(raw); err == nil {
			t.Fatalf("expected error for %q", raw)
		}
	}
}

func TestResolveProductIDs(t *testing.T) {
	products := DefaultProducts()

	ids, err := products.ResolveProductIDs([]string{"regular", "285f0a31-a5aa-4dd6-9c6f-d2b7b3ff0daa", "Regular"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"88f81aca-72c5-43ff-8d39-a8e3e1b19d0d", "285f0a31-a5aa-4dd6-9c6f-d2b7b3ff0daa"}
	if len(ids) != len(want) || ids[0] != want[0] || ids[1] != want[1] {
		t.Fatalf("ResolveProductIDs = %v, want %v", ids, want)
	}

	_, err = products.ResolveProductIDs([]string{"Ultra"})
	if !errors.Is(err, ErrUnrecognizedProduct) {
		t.Fatalf("expected ErrUnrecognizedProduct, got %v", err)
	}
}
