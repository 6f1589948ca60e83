package domain

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestValidateProduct(t *testing.T) {
	tests := []struct {
		name        string
		product     Product
		expectError bool
		errField    string
	}{
		{
			name: "valid product",
			product: Product{
				Name:     "Lipstick",
				Brand:    "Avon",
				Quantity: 5,
				Cost:     dec("5.00"),
				Country:  "USA",
			},
			expectError: false,
		},
		{
			name: "empty name",
			product: Product{
				Name:     "",
				Brand:    "Avon",
				Quantity: 1,
				Cost:     dec("1"),
			},
			expectError: true,
			errField:    "name",
		},
		{
			name: "empty brand",
			product: Product{
				Name:     "Lipstick",
				Brand:    "",
				Quantity: 1,
				Cost:     dec("1"),
			},
			expectError: true,
			errField:    "brand",
		},
		{
			name: "negative quantity",
			product: Product{
				Name:     "Lipstick",
				Brand:    "Avon",
				Quantity: -5,
				Cost:     dec("1"),
			},
			expectError: true,
			errField:    "quantity",
		},
		{
			name: "negative cost",
			product: Product{
				Name:     "Lipstick",
				Brand:    "Avon",
				Quantity: 1,
				Cost:     dec("-1"),
			},
			expectError: true,
			errField:    "cost",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProduct(tt.product)

			if tt.expectError {
				if err == nil {
					t.Fatalf("expected error, got nil")
				}

				iie, ok := err.(*InvalidInputError)
				if !ok {
					t.Fatalf("expected InvalidInputError, got %T", err)
				}

				if iie.Field != tt.errField {
					t.Fatalf(
						"expected error field %q, got %q",
						tt.errField,
						iie.Field,
					)
				}
			} else if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewProductDerivesSellingPrice(t *testing.T) {
	p, err := NewProduct("Shampoo", "Dove", "UK", 10, dec("5.00"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !p.SellingPrice.Equal(dec("10.00")) {
		t.Fatalf("expected selling price 10.00, got %s", p.SellingPrice)
	}
}

func TestSameIdentityCaseInsensitive(t *testing.T) {
	p := Product{Name: "Lipstick", Brand: "Avon"}
	if !p.SameIdentity("LIPSTICK", "avon") {
		t.Fatalf("expected case-insensitive identity match")
	}
	if p.SameIdentity("Lipstick", "Dove") {
		t.Fatalf("expected brand mismatch to fail")
	}
}

func TestCatalogPositionalAccess(t *testing.T) {
	a, _ := NewProduct("A", "B1", "X", 1, dec("1"))
	b, _ := NewProduct("B", "B2", "Y", 2, dec("2"))
	c := NewCatalog([]Product{a, b})

	if c.Len() != 2 {
		t.Fatalf("expected len 2, got %d", c.Len())
	}

	got, err := c.At(1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "A" {
		t.Fatalf("expected first product A, got %s", got.Name)
	}

	for _, id := range []int{0, -1, 3} {
		if _, err := c.At(id); !IsProductNotFoundError(err) {
			t.Fatalf("expected ProductNotFoundError for id %d, got %v", id, err)
		}
	}
}

func TestCatalogFindByIdentity(t *testing.T) {
	a, _ := NewProduct("Lipstick", "Avon", "USA", 1, dec("1"))
	c := NewCatalog([]Product{a})

	if id := c.FindByIdentity("lipstick", "AVON"); id != 1 {
		t.Fatalf("expected id 1, got %d", id)
	}
	if id := c.FindByIdentity("Lipstick", "Dove"); id != 0 {
		t.Fatalf("expected 0 for absent product, got %d", id)
	}
}

func TestCatalogReplaceValidates(t *testing.T) {
	a, _ := NewProduct("A", "B", "X", 5, dec("1"))
	c := NewCatalog([]Product{a})

	a.Quantity = -1
	if err := c.Replace(1, a); !IsInvalidInputError(err) {
		t.Fatalf("expected InvalidInputError for negative quantity, got %v", err)
	}

	got, _ := c.At(1)
	if got.Quantity != 5 {
		t.Fatalf("catalog mutated by rejected replace")
	}
}

func TestCartAccumulatesTotal(t *testing.T) {
	var cart Cart
	if !cart.Empty() {
		t.Fatalf("expected new cart to be empty")
	}

	cart.Add(SaleLine{Name: "A", Brand: "B", Quantity: 4, Free: 1, Price: dec("40.00")})
	cart.Add(SaleLine{Name: "C", Brand: "D", Quantity: 1, Free: 0, Price: dec("2.50")})

	if cart.Empty() {
		t.Fatalf("expected cart with lines")
	}
	if !cart.TotalAmount.Equal(dec("42.50")) {
		t.Fatalf("expected total 42.50, got %s", cart.TotalAmount)
	}
}

// ---- Interface compile-time test ----

// mockRepository ensures the CatalogRepository interface stays stable
type mockRepository struct{}

func (m *mockRepository) Load(ctx context.Context) (*Catalog, error) {
	return NewCatalog(nil), nil
}

func (m *mockRepository) Save(ctx context.Context, catalog *Catalog) error {
	return nil
}

// compile-time assertion
var _ CatalogRepository = (*mockRepository)(nil)

// mockEmitter ensures the DocumentEmitter interface stays stable
type mockEmitter struct{}

func (m *mockEmitter) EmitSaleInvoice(customerName string, cart *Cart) (string, error) {
	return "", nil
}

func (m *mockEmitter) EmitPurchaseReceipt(name, brand string, quantity int, cost decimal.Decimal) (string, error) {
	return "", nil
}

// compile-time assertion
var _ DocumentEmitter = (*mockEmitter)(nil)
