package docs

import (
	"strings"
	"testing"
	"time"

	"wecare/domain"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedTime = time.Date(2026, 8, 31, 14, 30, 5, 0, time.UTC)

func newTestEmitter(dir string) (*Emitter, afero.Fs) {
	fs := afero.NewMemMapFs()
	e := NewEmitter(fs, dir)
	e.now = func() time.Time { return fixedTime }
	return e, fs
}

func TestEmitSaleInvoice(t *testing.T) {
	e, fs := newTestEmitter("invoices")

	cart := &domain.Cart{}
	cart.Add(domain.SaleLine{
		Name:     "Lipstick",
		Brand:    "Avon",
		Quantity: 4,
		Free:     1,
		Price:    decimal.RequireFromString("40.00"),
	})
	cart.Add(domain.SaleLine{
		Name:     "Shampoo",
		Brand:    "Dove",
		Quantity: 2,
		Free:     0,
		Price:    decimal.RequireFromString("14.5"),
	})

	path, err := e.EmitSaleInvoice("Sita", cart)
	require.NoError(t, err)
	assert.Equal(t, "invoices/invoice_sale_20260831_143005.txt", path)

	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	content := string(b)

	assert.Contains(t, content, "=== WeCare Beauty Store ===")
	assert.Contains(t, content, "Date: 2026-08-31 14:30:05")
	assert.Contains(t, content, "Customer Name: Sita")
	assert.Contains(t, content, "4(+1)")
	// money always rendered at two places, trailing zeros included
	assert.Contains(t, content, "40.00")
	assert.Contains(t, content, "14.50")
	assert.Contains(t, content, "Total Amount: Rs. 54.50")
}

func TestEmitPurchaseReceipt(t *testing.T) {
	e, fs := newTestEmitter("invoices")

	path, err := e.EmitPurchaseReceipt("Shampoo", "Dove", 10, decimal.RequireFromString("8.00"))
	require.NoError(t, err)
	assert.Equal(t, "invoices/invoice_purchase_20260831_143005.txt", path)

	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	content := string(b)

	// total 80.00, VAT 13% = 10.40, grand total 90.40
	assert.Contains(t, content, "Product: Shampoo")
	assert.Contains(t, content, "Brand: Dove")
	assert.Contains(t, content, "Quantity: 10")
	assert.Contains(t, content, "Cost: Rs.8.00")
	assert.Contains(t, content, "Total: Rs.80.00")
	assert.Contains(t, content, "VAT (13%): Rs.10.40")
	assert.Contains(t, content, "Grand Total: Rs.90.40")
}

func TestEmitPurchaseReceipt_VATRounded(t *testing.T) {
	e, fs := newTestEmitter("")

	// total 3 x 3.33 = 9.99; VAT 1.2987 -> 1.30; grand 11.2887 -> 11.29
	path, err := e.EmitPurchaseReceipt("Soap", "Lux", 3, decimal.RequireFromString("3.33"))
	require.NoError(t, err)

	b, err := afero.ReadFile(fs, path)
	require.NoError(t, err)
	content := string(b)

	assert.Contains(t, content, "VAT (13%): Rs.1.30")
	assert.Contains(t, content, "Grand Total: Rs.11.29")
}

func TestEmitDocumentNumbersDiffer(t *testing.T) {
	e, fs := newTestEmitter("")

	cart := &domain.Cart{}
	cart.Add(domain.SaleLine{Name: "A", Brand: "B", Quantity: 1, Price: decimal.RequireFromString("1")})

	p1, err := e.EmitSaleInvoice("X", cart)
	require.NoError(t, err)
	p2, err := e.EmitPurchaseReceipt("A", "B", 1, decimal.RequireFromString("1"))
	require.NoError(t, err)

	docNo := func(path string) string {
		b, err := afero.ReadFile(fs, path)
		require.NoError(t, err)
		for _, line := range strings.Split(string(b), "\n") {
			if strings.HasPrefix(line, "Document No: ") {
				return line
			}
		}
		t.Fatalf("no document number in %s", path)
		return ""
	}

	assert.NotEqual(t, docNo(p1), docNo(p2))
}
