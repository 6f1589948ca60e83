// Package docs formats and persists transaction documents: sale invoices
// and purchase receipts.
package docs

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"wecare/domain"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
)

const (
	storeName = "WeCare Beauty Store"

	// timestamps: one for the filename, one for the document body
	fileStamp = "20060102_150405"
	bodyStamp = "2006-01-02 15:04:05"
)

// vatRate is the fixed 13% VAT applied to purchase receipts.
var vatRate = decimal.NewFromFloat(0.13)

// Emitter writes documents to a directory on the given filesystem.
type Emitter struct {
	fs  afero.Fs
	dir string
	now func() time.Time
}

// compile-time assertion
var _ domain.DocumentEmitter = (*Emitter)(nil)

// NewEmitter constructs an Emitter writing into dir.
func NewEmitter(fs afero.Fs, dir string) *Emitter {
	return &Emitter{fs: fs, dir: dir, now: time.Now}
}

// EmitSaleInvoice writes a timestamped invoice for a completed sale and
// returns its path.
func (e *Emitter) EmitSaleInvoice(customerName string, cart *domain.Cart) (string, error) {
	ts := e.now()

	var sb strings.Builder
	e.writeHeader(&sb, ts)
	fmt.Fprintf(&sb, "Customer Name: %s\n", customerName)
	sb.WriteString("\nPurchased Items:\n")
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	for _, line := range cart.Lines {
		fmt.Fprintf(&sb, "%-15s %-15s %d(+%d) \t%s\n",
			line.Name, line.Brand, line.Quantity, line.Free, line.Price.StringFixed(2))
	}
	sb.WriteString(strings.Repeat("-", 50) + "\n")
	fmt.Fprintf(&sb, "Total Amount: Rs. %s\n", cart.TotalAmount.StringFixed(2))

	return e.write("invoice_sale_"+ts.Format(fileStamp)+".txt", sb.String())
}

// EmitPurchaseReceipt writes a timestamped receipt for a purchase or
// restock and returns its path. VAT and grand total are rounded to two
// places.
func (e *Emitter) EmitPurchaseReceipt(name, brand string, quantity int, cost decimal.Decimal) (string, error) {
	ts := e.now()

	total := cost.Mul(decimal.NewFromInt(int64(quantity)))
	vat := total.Mul(vatRate)
	grandTotal := total.Add(vat)

	var sb strings.Builder
	e.writeHeader(&sb, ts)
	fmt.Fprintf(&sb, "Product: %s\n", name)
	fmt.Fprintf(&sb, "Brand: %s\n", brand)
	fmt.Fprintf(&sb, "Quantity: %d\n", quantity)
	fmt.Fprintf(&sb, "Cost: Rs.%s\n", cost.StringFixed(2))
	fmt.Fprintf(&sb, "Total: Rs.%s\n", total.StringFixed(2))
	fmt.Fprintf(&sb, "VAT (13%%): Rs.%s\n", vat.StringFixed(2))
	fmt.Fprintf(&sb, "Grand Total: Rs.%s\n", grandTotal.StringFixed(2))

	return e.write("invoice_purchase_"+ts.Format(fileStamp)+".txt", sb.String())
}

func (e *Emitter) writeHeader(sb *strings.Builder, ts time.Time) {
	fmt.Fprintf(sb, "=== %s ===\n", storeName)
	fmt.Fprintf(sb, "Document No: %s\n", uuid.NewString())
	fmt.Fprintf(sb, "Date: %s\n", ts.Format(bodyStamp))
}

func (e *Emitter) write(filename, content string) (string, error) {
	if e.dir != "" {
		if err := e.fs.MkdirAll(e.dir, 0o755); err != nil {
			return "", fmt.Errorf("emit document: %w", err)
		}
	}
	path := filepath.Join(e.dir, filename)
	if err := afero.WriteFile(e.fs, path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("emit document: %w", err)
	}
	return path, nil
}
