// Package domain defines core business types and interfaces.
package domain

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
)

// Product represents one inventory item. SellingPrice is derived as
// Cost x 2 whenever the product is created or restocked; it is stored,
// not recomputed lazily.
type Product struct {
	Name         string          `json:"name"`
	Brand        string          `json:"brand"`
	Quantity     int             `json:"quantity"`
	Cost         decimal.Decimal `json:"cost"`
	SellingPrice decimal.Decimal `json:"selling_price"`
	Country      string          `json:"country"`
}

// priceFactor is the fixed markup applied to acquisition cost.
var priceFactor = decimal.NewFromInt(2)

// NewProduct validates the fields and derives the selling price.
func NewProduct(name, brand, country string, quantity int, cost decimal.Decimal) (Product, error) {
	p := Product{
		Name:     name,
		Brand:    brand,
		Quantity: quantity,
		Cost:     cost,
		Country:  country,
	}
	if err := ValidateProduct(p); err != nil {
		return Product{}, err
	}
	p.SellingPrice = cost.Mul(priceFactor)
	return p, nil
}

// ValidateProduct checks the invariants every stored product must satisfy.
func ValidateProduct(p Product) error {
	if p.Name == "" {
		return NewInvalidInputError("name", "cannot be empty", p.Name)
	}
	if p.Brand == "" {
		return NewInvalidInputError("brand", "cannot be empty", p.Brand)
	}
	if p.Quantity < 0 {
		return NewInvalidInputError("quantity", "must be non-negative", p.Quantity)
	}
	if p.Cost.IsNegative() {
		return NewInvalidInputError("cost", "must be non-negative", p.Cost)
	}
	return nil
}

// SameIdentity reports whether the product matches the given
// case-insensitive (name, brand) pair.
func (p Product) SameIdentity(name, brand string) bool {
	return strings.EqualFold(p.Name, name) && strings.EqualFold(p.Brand, brand)
}

// RederivePrice resets SellingPrice from the current cost.
func (p *Product) RederivePrice() {
	p.SellingPrice = p.Cost.Mul(priceFactor)
}

// SaleLine is the result of one successful sale action. Price is fixed
// at the moment of sale and never recomputed.
type SaleLine struct {
	Name     string          `json:"name"`
	Brand    string          `json:"brand"`
	Quantity int             `json:"quantity"`
	Free     int             `json:"free"`
	Price    decimal.Decimal `json:"price"`
}

// Cart accumulates the sale lines of a single transaction.
type Cart struct {
	Lines       []SaleLine
	TotalAmount decimal.Decimal
}

// Add appends a line and folds its price into the running total.
func (c *Cart) Add(line SaleLine) {
	c.Lines = append(c.Lines, line)
	c.TotalAmount = c.TotalAmount.Add(line.Price)
}

// Empty reports whether the cart holds no lines.
func (c *Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Catalog is the ordered in-memory collection of products. Operators
// address products by 1-based position in the sequence; positions are
// derived from order and are not stable across reloads.
type Catalog struct {
	products []Product
}

// NewCatalog builds a catalog over the given sequence, preserving order.
func NewCatalog(products []Product) *Catalog {
	return &Catalog{products: products}
}

// Len returns the number of products.
func (c *Catalog) Len() int {
	return len(c.products)
}

// At returns the product at the 1-based positional ID.
func (c *Catalog) At(id int) (Product, error) {
	if id < 1 || id > len(c.products) {
		return Product{}, NewProductNotFoundError(id)
	}
	return c.products[id-1], nil
}

// Replace overwrites the product at the 1-based positional ID.
func (c *Catalog) Replace(id int, p Product) error {
	if id < 1 || id > len(c.products) {
		return NewProductNotFoundError(id)
	}
	if err := ValidateProduct(p); err != nil {
		return err
	}
	c.products[id-1] = p
	return nil
}

// FindByIdentity returns the positional ID of the product matching the
// case-insensitive (name, brand) pair, or 0 if absent.
func (c *Catalog) FindByIdentity(name, brand string) int {
	for i, p := range c.products {
		if p.SameIdentity(name, brand) {
			return i + 1
		}
	}
	return 0
}

// Append adds a product at the end of the sequence.
func (c *Catalog) Append(p Product) {
	c.products = append(c.products, p)
}

// Products returns a copy of the ordered sequence.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// CatalogRepository loads and stores the whole catalog. Save rewrites
// the entire backing store from the in-memory sequence.
type CatalogRepository interface {
	Load(ctx context.Context) (*Catalog, error)
	Save(ctx context.Context, catalog *Catalog) error
}

// DocumentEmitter persists transaction documents. Both methods return
// the path of the written document; the core never consumes it.
type DocumentEmitter interface {
	EmitSaleInvoice(customerName string, cart *Cart) (string, error)
	EmitPurchaseReceipt(name, brand string, quantity int, cost decimal.Decimal) (string, error)
}
