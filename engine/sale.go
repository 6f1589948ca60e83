// Package engine implements the transaction processing core: the rules
// that turn a requested sale or purchase into a validated catalog mutation.
package engine

import (
	"strconv"

	"wecare/domain"

	"github.com/shopspring/decimal"
)

// freePerPaid is the promotion step: one free unit per three paid units.
const freePerPaid = 3

// FreeItems returns the promotional units granted for a paid quantity.
func FreeItems(quantity int) int {
	if quantity < 0 {
		return 0
	}
	return quantity / freePerPaid
}

// ValidateQuantity reports whether s is a positive base-10 integer.
// The CLI runs this before any value reaches the processors.
func ValidateQuantity(s string) bool {
	n, err := strconv.Atoi(s)
	return err == nil && n > 0
}

// SaleProcessor applies sale lines to a catalog.
type SaleProcessor struct {
	catalog *domain.Catalog
}

// NewSaleProcessor constructs a SaleProcessor over the given catalog.
func NewSaleProcessor(catalog *domain.Catalog) *SaleProcessor {
	return &SaleProcessor{catalog: catalog}
}

// ProcessSale validates and applies one sale line. Free units are not
// charged but leave stock together with the paid units; the line price
// is quantity x selling price observed now. On rejection the catalog is
// left unmutated. Persistence is the caller's responsibility, once per
// completed transaction.
func (s *SaleProcessor) ProcessSale(productID, quantity int) (domain.SaleLine, error) {
	if quantity <= 0 {
		return domain.SaleLine{}, domain.NewInvalidInputError("quantity", "must be positive", quantity)
	}

	product, err := s.catalog.At(productID)
	if err != nil {
		return domain.SaleLine{}, err
	}

	free := FreeItems(quantity)
	total := quantity + free
	if product.Quantity < total {
		return domain.SaleLine{}, domain.NewInsufficientStockError(
			product.Name, product.Brand, total, product.Quantity)
	}

	product.Quantity -= total
	if err := s.catalog.Replace(productID, product); err != nil {
		return domain.SaleLine{}, err
	}

	return domain.SaleLine{
		Name:     product.Name,
		Brand:    product.Brand,
		Quantity: quantity,
		Free:     free,
		Price:    product.SellingPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}
