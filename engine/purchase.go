package engine

import (
	"wecare/domain"

	"github.com/shopspring/decimal"
)

// costScale is the decimal precision kept for the averaged unit cost.
const costScale = 2

// PurchaseProcessor applies new-product and restock mutations to a catalog.
type PurchaseProcessor struct {
	catalog *domain.Catalog
}

// NewPurchaseProcessor constructs a PurchaseProcessor over the given catalog.
func NewPurchaseProcessor(catalog *domain.Catalog) *PurchaseProcessor {
	return &PurchaseProcessor{catalog: catalog}
}

// AddNewProduct appends a product to the catalog. The (name, brand) pair
// is a case-insensitive identity: a match with an existing product is
// rejected and the caller should restock instead. Selling price is
// derived as cost x 2.
func (p *PurchaseProcessor) AddNewProduct(name, brand, country string, quantity int, cost decimal.Decimal) (domain.Product, error) {
	if quantity <= 0 {
		return domain.Product{}, domain.NewInvalidInputError("quantity", "must be positive", quantity)
	}
	if !cost.IsPositive() {
		return domain.Product{}, domain.NewInvalidInputError("cost", "must be positive", cost)
	}

	if id := p.catalog.FindByIdentity(name, brand); id != 0 {
		return domain.Product{}, domain.NewDuplicateProductError(name, brand)
	}

	product, err := domain.NewProduct(name, brand, country, quantity, cost)
	if err != nil {
		return domain.Product{}, err
	}
	p.catalog.Append(product)
	return product, nil
}

// Restock adds stock to the product at the given positional ID. The
// additional quantity is always added; when the incoming cost differs
// from the current one, the unit cost becomes the value-weighted average
// of old and new stock, rounded to two places, and the selling price is
// rederived from it.
func (p *PurchaseProcessor) Restock(productID, additionalQuantity int, newCost decimal.Decimal) (domain.Product, error) {
	if additionalQuantity <= 0 {
		return domain.Product{}, domain.NewInvalidInputError("quantity", "must be positive", additionalQuantity)
	}
	if !newCost.IsPositive() {
		return domain.Product{}, domain.NewInvalidInputError("cost", "must be positive", newCost)
	}

	product, err := p.catalog.At(productID)
	if err != nil {
		return domain.Product{}, err
	}

	if !newCost.Equal(product.Cost) {
		oldValue := product.Cost.Mul(decimal.NewFromInt(int64(product.Quantity)))
		newValue := newCost.Mul(decimal.NewFromInt(int64(additionalQuantity)))
		totalQty := decimal.NewFromInt(int64(product.Quantity + additionalQuantity))
		product.Cost = oldValue.Add(newValue).Div(totalQty).Round(costScale)
		product.RederivePrice()
	}
	product.Quantity += additionalQuantity

	if err := p.catalog.Replace(productID, product); err != nil {
		return domain.Product{}, err
	}
	return product, nil
}
