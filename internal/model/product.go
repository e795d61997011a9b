package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/chicken-vending/pkg/optional"
)

const (
	// MoneyScale is the number of fractional digits kept for monetary values.
	MoneyScale int32 = 2
	// WeightScale is the number of fractional digits kept for kilograms (grams).
	WeightScale int32 = 3

	// MoneyPrecision and WeightPrecision are the total digits of the
	// NUMERIC(12, 2) and NUMERIC(12, 3) columns.
	MoneyPrecision  int32 = 12
	WeightPrecision int32 = 12

	MaxProductNameLength = 100
)

type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "ACTIVE"
	ProductStatusInactive ProductStatus = "INACTIVE"
	ProductStatusDeleted  ProductStatus = "DELETED"
)

func (s ProductStatus) Validate() error {
	switch s {
	case ProductStatusActive, ProductStatusInactive, ProductStatusDeleted:
		return nil
	default:
		return fmt.Errorf("invalid product status: %q", string(s))
	}
}

// productTransitions lists the allowed status changes. Soft delete is the only
// one for now.
var productTransitions = map[ProductStatus][]ProductStatus{
	ProductStatusActive: {ProductStatusInactive},
}

// CanTransitionTo reports whether a product may move from s to next.
func (s ProductStatus) CanTransitionTo(next ProductStatus) bool {
	for _, allowed := range productTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Product struct {
	ID         int64
	Name       string
	PricePerKg decimal.Decimal
	StockKg    decimal.Decimal
	Status     ProductStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ProductPatch describes a partial update. Absent fields are left unchanged.
type ProductPatch struct {
	Name       optional.Value[string]          `json:"product_name" validate:"omitempty,notblank,max=100"`
	PricePerKg optional.Value[decimal.Decimal] `json:"price_per_kg" validate:"omitempty,gt=0"`
	StockKg    optional.Value[decimal.Decimal] `json:"stock_kg" validate:"omitempty,gte=0"`
}

// IsEmpty reports whether the patch changes nothing.
func (p ProductPatch) IsEmpty() bool {
	return !p.Name.IsPresent() && !p.PricePerKg.IsPresent() && !p.StockKg.IsPresent()
}

// NullFields returns the json names of the fields that were explicitly set to null.
func (p ProductPatch) NullFields() []string {
	var fields []string
	if p.Name.IsNull() {
		fields = append(fields, "product_name")
	}
	if p.PricePerKg.IsNull() {
		fields = append(fields, "price_per_kg")
	}
	if p.StockKg.IsNull() {
		fields = append(fields, "stock_kg")
	}
	return fields
}

// Apply returns a copy of product with the present patch fields applied.
func (p ProductPatch) Apply(product Product) Product {
	if name, ok := p.Name.Get(); ok {
		product.Name = name
	}
	if price, ok := p.PricePerKg.Get(); ok {
		product.PricePerKg = price
	}
	if stock, ok := p.StockKg.Get(); ok {
		product.StockKg = stock
	}
	return product
}
