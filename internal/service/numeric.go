package service

import (
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
)

var (
	// MaxMoney and MaxWeightKg are the largest values the money and weight
	// columns can store.
	MaxMoney    = maxNumeric(model.MoneyPrecision, model.MoneyScale)
	MaxWeightKg = maxNumeric(model.WeightPrecision, model.WeightScale)
)

// maxNumeric returns the largest value of a NUMERIC(precision, scale) column,
// e.g. 9999999999.99 for NUMERIC(12, 2).
func maxNumeric(precision, scale int32) decimal.Decimal {
	return decimal.New(1, precision-scale).Sub(decimal.New(1, -scale))
}

// checkNumeric rejects values postgres would round or refuse with a numeric
// overflow, so they fail as validation errors rather than at insert time.
func checkNumeric(field string, d decimal.Decimal, scale int32, limit decimal.Decimal) error {
	if !d.Equal(d.Truncate(scale)) {
		return apperr.NewValidation("%s must have at most %d decimal places", field, scale)
	}
	if d.Abs().GreaterThan(limit) {
		return apperr.NewValidation("%s must be at most %s", field, limit.StringFixed(scale))
	}
	return nil
}

func checkMoney(field string, d decimal.Decimal) error {
	return checkNumeric(field, d, model.MoneyScale, MaxMoney)
}

func checkWeight(field string, d decimal.Decimal) error {
	return checkNumeric(field, d, model.WeightScale, MaxWeightKg)
}
