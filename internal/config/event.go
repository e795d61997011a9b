package config

import "github.com/shopspring/decimal"

type Event struct {
	// LowStockThresholdKg is the remaining stock below which a purchase
	// triggers a low stock warning.
	LowStockThresholdKg decimal.Decimal `env:"EVENT_LOW_STOCK_THRESHOLD_KG" envDefault:"5"`
}
