package event

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

const TopicProductCreated = "product.created"

type ProductCreatedEvent struct {
	ProductID  int64           `json:"product_id"`
	Name       string          `json:"name"`
	PricePerKg decimal.Decimal `json:"price_per_kg"`
	StockKg    decimal.Decimal `json:"stock_kg"`
}

func (s *Service) handleProductCreatedEvent(ctx context.Context, ev ProductCreatedEvent) error {
	s.logger.InfoContext(ctx, "handling product created event",
		slog.Int64("product_id", ev.ProductID),
		slog.String("name", ev.Name),
		slog.String("price_per_kg", ev.PricePerKg.StringFixed(2)),
		slog.String("stock_kg", ev.StockKg.StringFixed(3)),
	)
	return nil
}
