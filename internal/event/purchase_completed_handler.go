package event

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

const TopicPurchaseCompleted = "purchase.completed"

type PurchaseCompletedEvent struct {
	TransactionID  int64           `json:"transaction_id"`
	ProductID      int64           `json:"product_id"`
	QuantityKg     decimal.Decimal `json:"quantity_kg"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	Change         decimal.Decimal `json:"change"`
	RemainingStock decimal.Decimal `json:"remaining_stock"`
}

func (s *Service) handlePurchaseCompletedEvent(ctx context.Context, ev PurchaseCompletedEvent) error {
	logger := s.logger.With(
		slog.Int64("transaction_id", ev.TransactionID),
		slog.Int64("product_id", ev.ProductID),
		slog.String("remaining_stock", ev.RemainingStock.StringFixed(3)),
	)

	if ev.RemainingStock.LessThan(s.cfg.LowStockThresholdKg) {
		logger.WarnContext(ctx, "product stock running low",
			slog.String("threshold_kg", s.cfg.LowStockThresholdKg.String()),
		)
		return nil
	}

	logger.DebugContext(ctx, "handling purchase completed event")
	return nil
}
