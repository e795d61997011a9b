package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
	"github.com/tuanvumaihuynh/chicken-vending/internal/http/metric"
	"github.com/tuanvumaihuynh/chicken-vending/internal/service"
)

func (s *Service) BuyProduct(w http.ResponseWriter, r *http.Request) error {
	var req buyRequest
	if err := s.decodeBody(r, &req); err != nil {
		s.metrics.PurchasesTotal.WithLabelValues(metric.PurchaseOutcomeInvalid).Inc()
		return err
	}

	receipt, err := s.purchaseSvc.Purchase(r.Context(), service.PurchaseParams{
		ProductID:     *req.ProductID,
		QuantityKg:    *req.QuantityKg,
		MoneyInserted: *req.MoneyInserted,
	})
	s.metrics.PurchasesTotal.WithLabelValues(purchaseOutcome(err)).Inc()
	if err != nil {
		return fmt.Errorf("purchase service purchase: %w", err)
	}

	s.metrics.KilogramsSold.Add(receipt.QuantityKg.InexactFloat64())
	s.metrics.RevenueTotal.Add(receipt.TotalCost.InexactFloat64())

	return s.writeJSON(w, r, http.StatusOK, buyResponse{
		TransactionID:  receipt.TransactionID,
		Message:        receipt.Message,
		TotalCost:      money(receipt.TotalCost),
		Change:         money(receipt.Change),
		RemainingStock: kg(receipt.RemainingStock),
	})
}

func purchaseOutcome(err error) string {
	switch {
	case err == nil:
		return metric.PurchaseOutcomeSuccess
	case errors.Is(err, apperr.InsufficientStockErr):
		return metric.PurchaseOutcomeInsufficientStock
	case errors.Is(err, apperr.InsufficientPaymentErr):
		return metric.PurchaseOutcomeInsufficientPayment
	case errors.Is(err, apperr.ProductNotFoundErr):
		return metric.PurchaseOutcomeNotFound
	case errors.Is(err, apperr.ValidationErr):
		return metric.PurchaseOutcomeInvalid
	default:
		return metric.PurchaseOutcomeError
	}
}
