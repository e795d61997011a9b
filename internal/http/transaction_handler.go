package http

import (
	"fmt"
	"net/http"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
	"github.com/tuanvumaihuynh/chicken-vending/internal/service"
)

func (s *Service) GetTransaction(w http.ResponseWriter, r *http.Request) error {
	var id int64
	if err := bindPathParam(r, "transaction_id", &id); err != nil {
		return err
	}

	tx, err := s.transactionSvc.GetTransaction(r.Context(), id)
	if err != nil {
		return fmt.Errorf("transaction service get transaction: %w", err)
	}

	return s.writeJSON(w, r, http.StatusOK, newTransactionResponse(tx))
}

func (s *Service) ListTransactions(w http.ResponseWriter, r *http.Request) error {
	var params service.ListTransactionsParams
	if err := bindQueryParam(r, "product_id", false, &params.ProductID); err != nil {
		return err
	}
	var limit *int32
	if err := bindQueryParam(r, "limit", false, &limit); err != nil {
		return err
	}
	if limit != nil {
		if *limit < 1 {
			return apperr.NewValidation("limit must be at least 1")
		}
		params.Limit = *limit
	}

	txs, err := s.transactionSvc.ListTransactions(r.Context(), params)
	if err != nil {
		return fmt.Errorf("transaction service list transactions: %w", err)
	}

	items := make([]transactionResponse, 0, len(txs))
	for _, tx := range txs {
		items = append(items, newTransactionResponse(tx))
	}

	return s.writeJSON(w, r, http.StatusOK, items)
}
