package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/repository"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/validator"
)

const (
	DefaultTransactionListLimit = 50
	MaxTransactionListLimit     = 100
)

type ListTransactionsParams struct {
	ProductID *int64 `json:"product_id" validate:"omitempty,gt=0"`
	// Limit defaults to DefaultTransactionListLimit when zero.
	Limit int32 `json:"limit" validate:"gte=0,lte=100"`
}

type TransactionService interface {
	GetTransaction(ctx context.Context, id int64) (model.Transaction, error)
	// ListTransactions returns ledger entries newest first.
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]model.Transaction, error)
}

type transactionService struct {
	validator       validator.Validator
	transactionRepo repository.TransactionRepository
}

func NewTransactionService(
	validator validator.Validator,
	transactionRepo repository.TransactionRepository,
) TransactionService {
	return &transactionService{
		validator:       validator,
		transactionRepo: transactionRepo,
	}
}

func (s *transactionService) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	tx, err := s.transactionRepo.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			err = apperr.TransactionNotFoundErr.WrapParent(err)
		}
		return model.Transaction{}, fmt.Errorf("transaction repository get transaction: %w", err)
	}

	return tx, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, params ListTransactionsParams) ([]model.Transaction, error) {
	if err := s.validator.Validate(params); err != nil {
		return nil, apperr.ValidationErr.WrapParent(err)
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultTransactionListLimit
	}

	txs, err := s.transactionRepo.ListTransactions(ctx, repository.ListTransactionsParams{
		ProductID: params.ProductID,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("transaction repository list transactions: %w", err)
	}

	return txs, nil
}
