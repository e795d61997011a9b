package repository

import (
	"context"
	"fmt"

	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db/sqlc"
)

type ListTransactionsParams struct {
	ProductID *int64
	Limit     int32
}

// TransactionRepository is the append-only ledger store.
type TransactionRepository interface {
	WithDB(db db.DB) TransactionRepository
	CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	GetTransaction(ctx context.Context, id int64) (model.Transaction, error)
	ListTransactions(ctx context.Context, params ListTransactionsParams) ([]model.Transaction, error)
}

type transactionRepository struct {
	db      db.DB
	queries *sqlc.Queries
}

func NewTransactionRepository(db db.DB, queries *sqlc.Queries) TransactionRepository {
	return &transactionRepository{
		db:      db,
		queries: queries,
	}
}

func (r transactionRepository) WithDB(db db.DB) TransactionRepository {
	return &transactionRepository{
		db:      db,
		queries: r.queries,
	}
}

func (r transactionRepository) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	row, err := r.queries.TransactionCreate(ctx, r.db, sqlc.TransactionCreateParams{
		ProductID:           tx.ProductID,
		QuantityKg:          tx.QuantityKg,
		PriceAtPurchase:     tx.PriceAtPurchase,
		TotalCost:           tx.TotalCost,
		MoneyInserted:       tx.MoneyInserted,
		ChangeReturned:      tx.ChangeReturned,
		Status:              string(tx.Status),
		TransactionDatetime: tx.TransactionDatetime,
	})
	if err != nil {
		return model.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}

	return sqlcTransactionToModelTransaction(row), nil
}

func (r transactionRepository) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	row, err := r.queries.TransactionGet(ctx, r.db, id)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("get transaction: %w", mapNoRows(err))
	}

	return sqlcTransactionToModelTransaction(row), nil
}

func (r transactionRepository) ListTransactions(ctx context.Context, params ListTransactionsParams) ([]model.Transaction, error) {
	rows, err := r.queries.TransactionList(ctx, r.db, sqlc.TransactionListParams{
		ProductID: params.ProductID,
		RowLimit:  params.Limit,
	})
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	txs := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		txs = append(txs, sqlcTransactionToModelTransaction(row))
	}

	return txs, nil
}

func sqlcTransactionToModelTransaction(tx sqlc.Transaction) model.Transaction {
	return model.Transaction{
		ID:                  tx.ID,
		ProductID:           tx.ProductID,
		QuantityKg:          tx.QuantityKg,
		PriceAtPurchase:     tx.PriceAtPurchase,
		TotalCost:           tx.TotalCost,
		MoneyInserted:       tx.MoneyInserted,
		ChangeReturned:      tx.ChangeReturned,
		Status:              model.TransactionStatus(tx.Status),
		TransactionDatetime: tx.TransactionDatetime,
	}
}
