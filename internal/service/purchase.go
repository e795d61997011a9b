package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
	"github.com/tuanvumaihuynh/chicken-vending/internal/event"
	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/repository"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/outbox"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/validator"
)

// stockConstraint is the CHECK constraint guarding products.stock_kg.
const stockConstraint = "products_stock_non_negative"

type PurchaseParams struct {
	ProductID     int64           `json:"product_id" validate:"gt=0"`
	QuantityKg    decimal.Decimal `json:"quantity_kg" validate:"gt=0"`
	MoneyInserted decimal.Decimal `json:"money_inserted" validate:"gte=0"`
}

type PurchaseService interface {
	// Purchase sells QuantityKg of a product. Stock, ledger and outbox are
	// written in one transaction; on any error nothing is written.
	Purchase(ctx context.Context, params PurchaseParams) (model.Receipt, error)
}

type purchaseService struct {
	db              db.DB
	logger          *slog.Logger
	validator       validator.Validator
	productRepo     repository.ProductRepository
	transactionRepo repository.TransactionRepository
	outboxMsgRepo   repository.OutboxMsgRepository
}

func NewPurchaseService(
	db db.DB,
	logger *slog.Logger,
	validator validator.Validator,
	productRepo repository.ProductRepository,
	transactionRepo repository.TransactionRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) PurchaseService {
	return &purchaseService{
		db:              db,
		logger:          logger.With(slog.String("service", "purchase")),
		validator:       validator,
		productRepo:     productRepo,
		transactionRepo: transactionRepo,
		outboxMsgRepo:   outboxMsgRepo,
	}
}

func (s *purchaseService) Purchase(ctx context.Context, params PurchaseParams) (model.Receipt, error) {
	if err := s.validator.Validate(params); err != nil {
		return model.Receipt{}, apperr.ValidationErr.WrapParent(err)
	}
	if err := checkWeight("quantity_kg", params.QuantityKg); err != nil {
		return model.Receipt{}, err
	}
	if err := checkMoney("money_inserted", params.MoneyInserted); err != nil {
		return model.Receipt{}, err
	}

	var receipt model.Receipt
	err := s.db.WithTx(ctx, func(db db.DB) error {
		var err error
		receipt, err = s.purchase(ctx, db, params)
		return err
	})
	if err != nil {
		if isStockViolation(err) {
			s.logger.ErrorContext(ctx, "stock constraint violated during purchase",
				slog.Int64("product_id", params.ProductID),
				slog.Any("error", err),
			)
			return model.Receipt{}, apperr.InternalInvariantViolationErr.WrapParent(err)
		}
		return model.Receipt{}, fmt.Errorf("db with tx: %w", err)
	}

	return receipt, nil
}

func (s *purchaseService) purchase(ctx context.Context, db db.DB, params PurchaseParams) (model.Receipt, error) {
	product, err := s.productRepo.
		WithDB(db).
		GetActiveProductForUpdate(ctx, params.ProductID)
	if err != nil {
		return model.Receipt{}, fmt.Errorf("product repository get active product for update: %w", mapProductErr(err))
	}

	if params.QuantityKg.GreaterThan(product.StockKg) {
		return model.Receipt{}, apperr.NewInsufficientStock(product.ID, product.StockKg, params.QuantityKg)
	}

	totalCost := TotalCost(product.PricePerKg, params.QuantityKg)
	if err := checkMoney("total_cost", totalCost); err != nil {
		return model.Receipt{}, err
	}
	if params.MoneyInserted.LessThan(totalCost) {
		return model.Receipt{}, apperr.NewInsufficientPayment(totalCost, params.MoneyInserted)
	}

	change := params.MoneyInserted.Sub(totalCost)
	remaining := product.StockKg.Sub(params.QuantityKg)
	if remaining.IsNegative() || change.IsNegative() {
		s.logger.ErrorContext(ctx, "purchase would break ledger invariants",
			slog.Int64("product_id", product.ID),
			slog.String("stock_kg", product.StockKg.String()),
			slog.String("quantity_kg", params.QuantityKg.String()),
			slog.String("change", change.String()),
		)
		return model.Receipt{}, apperr.InternalInvariantViolationErr.WithMsg(
			"purchase of product %d would leave negative stock or change", product.ID)
	}

	tx, err := s.transactionRepo.
		WithDB(db).
		CreateTransaction(ctx, model.Transaction{
			ProductID:           product.ID,
			QuantityKg:          params.QuantityKg,
			PriceAtPurchase:     product.PricePerKg,
			TotalCost:           totalCost,
			MoneyInserted:       params.MoneyInserted,
			ChangeReturned:      change,
			Status:              model.TransactionStatusSuccess,
			TransactionDatetime: time.Now().UTC(),
		})
	if err != nil {
		return model.Receipt{}, fmt.Errorf("transaction repository create transaction: %w", err)
	}

	if err := s.productRepo.
		WithDB(db).
		UpdateProductStock(ctx, repository.UpdateProductStockParams{
			ID:      product.ID,
			StockKg: remaining,
		}); err != nil {
		return model.Receipt{}, fmt.Errorf("product repository update product stock: %w", mapProductErr(err))
	}

	receipt := model.Receipt{
		TransactionID:  tx.ID,
		ProductID:      product.ID,
		ProductName:    product.Name,
		QuantityKg:     params.QuantityKg,
		Message:        model.DispenseMessage(params.QuantityKg, product.Name),
		TotalCost:      totalCost,
		Change:         change,
		RemainingStock: remaining,
	}

	evBytes, err := json.Marshal(event.PurchaseCompletedEvent{
		TransactionID:  receipt.TransactionID,
		ProductID:      receipt.ProductID,
		QuantityKg:     receipt.QuantityKg,
		TotalCost:      receipt.TotalCost,
		Change:         receipt.Change,
		RemainingStock: receipt.RemainingStock,
	})
	if err != nil {
		return model.Receipt{}, fmt.Errorf("marshal event: %w", err)
	}

	if err := s.outboxMsgRepo.
		WithDB(db).
		CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
			Topic:     event.TopicPurchaseCompleted,
			ProductID: product.ID,
			Headers:   outbox.BuildHeaders(ctx),
			Payload:   evBytes,
		}); err != nil {
		return model.Receipt{}, fmt.Errorf("outbox msg repository create outbox msg: %w", err)
	}

	return receipt, nil
}

// TotalCost returns price × quantity rounded half away from zero to whole
// cents.
func TotalCost(pricePerKg, quantityKg decimal.Decimal) decimal.Decimal {
	return pricePerKg.Mul(quantityKg).Round(model.MoneyScale)
}

func isStockViolation(err error) bool {
	return db.IsCheckViolation(err, stockConstraint)
}
