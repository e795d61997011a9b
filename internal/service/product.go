package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
	"github.com/tuanvumaihuynh/chicken-vending/internal/event"
	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/repository"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/optional"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/outbox"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/validator"
)

type CreateProductParams struct {
	Name       string          `json:"product_name" validate:"required,notblank,max=100"`
	PricePerKg decimal.Decimal `json:"price_per_kg" validate:"gt=0"`
	StockKg    decimal.Decimal `json:"stock_kg" validate:"gte=0"`
}

type ProductService interface {
	CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error)
	ListProducts(ctx context.Context) ([]model.Product, error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
	UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error)
	// DeleteProduct soft deletes the product and returns it as it was before.
	DeleteProduct(ctx context.Context, id int64) (model.Product, error)
}

type productService struct {
	db            db.DB
	validator     validator.Validator
	productRepo   repository.ProductRepository
	outboxMsgRepo repository.OutboxMsgRepository
}

func NewProductService(
	db db.DB,
	validator validator.Validator,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
) ProductService {
	return &productService{
		db:            db,
		validator:     validator,
		productRepo:   productRepo,
		outboxMsgRepo: outboxMsgRepo,
	}
}

func (s *productService) CreateProduct(ctx context.Context, params CreateProductParams) (model.Product, error) {
	params.Name = strings.TrimSpace(params.Name)
	if err := s.validator.Validate(params); err != nil {
		return model.Product{}, apperr.ValidationErr.WrapParent(err)
	}
	if err := checkMoney("price_per_kg", params.PricePerKg); err != nil {
		return model.Product{}, err
	}
	if err := checkWeight("stock_kg", params.StockKg); err != nil {
		return model.Product{}, err
	}

	now := time.Now().UTC()
	product := model.Product{
		Name:       params.Name,
		PricePerKg: params.PricePerKg,
		StockKg:    params.StockKg,
		Status:     model.ProductStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.db.WithTx(ctx, func(db db.DB) error {
		created, err := s.productRepo.
			WithDB(db).
			CreateProduct(ctx, product)
		if err != nil {
			return fmt.Errorf("product repository create product: %w", err)
		}

		evBytes, err := json.Marshal(event.ProductCreatedEvent{
			ProductID:  created.ID,
			Name:       created.Name,
			PricePerKg: created.PricePerKg,
			StockKg:    created.StockKg,
		})
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:     event.TopicProductCreated,
				ProductID: created.ID,
				Headers:   outbox.BuildHeaders(ctx),
				Payload:   evBytes,
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		product = created
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return product, nil
}

func (s *productService) ListProducts(ctx context.Context) ([]model.Product, error) {
	products, err := s.productRepo.ListActiveProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list active products: %w", err)
	}

	return products, nil
}

func (s *productService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := s.productRepo.GetActiveProduct(ctx, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get active product: %w", mapProductErr(err))
	}

	return product, nil
}

func (s *productService) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error) {
	if nullFields := patch.NullFields(); len(nullFields) > 0 {
		return model.Product{}, apperr.NewValidation("%s must not be null", strings.Join(nullFields, ", "))
	}
	if name, ok := patch.Name.Get(); ok {
		patch.Name = optional.Of(strings.TrimSpace(name))
	}
	if err := s.validator.Validate(patch); err != nil {
		return model.Product{}, apperr.ValidationErr.WrapParent(err)
	}
	if price, ok := patch.PricePerKg.Get(); ok {
		if err := checkMoney("price_per_kg", price); err != nil {
			return model.Product{}, err
		}
	}
	if stock, ok := patch.StockKg.Get(); ok {
		if err := checkWeight("stock_kg", stock); err != nil {
			return model.Product{}, err
		}
	}

	if patch.IsEmpty() {
		return s.GetProduct(ctx, id)
	}

	var updated model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		current, err := productRepo.GetActiveProductForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository get active product for update: %w", mapProductErr(err))
		}

		next := patch.Apply(current)
		next.UpdatedAt = time.Now().UTC()

		updated, err = productRepo.UpdateProduct(ctx, next)
		if err != nil {
			return fmt.Errorf("product repository update product: %w", mapProductErr(err))
		}

		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, id int64) (model.Product, error) {
	var deleted model.Product
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		current, err := productRepo.GetActiveProductForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("product repository get active product for update: %w", mapProductErr(err))
		}

		if !current.Status.CanTransitionTo(model.ProductStatusInactive) {
			return apperr.InvalidStatusTransitionErr.WithMsg(
				"cannot move product from %s to %s", current.Status, model.ProductStatusInactive)
		}

		if err := productRepo.UpdateProductStatus(ctx, repository.UpdateProductStatusParams{
			ID:   id,
			From: current.Status,
			To:   model.ProductStatusInactive,
		}); err != nil {
			return fmt.Errorf("product repository update product status: %w", mapProductErr(err))
		}

		deleted = current
		return nil
	}); err != nil {
		return model.Product{}, fmt.Errorf("db with tx: %w", err)
	}

	return deleted, nil
}

func mapProductErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperr.ProductNotFoundErr.WrapParent(err)
	}
	return err
}
