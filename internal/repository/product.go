package repository

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db"
	"github.com/tuanvumaihuynh/chicken-vending/internal/storage/db/sqlc"
)

type UpdateProductStockParams struct {
	ID      int64
	StockKg decimal.Decimal
}

type UpdateProductStatusParams struct {
	ID   int64
	From model.ProductStatus
	To   model.ProductStatus
}

// ProductRepository is the catalog store. Every read only sees ACTIVE products.
type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	CreateProduct(ctx context.Context, product model.Product) (model.Product, error)
	ListActiveProducts(ctx context.Context) ([]model.Product, error)
	GetActiveProduct(ctx context.Context, id int64) (model.Product, error)
	// GetActiveProductForUpdate locks the row until the surrounding transaction ends.
	GetActiveProductForUpdate(ctx context.Context, id int64) (model.Product, error)
	UpdateProduct(ctx context.Context, product model.Product) (model.Product, error)
	UpdateProductStock(ctx context.Context, params UpdateProductStockParams) error
	UpdateProductStatus(ctx context.Context, params UpdateProductStatusParams) error
}

type productRepository struct {
	db      db.DB
	queries *sqlc.Queries
}

func NewProductRepository(db db.DB, queries *sqlc.Queries) ProductRepository {
	return &productRepository{
		db:      db,
		queries: queries,
	}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{
		db:      db,
		queries: r.queries,
	}
}

func (r productRepository) CreateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	row, err := r.queries.ProductCreate(ctx, r.db, sqlc.ProductCreateParams{
		Name:       product.Name,
		PricePerKg: product.PricePerKg,
		StockKg:    product.StockKg,
		Status:     string(product.Status),
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("create product: %w", err)
	}

	return sqlcProductToModelProduct(row), nil
}

func (r productRepository) ListActiveProducts(ctx context.Context) ([]model.Product, error) {
	products, err := r.queries.ProductListActive(ctx, r.db)
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}

	modelProducts := make([]model.Product, 0, len(products))
	for _, product := range products {
		modelProducts = append(modelProducts, sqlcProductToModelProduct(product))
	}

	return modelProducts, nil
}

func (r productRepository) GetActiveProduct(ctx context.Context, id int64) (model.Product, error) {
	product, err := r.queries.ProductGetActive(ctx, r.db, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("get active product: %w", mapNoRows(err))
	}

	return sqlcProductToModelProduct(product), nil
}

func (r productRepository) GetActiveProductForUpdate(ctx context.Context, id int64) (model.Product, error) {
	product, err := r.queries.ProductGetActiveForUpdate(ctx, r.db, id)
	if err != nil {
		return model.Product{}, fmt.Errorf("get active product for update: %w", mapNoRows(err))
	}

	return sqlcProductToModelProduct(product), nil
}

func (r productRepository) UpdateProduct(ctx context.Context, product model.Product) (model.Product, error) {
	row, err := r.queries.ProductUpdate(ctx, r.db, sqlc.ProductUpdateParams{
		ID:         product.ID,
		Name:       product.Name,
		PricePerKg: product.PricePerKg,
		StockKg:    product.StockKg,
		UpdatedAt:  product.UpdatedAt,
	})
	if err != nil {
		return model.Product{}, fmt.Errorf("update product: %w", mapNoRows(err))
	}

	return sqlcProductToModelProduct(row), nil
}

func (r productRepository) UpdateProductStock(ctx context.Context, params UpdateProductStockParams) error {
	n, err := r.queries.ProductUpdateStock(ctx, r.db, sqlc.ProductUpdateStockParams{
		ID:        params.ID,
		StockKg:   params.StockKg,
		UpdatedAt: timeNow(),
	})
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update product stock: %w", ErrNotFound)
	}

	return nil
}

func (r productRepository) UpdateProductStatus(ctx context.Context, params UpdateProductStatusParams) error {
	n, err := r.queries.ProductUpdateStatus(ctx, r.db, sqlc.ProductUpdateStatusParams{
		ToStatus:   string(params.To),
		UpdatedAt:  timeNow(),
		ID:         params.ID,
		FromStatus: string(params.From),
	})
	if err != nil {
		return fmt.Errorf("update product status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("update product status: %w", ErrNotFound)
	}

	return nil
}

func sqlcProductToModelProduct(product sqlc.Product) model.Product {
	return model.Product{
		ID:         product.ID,
		Name:       product.Name,
		PricePerKg: product.PricePerKg,
		StockKg:    product.StockKg,
		Status:     model.ProductStatus(product.Status),
		CreatedAt:  product.CreatedAt,
		UpdatedAt:  product.UpdatedAt,
	}
}
