package http_test

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/service"
)

type mockProductService struct {
	mock.Mock
}

func (m *mockProductService) CreateProduct(ctx context.Context, params service.CreateProductParams) (model.Product, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductService) ListProducts(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	return args.Get(0).([]model.Product), args.Error(1)
}

func (m *mockProductService) GetProduct(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductService) UpdateProduct(ctx context.Context, id int64, patch model.ProductPatch) (model.Product, error) {
	args := m.Called(ctx, id, patch)
	return args.Get(0).(model.Product), args.Error(1)
}

func (m *mockProductService) DeleteProduct(ctx context.Context, id int64) (model.Product, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Product), args.Error(1)
}

type mockPurchaseService struct {
	mock.Mock
}

func (m *mockPurchaseService) Purchase(ctx context.Context, params service.PurchaseParams) (model.Receipt, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Receipt), args.Error(1)
}

type mockTransactionService struct {
	mock.Mock
}

func (m *mockTransactionService) GetTransaction(ctx context.Context, id int64) (model.Transaction, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Transaction), args.Error(1)
}

func (m *mockTransactionService) ListTransactions(ctx context.Context, params service.ListTransactionsParams) ([]model.Transaction, error) {
	args := m.Called(ctx, params)
	return args.Get(0).([]model.Transaction), args.Error(1)
}

type mockHealthChecker struct {
	mock.Mock
}

func (m *mockHealthChecker) IsHealthy(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}
