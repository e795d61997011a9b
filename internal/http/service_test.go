package http_test

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/chicken-vending/internal/apperr"
	"github.com/tuanvumaihuynh/chicken-vending/internal/config"
	apphttp "github.com/tuanvumaihuynh/chicken-vending/internal/http"
	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
	"github.com/tuanvumaihuynh/chicken-vending/internal/service"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/optional"
	"github.com/tuanvumaihuynh/chicken-vending/pkg/validator"
)

type testServer struct {
	handler        http.Handler
	healthChecker  *mockHealthChecker
	productSvc     *mockProductService
	purchaseSvc    *mockPurchaseService
	transactionSvc *mockTransactionService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	ts := &testServer{
		healthChecker:  &mockHealthChecker{},
		productSvc:     &mockProductService{},
		purchaseSvc:    &mockPurchaseService{},
		transactionSvc: &mockTransactionService{},
	}

	svc := apphttp.New(
		config.HTTP{Swagger: true, CorsOrigins: []string{"*"}},
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		validator.MustNewDefaultValidator(),
		ts.healthChecker,
		ts.productSvc,
		ts.purchaseSvc,
		ts.transactionSvc,
	)
	ts.handler = svc.Handler()

	t.Cleanup(func() {
		ts.healthChecker.AssertExpectations(t)
		ts.productSvc.AssertExpectations(t)
		ts.purchaseSvc.AssertExpectations(t)
		ts.transactionSvc.AssertExpectations(t)
	})

	return ts
}

func (ts *testServer) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	ts.handler.ServeHTTP(resp, req)
	return resp
}

var testTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func wholeChicken() model.Product {
	return model.Product{
		ID:         1,
		Name:       "Whole Chicken",
		PricePerKg: decimal.NewFromInt(160),
		StockKg:    decimal.NewFromInt(50),
		Status:     model.ProductStatusActive,
		CreatedAt:  testTime,
		UpdatedAt:  testTime,
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	resp := ts.do(http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `{"status":"ok"}`, resp.Body.String())
	assert.NotEmpty(t, resp.Header().Get("X-Correlation-ID"))
}

func TestReady(t *testing.T) {
	t.Run("Should be ready when the database answers", func(t *testing.T) {
		ts := newTestServer(t)
		ts.healthChecker.On("IsHealthy", mock.Anything).Return(true, nil).Once()

		resp := ts.do(http.MethodGet, "/health/ready", "")

		assert.Equal(t, http.StatusOK, resp.Code)
	})

	t.Run("Should return 503 when the database is down", func(t *testing.T) {
		ts := newTestServer(t)
		ts.healthChecker.On("IsHealthy", mock.Anything).Return(false, errors.New("connection refused")).Once()

		resp := ts.do(http.MethodGet, "/health/ready", "")

		assert.Equal(t, http.StatusServiceUnavailable, resp.Code)
		assert.JSONEq(t, `{"code":"DATABASE_UNAVAILABLE","detail":"database unavailable"}`, resp.Body.String())
	})
}

func TestListProducts(t *testing.T) {
	ts := newTestServer(t)
	ts.productSvc.On("ListProducts", mock.Anything).Return([]model.Product{wholeChicken()}, nil).Once()

	resp := ts.do(http.MethodGet, "/products", "")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.JSONEq(t, `[{"product_id":1,"name":"Whole Chicken","price_per_kg":160.00,"stock_kg":50.000}]`, resp.Body.String())
}

func TestCreateProduct(t *testing.T) {
	t.Run("Should create a product", func(t *testing.T) {
		ts := newTestServer(t)
		ts.productSvc.On("CreateProduct", mock.Anything, mock.MatchedBy(func(p service.CreateProductParams) bool {
			return p.Name == "Whole Chicken" &&
				p.PricePerKg.Equal(decimal.NewFromInt(160)) &&
				p.StockKg.Equal(decimal.NewFromInt(50))
		})).Return(wholeChicken(), nil).Once()

		resp := ts.do(http.MethodPost, "/products", `{"product_name":"Whole Chicken","price_per_kg":160,"stock_kg":50}`)

		assert.Equal(t, http.StatusCreated, resp.Code)
		assert.JSONEq(t, `{
			"product_id": 1,
			"name": "Whole Chicken",
			"price_per_kg": 160.00,
			"stock_kg": 50.000,
			"status": "ACTIVE",
			"created_at": "2024-05-01T10:00:00Z",
			"updated_at": "2024-05-01T10:00:00Z"
		}`, resp.Body.String())
	})

	t.Run("Should report missing fields", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.do(http.MethodPost, "/products", `{"product_name":"Whole Chicken"}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{
			"code": "VALIDATION_FAILED",
			"detail": "validation error",
			"errors": [
				{"field": "price_per_kg", "message": "field is required"},
				{"field": "stock_kg", "message": "field is required"}
			]
		}`, resp.Body.String())
	})

	t.Run("Should reject malformed json", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.do(http.MethodPost, "/products", `{"product_name":`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "invalid request body")
	})
}

func TestGetProduct(t *testing.T) {
	t.Run("Should get a product", func(t *testing.T) {
		ts := newTestServer(t)
		ts.productSvc.On("GetProduct", mock.Anything, int64(1)).Return(wholeChicken(), nil).Once()

		resp := ts.do(http.MethodGet, "/products/1", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"status":"ACTIVE"`)
	})

	t.Run("Should return 404", func(t *testing.T) {
		ts := newTestServer(t)
		ts.productSvc.On("GetProduct", mock.Anything, int64(9)).Return(model.Product{}, apperr.ProductNotFoundErr).Once()

		resp := ts.do(http.MethodGet, "/products/9", "")

		assert.Equal(t, http.StatusNotFound, resp.Code)
		assert.JSONEq(t, `{"code":"PRODUCT_NOT_FOUND","detail":"Product not found"}`, resp.Body.String())
	})

	t.Run("Should reject a non numeric id", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.do(http.MethodGet, "/products/abc", "")

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), "VALIDATION_FAILED")
	})
}

func TestUpdateProduct(t *testing.T) {
	t.Run("Should pass only the supplied fields", func(t *testing.T) {
		ts := newTestServer(t)

		updated := wholeChicken()
		updated.PricePerKg = decimal.NewFromInt(175)

		ts.productSvc.On("UpdateProduct", mock.Anything, int64(1), mock.MatchedBy(func(p model.ProductPatch) bool {
			price, ok := p.PricePerKg.Get()
			return ok && price.Equal(decimal.NewFromInt(175)) &&
				p.Name.IsZero() && p.StockKg.IsZero()
		})).Return(updated, nil).Once()

		resp := ts.do(http.MethodPut, "/products", `{"product_id":1,"price_per_kg":175}`)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"price_per_kg":175.00`)
		assert.Contains(t, resp.Body.String(), `"stock_kg":50.000`)
	})

	t.Run("Should forward explicit null to the service", func(t *testing.T) {
		ts := newTestServer(t)
		ts.productSvc.On("UpdateProduct", mock.Anything, int64(1), model.ProductPatch{
			StockKg: optional.Null[decimal.Decimal](),
		}).Return(model.Product{}, apperr.NewValidation("stock_kg must not be null")).Once()

		resp := ts.do(http.MethodPut, "/products", `{"product_id":1,"stock_kg":null}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.JSONEq(t, `{"code":"VALIDATION_FAILED","detail":"stock_kg must not be null"}`, resp.Body.String())
	})

	t.Run("Should require the product id", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.do(http.MethodPut, "/products", `{"price_per_kg":175}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), `"field":"product_id"`)
	})
}

func TestDeleteProduct(t *testing.T) {
	t.Run("Should delete a product", func(t *testing.T) {
		ts := newTestServer(t)
		ts.productSvc.On("DeleteProduct", mock.Anything, int64(1)).Return(wholeChicken(), nil).Once()

		resp := ts.do(http.MethodDelete, "/products/1", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{"message":"Product 'Whole Chicken' deleted successfully","product_id":1}`, resp.Body.String())
	})

	t.Run("Should return 404 on a second delete", func(t *testing.T) {
		ts := newTestServer(t)
		ts.productSvc.On("DeleteProduct", mock.Anything, int64(1)).Return(model.Product{}, apperr.ProductNotFoundErr).Once()

		resp := ts.do(http.MethodDelete, "/products/1", "")

		assert.Equal(t, http.StatusNotFound, resp.Code)
	})
}

func TestBuyProduct(t *testing.T) {
	t.Run("Should return a receipt", func(t *testing.T) {
		ts := newTestServer(t)
		ts.purchaseSvc.On("Purchase", mock.Anything, mock.MatchedBy(func(p service.PurchaseParams) bool {
			return p.ProductID == 1 &&
				p.QuantityKg.Equal(decimal.NewFromInt(2)) &&
				p.MoneyInserted.Equal(decimal.NewFromInt(400))
		})).Return(model.Receipt{
			TransactionID:  7,
			ProductID:      1,
			ProductName:    "Whole Chicken",
			QuantityKg:     decimal.NewFromInt(2),
			Message:        "Dispensed 2 kg of Whole Chicken",
			TotalCost:      decimal.NewFromInt(320),
			Change:         decimal.NewFromInt(80),
			RemainingStock: decimal.NewFromInt(48),
		}, nil).Once()

		resp := ts.do(http.MethodPost, "/buy", `{"product_id":1,"quantity_kg":2,"money_inserted":400}`)

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{
			"transaction_id": 7,
			"message": "Dispensed 2 kg of Whole Chicken",
			"total_cost": 320.00,
			"change": 80.00,
			"remaining_stock": 48.000
		}`, resp.Body.String())
	})

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{
			name:       "insufficient stock",
			err:        apperr.NewInsufficientStock(1, decimal.NewFromInt(50), decimal.NewFromInt(60)),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":"INSUFFICIENT_STOCK","detail":"Insufficient stock. Only 50 kg available"}`,
		},
		{
			name:       "insufficient payment",
			err:        apperr.NewInsufficientPayment(decimal.NewFromInt(320), decimal.NewFromInt(100)),
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":"INSUFFICIENT_PAYMENT","detail":"Not enough money. Total cost is 320.00"}`,
		},
		{
			name:       "product not found",
			err:        apperr.ProductNotFoundErr,
			wantStatus: http.StatusNotFound,
			wantBody:   `{"code":"PRODUCT_NOT_FOUND","detail":"Product not found"}`,
		},
		{
			name:       "invariant violation",
			err:        apperr.InternalInvariantViolationErr,
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"code":"INTERNAL_INVARIANT_VIOLATION","detail":"internal invariant violation"}`,
		},
	}

	for _, tt := range tests {
		t.Run("Should map "+tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.purchaseSvc.On("Purchase", mock.Anything, mock.Anything).Return(model.Receipt{}, tt.err).Once()

			resp := ts.do(http.MethodPost, "/buy", `{"product_id":1,"quantity_kg":60,"money_inserted":100}`)

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}

	t.Run("Should require every field", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.do(http.MethodPost, "/buy", `{"product_id":1}`)

		assert.Equal(t, http.StatusBadRequest, resp.Code)
		assert.Contains(t, resp.Body.String(), `"field":"quantity_kg"`)
		assert.Contains(t, resp.Body.String(), `"field":"money_inserted"`)
	})
}

func TestTransactions(t *testing.T) {
	tx := model.Transaction{
		ID:                  3,
		ProductID:           1,
		QuantityKg:          decimal.RequireFromString("1.5"),
		PriceAtPurchase:     decimal.NewFromInt(160),
		TotalCost:           decimal.NewFromInt(240),
		MoneyInserted:       decimal.NewFromInt(250),
		ChangeReturned:      decimal.NewFromInt(10),
		Status:              model.TransactionStatusSuccess,
		TransactionDatetime: testTime,
	}

	t.Run("Should get a transaction", func(t *testing.T) {
		ts := newTestServer(t)
		ts.transactionSvc.On("GetTransaction", mock.Anything, int64(3)).Return(tx, nil).Once()

		resp := ts.do(http.MethodGet, "/transactions/3", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `{
			"transaction_id": 3,
			"product_id": 1,
			"quantity_kg": 1.500,
			"price_at_purchase": 160.00,
			"total_cost": 240.00,
			"money_inserted": 250.00,
			"change_returned": 10.00,
			"status": "SUCCESS",
			"transaction_datetime": "2024-05-01T10:00:00Z"
		}`, resp.Body.String())
	})

	t.Run("Should list with filters", func(t *testing.T) {
		ts := newTestServer(t)
		ts.transactionSvc.On("ListTransactions", mock.Anything, mock.MatchedBy(func(p service.ListTransactionsParams) bool {
			return p.ProductID != nil && *p.ProductID == 1 && p.Limit == 10
		})).Return([]model.Transaction{tx}, nil).Once()

		resp := ts.do(http.MethodGet, "/transactions?product_id=1&limit=10", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.Contains(t, resp.Body.String(), `"transaction_id":3`)
	})

	t.Run("Should list without filters", func(t *testing.T) {
		ts := newTestServer(t)
		ts.transactionSvc.On("ListTransactions", mock.Anything, service.ListTransactionsParams{}).
			Return([]model.Transaction{}, nil).Once()

		resp := ts.do(http.MethodGet, "/transactions", "")

		assert.Equal(t, http.StatusOK, resp.Code)
		assert.JSONEq(t, `[]`, resp.Body.String())
	})

	t.Run("Should reject a bad limit", func(t *testing.T) {
		ts := newTestServer(t)

		resp := ts.do(http.MethodGet, "/transactions?limit=abc", "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)

		resp = ts.do(http.MethodGet, "/transactions?limit=0", "")
		assert.Equal(t, http.StatusBadRequest, resp.Code)
	})
}

func TestCalculate(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "add",
			body:       `{"operation":"add","operands":[1,2,3]}`,
			wantStatus: http.StatusOK,
			wantBody:   `{"operation":"add","operands":[1,2,3],"result":6}`,
		},
		{
			name:       "divide by zero",
			body:       `{"operation":"divide","operands":[10,0,5]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":"DIVISION_BY_ZERO","detail":"Division by zero"}`,
		},
		{
			name:       "negative sqrt",
			body:       `{"operation":"sqrt","operands":[-1,0,0]}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"code":"INVALID_ARGUMENT","detail":"Cannot take sqrt of negative number"}`,
		},
		{
			name:       "wrong operand count",
			body:       `{"operation":"add","operands":[1,2]}`,
			wantStatus: http.StatusBadRequest,
			wantBody: `{"code":"VALIDATION_FAILED","detail":"validation error",
				"errors":[{"field":"operands","message":"must contain exactly 3 items"}]}`,
		},
		{
			name:       "unknown operation",
			body:       `{"operation":"modulo","operands":[1,2,3]}`,
			wantStatus: http.StatusBadRequest,
			wantBody: `{"code":"VALIDATION_FAILED","detail":"validation error",
				"errors":[{"field":"operation","message":"invalid enum value: modulo"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			resp := ts.do(http.MethodPost, "/calculate", tt.body)

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}
}

func TestBinaryOperations(t *testing.T) {
	tests := []struct {
		target     string
		wantStatus int
		wantBody   string
	}{
		{"/add?a=1.5&b=2", http.StatusOK, `{"result":3.5}`},
		{"/subtract?a=1&b=2", http.StatusOK, `{"result":-1}`},
		{"/multiply?a=3&b=4", http.StatusOK, `{"result":12}`},
		{"/divide?a=9&b=3", http.StatusOK, `{"result":3}`},
		{"/divide?a=9&b=0", http.StatusBadRequest, `{"code":"DIVISION_BY_ZERO","detail":"Division by zero"}`},
		{"/add?a=1", http.StatusBadRequest, `{"code":"VALIDATION_FAILED","detail":"query parameter b is required"}`},
		{"/add?a=x&b=1", http.StatusBadRequest, `{"code":"VALIDATION_FAILED","detail":"invalid format for parameter a"}`},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			ts := newTestServer(t)

			resp := ts.do(http.MethodGet, tt.target, "")

			assert.Equal(t, tt.wantStatus, resp.Code)
			assert.JSONEq(t, tt.wantBody, resp.Body.String())
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newTestServer(t)
	ts.purchaseSvc.On("Purchase", mock.Anything, mock.Anything).Return(model.Receipt{}, apperr.ProductNotFoundErr).Once()

	ts.do(http.MethodPost, "/buy", `{"product_id":1,"quantity_kg":1,"money_inserted":1}`)

	resp := ts.do(http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `chicken_vending_purchases_total{outcome="not_found"} 1`)
	assert.Contains(t, resp.Body.String(), `chicken_vending_http_requests_total{method="POST",route="/buy",status="404"} 1`)
}
