package http

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/chicken-vending/internal/model"
)

// money and kg render decimals as JSON numbers with a fixed number of
// fractional digits, e.g. 320.00 and 48.000.
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(model.MoneyScale))
}

func kg(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(model.WeightScale))
}

type statusResponse struct {
	Status string `json:"status"`
}

type productListItem struct {
	ProductID  int64       `json:"product_id"`
	Name       string      `json:"name"`
	PricePerKg json.Number `json:"price_per_kg"`
	StockKg    json.Number `json:"stock_kg"`
}

type productResponse struct {
	productListItem
	Status    model.ProductStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

func newProductListItem(p model.Product) productListItem {
	return productListItem{
		ProductID:  p.ID,
		Name:       p.Name,
		PricePerKg: money(p.PricePerKg),
		StockKg:    kg(p.StockKg),
	}
}

func newProductResponse(p model.Product) productResponse {
	return productResponse{
		productListItem: newProductListItem(p),
		Status:          p.Status,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

type createProductRequest struct {
	ProductName *string          `json:"product_name" validate:"required"`
	PricePerKg  *decimal.Decimal `json:"price_per_kg" validate:"required"`
	StockKg     *decimal.Decimal `json:"stock_kg" validate:"required"`
}

type updateProductRequest struct {
	ProductID *int64 `json:"product_id" validate:"required,gt=0"`
	model.ProductPatch
}

type deleteProductResponse struct {
	Message   string `json:"message"`
	ProductID int64  `json:"product_id"`
}

type buyRequest struct {
	ProductID     *int64           `json:"product_id" validate:"required"`
	QuantityKg    *decimal.Decimal `json:"quantity_kg" validate:"required"`
	MoneyInserted *decimal.Decimal `json:"money_inserted" validate:"required"`
}

type buyResponse struct {
	TransactionID  int64       `json:"transaction_id"`
	Message        string      `json:"message"`
	TotalCost      json.Number `json:"total_cost"`
	Change         json.Number `json:"change"`
	RemainingStock json.Number `json:"remaining_stock"`
}

type transactionResponse struct {
	TransactionID       int64                   `json:"transaction_id"`
	ProductID           int64                   `json:"product_id"`
	QuantityKg          json.Number             `json:"quantity_kg"`
	PriceAtPurchase     json.Number             `json:"price_at_purchase"`
	TotalCost           json.Number             `json:"total_cost"`
	MoneyInserted       json.Number             `json:"money_inserted"`
	ChangeReturned      json.Number             `json:"change_returned"`
	Status              model.TransactionStatus `json:"status"`
	TransactionDatetime time.Time               `json:"transaction_datetime"`
}

func newTransactionResponse(tx model.Transaction) transactionResponse {
	return transactionResponse{
		TransactionID:       tx.ID,
		ProductID:           tx.ProductID,
		QuantityKg:          kg(tx.QuantityKg),
		PriceAtPurchase:     money(tx.PriceAtPurchase),
		TotalCost:           money(tx.TotalCost),
		MoneyInserted:       money(tx.MoneyInserted),
		ChangeReturned:      money(tx.ChangeReturned),
		Status:              tx.Status,
		TransactionDatetime: tx.TransactionDatetime,
	}
}
