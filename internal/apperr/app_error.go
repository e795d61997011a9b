package apperr

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/chicken-vending/pkg/zerror"
)

const (
	ValidationErrorCode            = "VALIDATION_FAILED"
	ProductNotFoundCode            = "PRODUCT_NOT_FOUND"
	TransactionNotFoundCode        = "TRANSACTION_NOT_FOUND"
	InsufficientStockCode          = "INSUFFICIENT_STOCK"
	InsufficientPaymentCode        = "INSUFFICIENT_PAYMENT"
	InvalidStatusTransitionCode    = "INVALID_STATUS_TRANSITION"
	DivisionByZeroCode             = "DIVISION_BY_ZERO"
	InvalidArgumentCode            = "INVALID_ARGUMENT"
	NumericOverflowCode            = "NUMERIC_OVERFLOW"
	InternalInvariantViolationCode = "INTERNAL_INVARIANT_VIOLATION"
	DatabaseUnavailableCode        = "DATABASE_UNAVAILABLE"
)

var (
	ValidationErr          = zerror.NewValidationFailed(ValidationErrorCode, "validation error")
	ProductNotFoundErr     = zerror.NewNotFound(ProductNotFoundCode, "Product not found")
	TransactionNotFoundErr = zerror.NewNotFound(TransactionNotFoundCode, "Transaction not found")

	InsufficientStockErr       = zerror.NewBadRequest(InsufficientStockCode, "Insufficient stock")
	InsufficientPaymentErr     = zerror.NewBadRequest(InsufficientPaymentCode, "Not enough money")
	InvalidStatusTransitionErr = zerror.NewConflict(InvalidStatusTransitionCode, "invalid status transition")

	DivisionByZeroErr  = zerror.NewBadRequest(DivisionByZeroCode, "Division by zero")
	InvalidArgumentErr = zerror.NewBadRequest(InvalidArgumentCode, "Cannot take sqrt of negative number")
	NumericOverflowErr = zerror.NewBadRequest(NumericOverflowCode, "Numeric overflow")

	// InternalInvariantViolationErr means a guarded invariant broke anyway,
	// which points at a concurrency bug. It is never a client error.
	InternalInvariantViolationErr = zerror.NewInternalServerError(InternalInvariantViolationCode, "internal invariant violation")

	DatabaseUnavailableErr = zerror.NewServiceUnavailable(DatabaseUnavailableCode, "database unavailable")
)

// InsufficientStockError carries the quantity that was available when a
// purchase was rejected.
type InsufficientStockError struct {
	ProductID int64
	Available decimal.Decimal
	Requested decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: available %s kg, requested %s kg",
		e.ProductID, e.Available, e.Requested)
}

// NewInsufficientStock returns an InsufficientStockErr wrapping the details.
func NewInsufficientStock(productID int64, available, requested decimal.Decimal) zerror.ZError {
	return InsufficientStockErr.
		WithMsg("Insufficient stock. Only %s kg available", available.String()).
		WrapParent(&InsufficientStockError{ProductID: productID, Available: available, Requested: requested})
}

// InsufficientPaymentError carries the total cost a buyer failed to cover.
type InsufficientPaymentError struct {
	Required decimal.Decimal
	Inserted decimal.Decimal
}

func (e *InsufficientPaymentError) Error() string {
	return fmt.Sprintf("insufficient payment: required %s, inserted %s", e.Required, e.Inserted)
}

// NewInsufficientPayment returns an InsufficientPaymentErr wrapping the details.
func NewInsufficientPayment(required, inserted decimal.Decimal) zerror.ZError {
	return InsufficientPaymentErr.
		WithMsg("Not enough money. Total cost is %s", required.StringFixed(2)).
		WrapParent(&InsufficientPaymentError{Required: required, Inserted: inserted})
}

// NewValidation returns a ValidationErr with a specific message.
func NewValidation(format string, args ...any) zerror.ZError {
	return ValidationErr.WithMsg(format, args...)
}
