package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

// Only SUCCESS is written by the purchase flow; the others are reserved for
// refunds and reconciliation.
const (
	TransactionStatusSuccess  TransactionStatus = "SUCCESS"
	TransactionStatusFailed   TransactionStatus = "FAILED"
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusRefunded TransactionStatus = "REFUNDED"
)

func (s TransactionStatus) Validate() error {
	switch s {
	case TransactionStatusSuccess, TransactionStatusFailed, TransactionStatusPending, TransactionStatusRefunded:
		return nil
	default:
		return fmt.Errorf("invalid transaction status: %q", string(s))
	}
}

// Transaction is an immutable ledger entry for one sale.
type Transaction struct {
	ID                  int64
	ProductID           int64
	QuantityKg          decimal.Decimal
	PriceAtPurchase     decimal.Decimal
	TotalCost           decimal.Decimal
	MoneyInserted       decimal.Decimal
	ChangeReturned      decimal.Decimal
	Status              TransactionStatus
	TransactionDatetime time.Time
}

// Receipt is returned to the buyer after a successful purchase.
type Receipt struct {
	TransactionID  int64
	ProductID      int64
	ProductName    string
	QuantityKg     decimal.Decimal
	Message        string
	TotalCost      decimal.Decimal
	Change         decimal.Decimal
	RemainingStock decimal.Decimal
}

// DispenseMessage renders the human readable dispensing line of a receipt.
func DispenseMessage(quantityKg decimal.Decimal, productName string) string {
	return fmt.Sprintf("Dispensed %s kg of %s", quantityKg.String(), productName)
}
