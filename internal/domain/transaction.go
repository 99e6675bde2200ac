// Package domain provides defenitions of all entities.
package domain

import (
	"errors"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAmount indicates an amount that is not a valid decimal number.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrNonPositiveAmount indicates a zero or negative amount.
	ErrNonPositiveAmount = errors.New("amount must be greater than zero")
	// ErrBackdatedPosting indicates a posting dated before the account's last posting.
	ErrBackdatedPosting = errors.New("posting date precedes last posting date")
)

// TransactionKind discriminates ledger movements.
type TransactionKind string

// Kinds of ledger movements.
const (
	KindDeposit    TransactionKind = "D"
	KindWithdrawal TransactionKind = "W"
	KindInterest   TransactionKind = "I"
)

// Transaction is an immutable record of one ledger movement together with the
// balance that resulted from it.
type Transaction struct {
	ID           string          `json:"id"`
	AccountID    string          `json:"account_id"`
	Date         civil.Date      `json:"date"`
	Kind         TransactionKind `json:"kind"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}
