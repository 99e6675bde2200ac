package domain

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"

	"github.com/awesomegic/gic-bank/pkg/dates"
)

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountAlreadyExists indicates that the account is already registered.
	ErrAccountAlreadyExists = errors.New("account already exists")
	// ErrInsufficientBalance indicates that the account does not have sufficient balance.
	ErrInsufficientBalance = errors.New("insufficient balance")
	// ErrFirstTransactionWithdrawal indicates a withdrawal against an account
	// that has never received a deposit.
	ErrFirstTransactionWithdrawal = errors.New("first transaction for an account must not be a withdrawal")
)

// Account is the ledger for one account: an append-only, date-ordered
// transaction history plus the balance derived from it.
//
// All methods are safe for concurrent use; the mutex makes each account a
// single-writer ledger when the HTTP handlers and the accrual scheduler drive
// it at the same time.
type Account struct {
	AccountID string

	mu           sync.Mutex
	balance      decimal.Decimal
	transactions []Transaction
	lastPosted   civil.Date
	seqDate      civil.Date
	seq          int
}

// NewAccount returns an empty ledger for the given account ID.
func NewAccount(accountID string) *Account {
	return &Account{
		AccountID: accountID,
		balance:   decimal.Zero,
	}
}

// Balance returns the balance after the most recent transaction, or zero for
// an empty ledger.
func (a *Account) Balance() decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.balance
}

// Deposit appends a deposit transaction. The amount must be positive and the
// date must not precede the last posted date.
func (a *Account) Deposit(date civil.Date, amount decimal.Decimal) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrNonPositiveAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	return a.post(date, KindDeposit, amount)
}

// Withdraw appends a withdrawal transaction. The amount must be positive and
// covered by the current balance, and the date must not precede the last
// posted date.
func (a *Account) Withdraw(date civil.Date, amount decimal.Decimal) (Transaction, error) {
	if amount.LessThanOrEqual(decimal.Zero) {
		return Transaction{}, ErrNonPositiveAmount
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if amount.GreaterThan(a.balance) {
		return Transaction{}, ErrInsufficientBalance
	}

	return a.post(date, KindWithdrawal, amount)
}

// PostInterest appends an interest transaction. Unlike Deposit it accepts any
// amount: a zero or negative accrual is posted as computed, not clamped or
// rejected.
func (a *Account) PostInterest(date civil.Date, amount decimal.Decimal) (Transaction, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.post(date, KindInterest, amount)
}

// post appends a transaction of the given kind. Postings dated before the
// most recent posting are rejected with no state change; the ledger never
// rewrites history. Callers must hold a.mu.
func (a *Account) post(date civil.Date, kind TransactionKind, amount decimal.Decimal) (Transaction, error) {
	if len(a.transactions) > 0 && date.Before(a.lastPosted) {
		return Transaction{}, ErrBackdatedPosting
	}

	balance := a.balance
	if kind == KindWithdrawal {
		balance = balance.Sub(amount)
	} else {
		balance = balance.Add(amount)
	}

	// The per-day sequence restarts whenever the posting date moves on.
	if date != a.seqDate {
		a.seqDate = date
		a.seq = 0
	}
	a.seq++

	txn := Transaction{
		ID:           fmt.Sprintf("%s-%02d", dates.Format(date), a.seq),
		AccountID:    a.AccountID,
		Date:         date,
		Kind:         kind,
		Amount:       amount,
		BalanceAfter: balance,
	}

	a.balance = balance
	a.lastPosted = date
	a.transactions = append(a.transactions, txn)

	return txn, nil
}

// CanWithdraw reports whether the given amount is positive and covered by the
// current balance.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	a.mu.Lock()
	defer a.mu.Unlock()

	return amount.GreaterThan(decimal.Zero) && amount.LessThanOrEqual(a.balance)
}

// Transactions returns a copy of the full transaction history in posting order.
func (a *Account) Transactions() []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make([]Transaction, len(a.transactions))
	copy(out, a.transactions)

	return out
}

// TransactionsInMonth returns the transactions posted within the given
// calendar month, in posting order.
func (a *Account) TransactionsInMonth(year int, month time.Month) []Transaction {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []Transaction

	for _, txn := range a.transactions {
		if txn.Date.Year == year && txn.Date.Month == month {
			out = append(out, txn)
		}
	}

	return out
}

// LastTransaction returns the most recent transaction, if any.
func (a *Account) LastTransaction() (Transaction, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.transactions) == 0 {
		return Transaction{}, false
	}

	return a.transactions[len(a.transactions)-1], true
}

// BalanceBefore returns the balance carried into the given date: the
// resulting balance of the last transaction posted strictly before it, or
// zero if there is none.
func (a *Account) BalanceBefore(date civil.Date) decimal.Decimal {
	a.mu.Lock()
	defer a.mu.Unlock()

	balance := decimal.Zero

	for _, txn := range a.transactions {
		if !txn.Date.Before(date) {
			break
		}

		balance = txn.BalanceAfter
	}

	return balance
}
