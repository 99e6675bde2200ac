// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"
	"errors"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/awesomegic/gic-bank/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetOrCreate(ctx context.Context, accountID string) (*domain.Account, error)
	List(ctx context.Context) ([]*domain.Account, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo Repo
}

// New returns account service struct to manage account bussines logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

func parseAmount(ctx context.Context, amount string) (decimal.Decimal, error) {
	l := zerolog.Ctx(ctx)

	amt, err := decimal.NewFromString(amount)
	if err != nil {
		l.Info().Err(err).Send()
		return decimal.Decimal{}, domain.ErrInvalidAmount
	}

	if amt.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, domain.ErrNonPositiveAmount
	}

	return amt, nil
}

// Deposit posts a deposit to the given account, registering the account on
// its first deposit. The amount is validated before the account is touched so
// that a rejected deposit never brings an account into existence.
func (s *Service) Deposit(ctx context.Context, accountID string, date civil.Date, amount string) (domain.Transaction, error) {
	amt, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	account, err := s.repo.GetOrCreate(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	return account.Deposit(date, amt)
}

// Withdraw posts a withdrawal to the given account. A withdrawal never
// registers an account: the first transaction must be a deposit.
func (s *Service) Withdraw(ctx context.Context, accountID string, date civil.Date, amount string) (domain.Transaction, error) {
	amt, err := parseAmount(ctx, amount)
	if err != nil {
		return domain.Transaction{}, err
	}

	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			return domain.Transaction{}, domain.ErrFirstTransactionWithdrawal
		}

		return domain.Transaction{}, err
	}

	return account.Withdraw(date, amt)
}

// Transactions returns the full transaction history of the given account in
// posting order.
func (s *Service) Transactions(ctx context.Context, accountID string) ([]domain.Transaction, error) {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return account.Transactions(), nil
}

// TransactionsInMonth returns the account's transactions for one calendar
// month in posting order.
func (s *Service) TransactionsInMonth(ctx context.Context, accountID string, year int, month time.Month) ([]domain.Transaction, error) {
	account, err := s.repo.Get(ctx, accountID)
	if err != nil {
		return nil, err
	}

	return account.TransactionsInMonth(year, month), nil
}
