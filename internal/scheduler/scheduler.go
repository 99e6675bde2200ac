// Package scheduler runs the periodic interest accrual job.
package scheduler

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/awesomegic/gic-bank/internal/domain"
)

// Accounts provides the account listing needed by the accrual job.
type Accounts interface {
	List(ctx context.Context) ([]*domain.Account, error)
}

// Statements provides the interest posting needed by the accrual job.
type Statements interface {
	ApplyInterest(ctx context.Context, accountID string, year int, month time.Month) (domain.Transaction, error)
}

// Scheduler posts the previous month's interest for every account on a cron
// schedule. Interest posting is idempotent, so overlapping runs and manual
// statement requests cannot double-post.
type Scheduler struct {
	cron       *cron.Cron
	logger     zerolog.Logger
	accounts   Accounts
	statements Statements
}

// New returns a stopped scheduler.
func New(logger zerolog.Logger, accounts Accounts, statements Statements) *Scheduler {
	return &Scheduler{
		cron:       cron.New(),
		logger:     logger,
		accounts:   accounts,
		statements: statements,
	}
}

// Start registers the accrual job with the given cron spec and starts the
// scheduler.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.run); err != nil {
		return err
	}

	s.cron.Start()

	return nil
}

// Stop stops the scheduler; the running job, if any, completes.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

func (s *Scheduler) run() {
	ctx := s.logger.WithContext(context.Background())
	year, month := previousMonth(time.Now())

	s.Run(ctx, year, month)
}

// Run applies interest for the given month to every registered account.
func (s *Scheduler) Run(ctx context.Context, year int, month time.Month) {
	l := zerolog.Ctx(ctx)

	accounts, err := s.accounts.List(ctx)
	if err != nil {
		l.Error().Err(err).Msg("accrual job: listing accounts")
		return
	}

	for _, account := range accounts {
		txn, err := s.statements.ApplyInterest(ctx, account.AccountID, year, month)
		if err != nil {
			l.Warn().Err(err).Str("account_id", account.AccountID).Msg("accrual job: interest not posted")
			continue
		}

		l.Info().
			Str("account_id", account.AccountID).
			Str("transaction_id", txn.ID).
			Str("amount", txn.Amount.String()).
			Msg("accrual job: interest posted")
	}
}

func previousMonth(now time.Time) (int, time.Month) {
	prev := now.AddDate(0, 0, -now.Day())
	return prev.Year(), prev.Month()
}
