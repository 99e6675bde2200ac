// Package statementservice computes monthly interest and assembles account
// statements.
//
// Interest is simple daily interest over a piecewise-constant balance and a
// piecewise-constant rate: the month is cut into balance segments at every
// transaction date, each segment is cut again at every interest rule taking
// effect inside it, and every resulting sub-segment contributes
// balance * rate/100 * days. The sum is normalized by the day count of the
// statement year.
package statementservice

import (
	"context"
	"time"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/awesomegic/gic-bank/internal/domain"
	"github.com/awesomegic/gic-bank/pkg/dates"
)

var hundred = decimal.NewFromInt(100)

// AccountRepo provides account access needed by the statement service layer.
type AccountRepo interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
}

// RuleRepo provides rate timeline access needed by the statement service layer.
type RuleRepo interface {
	List(ctx context.Context) ([]domain.InterestRule, error)
}

// Service facilitates statement service layer logic.
type Service struct {
	accounts AccountRepo
	rules    RuleRepo
}

// New returns statement service struct to manage statement bussines logic.
func New(ar AccountRepo, rr RuleRepo) *Service {
	return &Service{
		accounts: ar,
		rules:    rr,
	}
}

// segment is a span of days [start, end) over which the account balance is
// constant. The final segment of a month ends on the day after the month's
// last day, so the whole month is covered exactly once.
type segment struct {
	start   civil.Date
	end     civil.Date
	balance decimal.Decimal
}

// AccrueInterest computes the interest earned by the account over the given
// calendar month. The year is part of the request: day counts and the
// days-in-year normalization follow the statement year, not the clock.
//
// An unknown account is the only failure. A month without transactions
// accrues on the balance carried into it, and days not covered by any
// interest rule contribute zero.
func (s *Service) AccrueInterest(ctx context.Context, accountID string, year int, month time.Month) (decimal.Decimal, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return decimal.Decimal{}, err
	}

	rules, err := s.rules.List(ctx)
	if err != nil {
		return decimal.Decimal{}, err
	}

	monthStart := dates.FirstDayOfMonth(year, month)
	monthEndExcl := dates.LastDayOfMonth(year, month).AddDays(1)

	var monthly []domain.Transaction

	for _, txn := range account.TransactionsInMonth(year, month) {
		if txn.Kind != domain.KindInterest {
			monthly = append(monthly, txn)
		}
	}

	opening := account.BalanceBefore(monthStart)

	var segments []segment

	if len(monthly) == 0 {
		segments = []segment{{start: monthStart, end: monthEndExcl, balance: opening}}
	} else {
		segments = append(segments, segment{start: monthStart, end: monthly[0].Date, balance: opening})

		for i, txn := range monthly {
			end := monthEndExcl
			if i+1 < len(monthly) {
				end = monthly[i+1].Date
			}

			segments = append(segments, segment{start: txn.Date, end: end, balance: txn.BalanceAfter})
		}
	}

	total := decimal.Zero
	for _, seg := range segments {
		total = total.Add(interestOver(seg, rules))
	}

	return total.Div(decimal.NewFromInt(int64(dates.DaysInYear(year)))), nil
}

// interestOver sums the annualized contributions of one balance segment,
// splitting it at every rule taking effect strictly inside the segment. Day
// counting is start-inclusive, end-exclusive; a zero-length segment (two
// postings on the same day) contributes nothing.
func interestOver(seg segment, rules []domain.InterestRule) decimal.Decimal {
	cuts := []civil.Date{seg.start}

	for _, rule := range rules {
		if rule.EffectiveDate.After(seg.start) && rule.EffectiveDate.Before(seg.end) {
			cuts = append(cuts, rule.EffectiveDate)
		}
	}

	cuts = append(cuts, seg.end)

	sum := decimal.Zero

	for i := 0; i+1 < len(cuts); i++ {
		days := cuts[i+1].DaysSince(cuts[i])
		if days <= 0 {
			continue
		}

		rate, ok := rateAt(rules, cuts[i])
		if !ok {
			// No rule in effect yet; these days earn nothing.
			continue
		}

		sum = sum.Add(seg.balance.Mul(rate).Div(hundred).Mul(decimal.NewFromInt(int64(days))))
	}

	return sum
}

// rateAt returns the rate of the latest rule effective on or before the given
// date. Rules are sorted ascending by effective date.
func rateAt(rules []domain.InterestRule, date civil.Date) (decimal.Decimal, bool) {
	for i := len(rules) - 1; i >= 0; i-- {
		if !rules[i].EffectiveDate.After(date) {
			return rules[i].RatePercent, true
		}
	}

	return decimal.Decimal{}, false
}

// ApplyInterest accrues interest for the given month and posts it to the
// ledger as an interest transaction dated the month's last day. Applying the
// same month twice is idempotent: when the ledger already ends with that
// month's interest posting, the existing transaction is returned instead of a
// duplicate.
func (s *Service) ApplyInterest(ctx context.Context, accountID string, year int, month time.Month) (domain.Transaction, error) {
	l := zerolog.Ctx(ctx)

	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Transaction{}, err
	}

	monthEnd := dates.LastDayOfMonth(year, month)

	if last, ok := account.LastTransaction(); ok && last.Kind == domain.KindInterest && last.Date == monthEnd {
		return last, nil
	}

	interest, err := s.AccrueInterest(ctx, accountID, year, month)
	if err != nil {
		return domain.Transaction{}, err
	}

	txn, err := account.PostInterest(monthEnd, interest)
	if err != nil {
		l.Info().Err(err).Str("account_id", accountID).Msg("interest posting rejected")
		return domain.Transaction{}, err
	}

	return txn, nil
}

// Statement returns the account's deposits and withdrawals for the given
// month together with the interest transaction applied for it.
func (s *Service) Statement(ctx context.Context, accountID string, year int, month time.Month) (domain.Statement, error) {
	account, err := s.accounts.Get(ctx, accountID)
	if err != nil {
		return domain.Statement{}, err
	}

	var monthly []domain.Transaction

	for _, txn := range account.TransactionsInMonth(year, month) {
		if txn.Kind != domain.KindInterest {
			monthly = append(monthly, txn)
		}
	}

	interest, err := s.ApplyInterest(ctx, accountID, year, month)
	if err != nil {
		return domain.Statement{}, err
	}

	return domain.Statement{
		AccountID:    accountID,
		Transactions: monthly,
		Interest:     interest,
	}, nil
}
