// Package interestruleservice manages business logic layer of interest rules.
package interestruleservice

import (
	"context"

	"cloud.google.com/go/civil"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/awesomegic/gic-bank/internal/domain"
)

// Repo provides data access layer interface needed by interest rule service layer.
type Repo interface {
	Upsert(ctx context.Context, rule domain.InterestRule) (domain.InterestRule, error)
	List(ctx context.Context) ([]domain.InterestRule, error)
}

// Service facilitates interest rule service layer logic.
type Service struct {
	repo Repo
}

// New returns interest rule service struct to manage rule bussines logic.
func New(r Repo) *Service {
	return &Service{repo: r}
}

// Upsert stores a rate change taking effect at the given date, replacing any
// rule already effective on that date, and returns the full timeline.
func (s *Service) Upsert(ctx context.Context, date civil.Date, ruleID, rate string) ([]domain.InterestRule, error) {
	l := zerolog.Ctx(ctx)

	ratePercent, err := decimal.NewFromString(rate)
	if err != nil {
		l.Info().Err(err).Send()
		return nil, domain.ErrInvalidRate
	}

	if ratePercent.LessThanOrEqual(decimal.Zero) || ratePercent.GreaterThanOrEqual(decimal.NewFromInt(100)) {
		return nil, domain.ErrInvalidRate
	}

	rule := domain.InterestRule{
		EffectiveDate: date,
		RuleID:        ruleID,
		RatePercent:   ratePercent,
	}

	if _, err := s.repo.Upsert(ctx, rule); err != nil {
		return nil, err
	}

	return s.repo.List(ctx)
}

// List returns all rules ascending by effective date.
func (s *Service) List(ctx context.Context) ([]domain.InterestRule, error) {
	return s.repo.List(ctx)
}
