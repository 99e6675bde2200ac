// Package interestrulerepo manages repository layer of interest rules.
package interestrulerepo

import (
	"context"
	"sort"
	"sync"

	"cloud.google.com/go/civil"

	"github.com/awesomegic/gic-bank/internal/domain"
)

// RepoMem is the in-memory rate timeline shared by all accounts: interest
// rules kept sorted by effective date, at most one rule per date.
type RepoMem struct {
	mu    sync.RWMutex
	rules []domain.InterestRule
}

// NewRepoMem returns an empty rate timeline.
func NewRepoMem() *RepoMem {
	return &RepoMem{}
}

// Upsert inserts the rule, replacing any existing rule with the same
// effective date, and returns the stored rule.
func (r *RepoMem) Upsert(ctx context.Context, rule domain.InterestRule) (domain.InterestRule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.rules {
		if r.rules[i].EffectiveDate == rule.EffectiveDate {
			r.rules[i] = rule
			return rule, nil
		}
	}

	r.rules = append(r.rules, rule)

	sort.Slice(r.rules, func(i, j int) bool {
		return r.rules[i].EffectiveDate.Before(r.rules[j].EffectiveDate)
	})

	return rule, nil
}

// List returns all rules ascending by effective date.
func (r *RepoMem) List(ctx context.Context) ([]domain.InterestRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.InterestRule, len(r.rules))
	copy(out, r.rules)

	return out, nil
}

// EffectiveAt returns the rule in effect at the given date: the latest rule
// whose effective date is on or before it. Returns ErrNoApplicableRule when
// no rule precedes the date.
func (r *RepoMem) EffectiveAt(ctx context.Context, date civil.Date) (domain.InterestRule, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := len(r.rules) - 1; i >= 0; i-- {
		if !r.rules[i].EffectiveDate.After(date) {
			return r.rules[i], nil
		}
	}

	return domain.InterestRule{}, domain.ErrNoApplicableRule
}
