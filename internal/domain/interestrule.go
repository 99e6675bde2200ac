package domain

import (
	"errors"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidRate indicates a rate outside the open interval (0, 100).
	ErrInvalidRate = errors.New("rate must be greater than 0 and less than 100")
	// ErrNoApplicableRule indicates that no interest rule is in effect at the
	// requested date. Callers treat this as a zero rate, never as a failure.
	ErrNoApplicableRule = errors.New("no applicable interest rule")
)

// InterestRule is a point on the shared rate timeline: from EffectiveDate
// onward the given annual rate applies, until a later rule supersedes it.
// RuleID is an informational label with no semantics.
type InterestRule struct {
	EffectiveDate civil.Date      `json:"effective_date"`
	RuleID        string          `json:"rule_id"`
	RatePercent   decimal.Decimal `json:"rate_percent"`
}

// Statement is one account's activity for a single month together with the
// interest posted for it.
type Statement struct {
	AccountID    string        `json:"account_id"`
	Transactions []Transaction `json:"transactions"`
	Interest     Transaction   `json:"interest"`
}
