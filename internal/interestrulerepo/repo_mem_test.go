package interestrulerepo

import (
	"context"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/awesomegic/gic-bank/internal/domain"
)

func rule(y int, m time.Month, d int, id string, rate string) domain.InterestRule {
	return domain.InterestRule{
		EffectiveDate: civil.Date{Year: y, Month: m, Day: d},
		RuleID:        id,
		RatePercent:   decimal.RequireFromString(rate),
	}
}

func TestUpsert(t *testing.T) {
	ctx := context.Background()
	repo := NewRepoMem()

	_, err := repo.Upsert(ctx, rule(2023, time.June, 15, "RULE02", "2.5"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, rule(2023, time.January, 1, "RULE01", "1.95"))
	require.NoError(t, err)

	rules, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 2)

	// Sorted ascending by effective date regardless of insertion order.
	require.Equal(t, "RULE01", rules[0].RuleID)
	require.Equal(t, "RULE02", rules[1].RuleID)

	t.Run("ReplacesSameDate", func(t *testing.T) {
		_, err := repo.Upsert(ctx, rule(2023, time.June, 15, "RULE03", "3.0"))
		require.NoError(t, err)

		rules, err := repo.List(ctx)
		require.NoError(t, err)
		require.Len(t, rules, 2)
		require.Equal(t, "RULE03", rules[1].RuleID)
		require.True(t, rules[1].RatePercent.Equal(decimal.RequireFromString("3.0")))
	})
}

func TestEffectiveAt(t *testing.T) {
	ctx := context.Background()
	repo := NewRepoMem()

	t.Run("EmptyTimeline", func(t *testing.T) {
		_, err := repo.EffectiveAt(ctx, civil.Date{Year: 2023, Month: time.June, Day: 1})
		require.ErrorIs(t, err, domain.ErrNoApplicableRule)
	})

	_, err := repo.Upsert(ctx, rule(2023, time.January, 1, "RULE01", "1.95"))
	require.NoError(t, err)
	_, err = repo.Upsert(ctx, rule(2023, time.June, 15, "RULE02", "2.5"))
	require.NoError(t, err)

	testCases := []struct {
		name     string
		date     civil.Date
		wantRule string
		wantErr  error
	}{
		{
			name:    "BeforeFirstRule",
			date:    civil.Date{Year: 2022, Month: time.December, Day: 31},
			wantErr: domain.ErrNoApplicableRule,
		},
		{
			name:     "OnEffectiveDate",
			date:     civil.Date{Year: 2023, Month: time.January, Day: 1},
			wantRule: "RULE01",
		},
		{
			name:     "BetweenRules",
			date:     civil.Date{Year: 2023, Month: time.June, Day: 14},
			wantRule: "RULE01",
		},
		{
			name:     "AfterLastRule",
			date:     civil.Date{Year: 2024, Month: time.March, Day: 1},
			wantRule: "RULE02",
		},
	}

	for _, tc := range testCases {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.EffectiveAt(ctx, tc.date)

			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
				return
			}

			require.NoError(t, err)
			require.Equal(t, tc.wantRule, got.RuleID)
		})
	}
}
