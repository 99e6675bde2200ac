package domain

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) civil.Date {
	return civil.Date{Year: y, Month: m, Day: d}
}

func TestDeposit(t *testing.T) {
	account := NewAccount("AC001")

	txn, err := account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(100))
	require.NoError(t, err)
	require.Equal(t, "20230601-01", txn.ID)
	require.Equal(t, KindDeposit, txn.Kind)
	require.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(100)))
	require.True(t, account.Balance().Equal(decimal.NewFromInt(100)))

	t.Run("NonPositiveAmount", func(t *testing.T) {
		_, err := account.Deposit(date(2023, time.June, 2), decimal.Zero)
		require.ErrorIs(t, err, ErrNonPositiveAmount)

		_, err = account.Deposit(date(2023, time.June, 2), decimal.NewFromInt(-5))
		require.ErrorIs(t, err, ErrNonPositiveAmount)

		require.Len(t, account.Transactions(), 1)
	})

	t.Run("Backdated", func(t *testing.T) {
		_, err := account.Deposit(date(2023, time.May, 31), decimal.NewFromInt(10))
		require.ErrorIs(t, err, ErrBackdatedPosting)
		require.Len(t, account.Transactions(), 1)
		require.True(t, account.Balance().Equal(decimal.NewFromInt(100)))
	})
}

func TestWithdraw(t *testing.T) {
	account := NewAccount("AC001")

	_, err := account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(30))
	require.NoError(t, err)

	t.Run("InsufficientBalance", func(t *testing.T) {
		_, err := account.Withdraw(date(2023, time.June, 2), decimal.NewFromInt(50))
		require.ErrorIs(t, err, ErrInsufficientBalance)
		require.True(t, account.Balance().Equal(decimal.NewFromInt(30)))
		require.Len(t, account.Transactions(), 1)
	})

	t.Run("NonPositiveAmount", func(t *testing.T) {
		_, err := account.Withdraw(date(2023, time.June, 2), decimal.Zero)
		require.ErrorIs(t, err, ErrNonPositiveAmount)
	})

	t.Run("OK", func(t *testing.T) {
		txn, err := account.Withdraw(date(2023, time.June, 2), decimal.NewFromInt(10))
		require.NoError(t, err)
		require.Equal(t, KindWithdrawal, txn.Kind)
		require.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(20)))
	})

	t.Run("Backdated", func(t *testing.T) {
		_, err := account.Withdraw(date(2023, time.June, 1), decimal.NewFromInt(1))
		require.ErrorIs(t, err, ErrBackdatedPosting)
	})
}

func TestCanWithdraw(t *testing.T) {
	account := NewAccount("AC001")

	_, err := account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(30))
	require.NoError(t, err)

	require.True(t, account.CanWithdraw(decimal.NewFromInt(30)))
	require.True(t, account.CanWithdraw(decimal.NewFromInt(1)))
	require.False(t, account.CanWithdraw(decimal.NewFromInt(31)))
	require.False(t, account.CanWithdraw(decimal.Zero))
	require.False(t, account.CanWithdraw(decimal.NewFromInt(-1)))
}

func TestTransactionIDSequence(t *testing.T) {
	account := NewAccount("AC001")

	june1 := date(2023, time.June, 1)

	txn1, err := account.Deposit(june1, decimal.NewFromInt(100))
	require.NoError(t, err)

	txn2, err := account.Withdraw(june1, decimal.NewFromInt(20))
	require.NoError(t, err)

	txn3, err := account.Deposit(date(2023, time.June, 2), decimal.NewFromInt(5))
	require.NoError(t, err)

	require.Equal(t, "20230601-01", txn1.ID)
	require.Equal(t, "20230601-02", txn2.ID)

	// The per-day sequence resets on a new posting date.
	require.Equal(t, "20230602-01", txn3.ID)
}

func TestPostInterest(t *testing.T) {
	account := NewAccount("AC001")

	_, err := account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("ZeroAmountAccepted", func(t *testing.T) {
		txn, err := account.PostInterest(date(2023, time.June, 30), decimal.Zero)
		require.NoError(t, err)
		require.Equal(t, KindInterest, txn.Kind)
		require.True(t, txn.BalanceAfter.Equal(decimal.NewFromInt(100)))
	})

	t.Run("Backdated", func(t *testing.T) {
		_, err := account.PostInterest(date(2023, time.May, 31), decimal.NewFromInt(1))
		require.ErrorIs(t, err, ErrBackdatedPosting)
	})
}

// The resulting balance of every transaction equals the previous balance
// plus or minus its amount, depending on kind.
func TestBalanceInvariant(t *testing.T) {
	account := NewAccount("AC001")

	_, err := account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = account.Deposit(date(2023, time.June, 5), decimal.RequireFromString("49.95"))
	require.NoError(t, err)
	_, err = account.Withdraw(date(2023, time.June, 10), decimal.RequireFromString("20.50"))
	require.NoError(t, err)
	_, err = account.PostInterest(date(2023, time.June, 30), decimal.RequireFromString("0.39"))
	require.NoError(t, err)

	prev := decimal.Zero

	for _, txn := range account.Transactions() {
		want := prev.Add(txn.Amount)
		if txn.Kind == KindWithdrawal {
			want = prev.Sub(txn.Amount)
		}

		require.True(t, txn.BalanceAfter.Equal(want), "txn %s: balance %s, want %s", txn.ID, txn.BalanceAfter, want)
		prev = txn.BalanceAfter
	}

	require.True(t, account.Balance().Equal(prev))
}

func TestTransactionsInMonth(t *testing.T) {
	account := NewAccount("AC001")

	_, err := account.Deposit(date(2023, time.May, 20), decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(10))
	require.NoError(t, err)
	_, err = account.Withdraw(date(2023, time.June, 15), decimal.NewFromInt(5))
	require.NoError(t, err)
	_, err = account.Deposit(date(2023, time.July, 1), decimal.NewFromInt(1))
	require.NoError(t, err)

	june := account.TransactionsInMonth(2023, time.June)
	require.Len(t, june, 2)
	require.Equal(t, "20230601-01", june[0].ID)
	require.Equal(t, "20230615-01", june[1].ID)

	require.Empty(t, account.TransactionsInMonth(2022, time.June))
}

func TestBalanceBefore(t *testing.T) {
	account := NewAccount("AC001")

	require.True(t, account.BalanceBefore(date(2023, time.June, 1)).Equal(decimal.Zero))

	_, err := account.Deposit(date(2023, time.May, 20), decimal.NewFromInt(100))
	require.NoError(t, err)
	_, err = account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(50))
	require.NoError(t, err)

	require.True(t, account.BalanceBefore(date(2023, time.June, 1)).Equal(decimal.NewFromInt(100)))
	require.True(t, account.BalanceBefore(date(2023, time.May, 20)).Equal(decimal.Zero))
	require.True(t, account.BalanceBefore(date(2023, time.July, 1)).Equal(decimal.NewFromInt(150)))
}

func TestLastTransaction(t *testing.T) {
	account := NewAccount("AC001")

	_, ok := account.LastTransaction()
	require.False(t, ok)

	_, err := account.Deposit(date(2023, time.June, 1), decimal.NewFromInt(100))
	require.NoError(t, err)

	last, ok := account.LastTransaction()
	require.True(t, ok)
	require.Equal(t, "20230601-01", last.ID)
}
