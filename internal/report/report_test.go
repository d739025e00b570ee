package report_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nmantri/spendwise/internal/ledger"
	"github.com/nmantri/spendwise/internal/report"
)

func tx(id int, day string, txType ledger.Type, category, amount string) ledger.Transaction {
	d, err := ledger.ParseDate(day)
	if err != nil {
		panic(err)
	}
	return ledger.Transaction{
		ID:       id,
		Date:     d,
		Type:     txType,
		Category: category,
		Amount:   decimal.RequireFromString(amount),
	}
}

func sampleLedger() []ledger.Transaction {
	return []ledger.Transaction{
		tx(1, "2024-01-15", ledger.TypeSpend, "Food", "250.50"),
		tx(2, "2024-01-31", ledger.TypeEarning, "Income", "5000"),
		tx(3, "2024-02-02", ledger.TypeInvestment, "Miscellaneous", "1200"),
		tx(4, "2024-02-10", ledger.TypeSpend, "Travel", "99.95"),
		tx(5, "2023-12-25", ledger.TypeSpend, "Food", "49.05"),
		tx(6, "2024-02-10", ledger.TypeEarning, "Income", "150"),
	}
}

func TestSummarize(t *testing.T) {
	s := report.Summarize(sampleLedger())

	assert.True(t, s.Earnings.Equal(decimal.RequireFromString("5150")), "earnings = %s", s.Earnings)
	assert.True(t, s.Spends.Equal(decimal.RequireFromString("399.50")), "spends = %s", s.Spends)
	assert.True(t, s.Investments.Equal(decimal.RequireFromString("1200")), "investments = %s", s.Investments)
	assert.True(t, s.Savings.Equal(decimal.RequireFromString("4750.50")), "savings = %s", s.Savings)
}

func TestSummarize_SavingsIdentity(t *testing.T) {
	s := report.Summarize(sampleLedger())
	assert.True(t, s.Savings.Equal(s.Earnings.Sub(s.Spends)))
}

func TestSummarize_OrderInvariant(t *testing.T) {
	txs := sampleLedger()
	reversed := make([]ledger.Transaction, len(txs))
	for i, v := range txs {
		reversed[len(txs)-1-i] = v
	}

	a := report.Summarize(txs)
	b := report.Summarize(reversed)
	assert.True(t, a.Earnings.Equal(b.Earnings))
	assert.True(t, a.Spends.Equal(b.Spends))
	assert.True(t, a.Investments.Equal(b.Investments))
	assert.True(t, a.Savings.Equal(b.Savings))
}

func TestSummarize_Empty(t *testing.T) {
	s := report.Summarize(nil)
	assert.True(t, s.Earnings.IsZero())
	assert.True(t, s.Spends.IsZero())
	assert.True(t, s.Investments.IsZero())
	assert.True(t, s.Savings.IsZero())
}

func TestRecentN(t *testing.T) {
	latest := report.RecentN(sampleLedger(), 3)

	require.Len(t, latest, 3)
	// 2024-02-10 appears twice; the stable sort keeps file order (id 4
	// before id 6), then 2024-02-02.
	assert.Equal(t, 4, latest[0].ID)
	assert.Equal(t, 6, latest[1].ID)
	assert.Equal(t, 3, latest[2].ID)
}

func TestRecentN_Bounds(t *testing.T) {
	assert.Empty(t, report.RecentN(nil, 5))
	assert.Len(t, report.RecentN(sampleLedger(), 100), 6)
	assert.Empty(t, report.RecentN(sampleLedger(), 0))
}

func TestRecentN_DoesNotMutateInput(t *testing.T) {
	txs := sampleLedger()
	report.RecentN(txs, 2)
	assert.Equal(t, 1, txs[0].ID)
	assert.Equal(t, 5, txs[4].ID)
}

func TestByMonth(t *testing.T) {
	buckets := report.ByMonth(sampleLedger())

	// One sub-map per known type, even where empty.
	require.Len(t, buckets, 3)

	spends := buckets[ledger.TypeSpend]
	assert.True(t, spends["2024-01"].Equal(decimal.RequireFromString("250.50")))
	assert.True(t, spends["2024-02"].Equal(decimal.RequireFromString("99.95")))
	assert.True(t, spends["2023-12"].Equal(decimal.RequireFromString("49.05")))

	earnings := buckets[ledger.TypeEarning]
	assert.True(t, earnings["2024-01"].Equal(decimal.RequireFromString("5000")))
	assert.True(t, earnings["2024-02"].Equal(decimal.RequireFromString("150")))
}

func TestByMonth_CollapsesToSummary(t *testing.T) {
	txs := sampleLedger()
	buckets := report.ByMonth(txs)
	summary := report.Summarize(txs)

	totals := make(map[ledger.Type]decimal.Decimal)
	for txType, months := range buckets {
		for _, sum := range months {
			totals[txType] = totals[txType].Add(sum)
		}
	}

	assert.True(t, totals[ledger.TypeEarning].Equal(summary.Earnings))
	assert.True(t, totals[ledger.TypeSpend].Equal(summary.Spends))
	assert.True(t, totals[ledger.TypeInvestment].Equal(summary.Investments))
}

func TestSpendByCategory(t *testing.T) {
	byCategory := report.SpendByCategory(sampleLedger())

	require.Len(t, byCategory, 2)
	assert.True(t, byCategory["Food"].Equal(decimal.RequireFromString("299.55")))
	assert.True(t, byCategory["Travel"].Equal(decimal.RequireFromString("99.95")))
	// Earnings in the Income category must not appear.
	_, ok := byCategory["Income"]
	assert.False(t, ok)
}

func TestByMonthAndType_ZeroFilled(t *testing.T) {
	pivot := report.ByMonthAndType(sampleLedger())

	require.Contains(t, pivot, "2024-01")
	row := pivot["2024-01"]
	// Every known type is present in every bucket, zero where absent.
	require.Len(t, row, 3)
	assert.True(t, row[ledger.TypeInvestment].IsZero())
	assert.True(t, row[ledger.TypeSpend].Equal(decimal.RequireFromString("250.50")))
	assert.True(t, row[ledger.TypeEarning].Equal(decimal.RequireFromString("5000")))
}

func TestByYearAndType_CollapsesToSummary(t *testing.T) {
	txs := sampleLedger()
	pivot := report.ByYearAndType(txs)
	summary := report.Summarize(txs)

	require.Contains(t, pivot, "2023")
	require.Contains(t, pivot, "2024")

	totals := make(map[ledger.Type]decimal.Decimal)
	for _, row := range pivot {
		for txType, sum := range row {
			totals[txType] = totals[txType].Add(sum)
		}
	}
	assert.True(t, totals[ledger.TypeEarning].Equal(summary.Earnings))
	assert.True(t, totals[ledger.TypeSpend].Equal(summary.Spends))
	assert.True(t, totals[ledger.TypeInvestment].Equal(summary.Investments))
}

func TestPivots_Empty(t *testing.T) {
	assert.Empty(t, report.ByMonthAndType(nil))
	assert.Empty(t, report.ByYearAndType(nil))
	assert.Empty(t, report.SpendByCategory(nil))
}

func TestByMonth_IgnoresUnknownType(t *testing.T) {
	txs := []ledger.Transaction{
		{ID: 1, Date: ledger.NewDate(2024, time.March, 1), Type: "Bogus", Amount: decimal.New(10, 0)},
	}
	buckets := report.ByMonth(txs)
	for _, months := range buckets {
		assert.Empty(t, months)
	}
	assert.Empty(t, report.ByMonthAndType(txs))
}
