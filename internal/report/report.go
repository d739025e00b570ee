// Package report computes derived views over a loaded ledger. All functions
// are pure: they take a slice of transactions and return aggregates, with no
// I/O and no side effects. An empty ledger yields zero summaries and empty
// breakdowns, never an error.
package report

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/nmantri/spendwise/internal/ledger"
)

// Summary holds the per-type totals of a ledger. Savings is earnings minus
// spends; investments are tracked separately and do not reduce savings.
type Summary struct {
	Earnings    decimal.Decimal `json:"earnings"`
	Spends      decimal.Decimal `json:"spends"`
	Investments decimal.Decimal `json:"investments"`
	Savings     decimal.Decimal `json:"savings"`
}

// Summarize sums amounts grouped by type. Types with no records contribute
// zero.
func Summarize(txs []ledger.Transaction) Summary {
	var s Summary
	for _, tx := range txs {
		switch tx.Type {
		case ledger.TypeEarning:
			s.Earnings = s.Earnings.Add(tx.Amount)
		case ledger.TypeSpend:
			s.Spends = s.Spends.Add(tx.Amount)
		case ledger.TypeInvestment:
			s.Investments = s.Investments.Add(tx.Amount)
		}
	}
	s.Savings = s.Earnings.Sub(s.Spends)
	return s
}

// RecentN returns the n transactions with the latest date, descending.
// Ties keep their original relative order. The input slice is not modified.
func RecentN(txs []ledger.Transaction, n int) []ledger.Transaction {
	sorted := make([]ledger.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n]
}

// ByMonth buckets amounts by calendar month (YYYY-MM), one sub-map per known
// type. Types with no records get an empty sub-map.
func ByMonth(txs []ledger.Transaction) map[ledger.Type]map[string]decimal.Decimal {
	out := make(map[ledger.Type]map[string]decimal.Decimal, len(ledger.AllTypes()))
	for _, t := range ledger.AllTypes() {
		out[t] = make(map[string]decimal.Decimal)
	}
	for _, tx := range txs {
		buckets, ok := out[tx.Type]
		if !ok {
			continue
		}
		key := tx.Date.MonthKey()
		buckets[key] = buckets[key].Add(tx.Amount)
	}
	return out
}

// SpendByCategory sums Spend amounts per category.
func SpendByCategory(txs []ledger.Transaction) map[string]decimal.Decimal {
	out := make(map[string]decimal.Decimal)
	for _, tx := range txs {
		if tx.Type != ledger.TypeSpend {
			continue
		}
		out[tx.Category] = out[tx.Category].Add(tx.Amount)
	}
	return out
}

// ByMonthAndType pivots the ledger into month bucket -> type -> sum. Every
// bucket present carries all known types, zero-filled where absent.
func ByMonthAndType(txs []ledger.Transaction) map[string]map[ledger.Type]decimal.Decimal {
	return pivot(txs, func(d ledger.Date) string { return d.MonthKey() })
}

// ByYearAndType pivots the ledger into year bucket -> type -> sum. Every
// bucket present carries all known types, zero-filled where absent.
func ByYearAndType(txs []ledger.Transaction) map[string]map[ledger.Type]decimal.Decimal {
	return pivot(txs, func(d ledger.Date) string { return d.YearKey() })
}

func pivot(txs []ledger.Transaction, bucket func(ledger.Date) string) map[string]map[ledger.Type]decimal.Decimal {
	out := make(map[string]map[ledger.Type]decimal.Decimal)
	for _, tx := range txs {
		if !tx.Type.IsValid() {
			continue
		}
		key := bucket(tx.Date)
		row, ok := out[key]
		if !ok {
			row = make(map[ledger.Type]decimal.Decimal, len(ledger.AllTypes()))
			for _, t := range ledger.AllTypes() {
				row[t] = decimal.Zero
			}
			out[key] = row
		}
		row[tx.Type] = row[tx.Type].Add(tx.Amount)
	}
	return out
}
