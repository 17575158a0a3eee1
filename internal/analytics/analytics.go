// Package analytics derives metrics and grouped series from a ledger
// snapshot. Every function is pure: it reads the records it is given and
// never changes them.
package analytics

import (
	"slices"
	"time"

	"spendlog/internal/core"
)

// TotalSpent sums every record. An empty snapshot totals zero.
func TotalSpent(records []core.Record) core.Amount {
	var total core.Amount
	for _, r := range records {
		total = total.Add(r.Amount)
	}
	return total
}

// SpentToday sums the records whose calendar date equals today's. Dates are
// compared in today's location.
func SpentToday(records []core.Record, today time.Time) core.Amount {
	y, m, d := today.Date()
	var total core.Amount
	for _, r := range records {
		ry, rm, rd := r.Timestamp.In(today.Location()).Date()
		if ry == y && rm == m && rd == d {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// SpentByCategory sums the records of one category.
func SpentByCategory(records []core.Record, category core.Category) core.Amount {
	var total core.Amount
	for _, r := range records {
		if r.Category == category {
			total = total.Add(r.Amount)
		}
	}
	return total
}

// MonthlyTotals groups records by calendar month of their timestamp. The
// result has one entry per month, oldest first.
func MonthlyTotals(records []core.Record) []core.MonthTotal {
	sums := make(map[core.MonthKey]core.Amount)
	for _, r := range records {
		k := core.MonthOf(r.Timestamp)
		sums[k] = sums[k].Add(r.Amount)
	}

	out := make([]core.MonthTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, core.MonthTotal{Month: k, Amount: v})
	}
	slices.SortFunc(out, func(a, b core.MonthTotal) int {
		switch {
		case a.Month.Before(b.Month):
			return -1
		case b.Month.Before(a.Month):
			return 1
		}
		return 0
	})
	return out
}

// AveragePerMonth is the mean of MonthlyTotals, rounded to paise. With no
// months it is zero.
func AveragePerMonth(records []core.Record) core.Amount {
	months := MonthlyTotals(records)
	if len(months) == 0 {
		return core.Amount{}
	}
	var sum core.Amount
	for _, m := range months {
		sum = sum.Add(m.Amount)
	}
	return sum.DivInt(len(months))
}

// CategoryBreakdown sums records per category. Only categories present in
// the snapshot appear.
func CategoryBreakdown(records []core.Record) map[core.Category]core.Amount {
	out := make(map[core.Category]core.Amount)
	for _, r := range records {
		out[r.Category] = out[r.Category].Add(r.Amount)
	}
	return out
}

// GameItemBreakdown sums Gaming records per game item.
func GameItemBreakdown(records []core.Record) map[string]core.Amount {
	out := make(map[string]core.Amount)
	for _, r := range records {
		if r.Category != core.Gaming {
			continue
		}
		out[r.GameItem] = out[r.GameItem].Add(r.Amount)
	}
	return out
}
