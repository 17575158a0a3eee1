package analytics

import (
	"cmp"
	"slices"
	"time"

	"spendlog/internal/core"
)

// Summary bundles what the dashboard shows.
type Summary struct {
	Count           int
	Total           core.Amount
	Today           core.Amount
	Gaming          core.Amount
	AveragePerMonth core.Amount
	Monthly         []core.MonthTotal
	Categories      []core.CategoryAmount
	GameItems       []core.GameItemAmount
}

// HasGaming reports whether the Gaming series should be shown.
func (s Summary) HasGaming() bool { return len(s.GameItems) > 0 }

// Summarize computes the dashboard metrics and series for today.
func Summarize(records []core.Record, today time.Time) Summary {
	total := TotalSpent(records)
	return Summary{
		Count:           len(records),
		Total:           total,
		Today:           SpentToday(records, today),
		Gaming:          SpentByCategory(records, core.Gaming),
		AveragePerMonth: AveragePerMonth(records),
		Monthly:         MonthlyTotals(records),
		Categories:      RankCategories(CategoryBreakdown(records), total),
		GameItems:       RankGameItems(GameItemBreakdown(records)),
	}
}

// RankCategories orders a breakdown by amount, largest first, and fills in
// each share of total. Ties follow catalog order.
func RankCategories(breakdown map[core.Category]core.Amount, total core.Amount) []core.CategoryAmount {
	out := make([]core.CategoryAmount, 0, len(breakdown))
	for c, a := range breakdown {
		out = append(out, core.CategoryAmount{Category: c, Amount: a, Share: a.Share(total)})
	}
	slices.SortFunc(out, func(a, b core.CategoryAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(core.CategoryOrder(a.Category), core.CategoryOrder(b.Category))
	})
	return out
}

// RankGameItems orders a breakdown by amount, largest first, then by name.
func RankGameItems(breakdown map[string]core.Amount) []core.GameItemAmount {
	out := make([]core.GameItemAmount, 0, len(breakdown))
	for item, a := range breakdown {
		out = append(out, core.GameItemAmount{GameItem: item, Amount: a})
	}
	slices.SortFunc(out, func(a, b core.GameItemAmount) int {
		if c := b.Amount.Cmp(a.Amount); c != 0 {
			return c
		}
		return cmp.Compare(a.GameItem, b.GameItem)
	})
	return out
}
