package analytics

import (
	"testing"
	"time"

	"spendlog/internal/core"
)

func rec(id int, ts time.Time, cat core.Category, item string, amount float64) core.Record {
	return core.Record{
		ID:          id,
		Timestamp:   ts,
		Category:    cat,
		Product:     "p",
		GameItem:    item,
		PaymentMode: core.UPI,
		Amount:      core.AmountFromFloat(amount),
	}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 10, 0, 0, 0, time.UTC)
}

func amt(f float64) core.Amount { return core.AmountFromFloat(f) }

func TestEmptySnapshot(t *testing.T) {
	if !TotalSpent(nil).IsZero() {
		t.Fatalf("total of empty snapshot should be zero")
	}
	if !AveragePerMonth(nil).IsZero() {
		t.Fatalf("average of empty snapshot should be zero")
	}
	if len(MonthlyTotals(nil)) != 0 || len(CategoryBreakdown(nil)) != 0 || len(GameItemBreakdown(nil)) != 0 {
		t.Fatalf("expected empty series")
	}
	s := Summarize(nil, day(2025, 1, 1))
	if s.Count != 0 || !s.Total.IsZero() || s.HasGaming() {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestMonthlyTotalsAndAverage(t *testing.T) {
	records := []core.Record{
		rec(0, day(2025, 2, 3), core.Food, "", 100),
		rec(1, day(2025, 1, 5), core.Food, "", 120),
		rec(2, day(2025, 1, 28), core.Transport, "", 180),
	}

	months := MonthlyTotals(records)
	if len(months) != 2 {
		t.Fatalf("expected 2 months, got %d", len(months))
	}
	if months[0].Month.String() != "2025-01" || !months[0].Amount.Equal(amt(300)) {
		t.Fatalf("unexpected January total %+v", months[0])
	}
	if months[1].Month.String() != "2025-02" || !months[1].Amount.Equal(amt(100)) {
		t.Fatalf("unexpected February total %+v", months[1])
	}
	if avg := AveragePerMonth(records); !avg.Equal(amt(200)) {
		t.Fatalf("expected average 200, got %s", avg)
	}
}

func TestMonthsAcrossYearsAreDistinct(t *testing.T) {
	records := []core.Record{
		rec(0, day(2024, 3, 1), core.Food, "", 10),
		rec(1, day(2025, 3, 1), core.Food, "", 20),
		rec(2, day(2024, 12, 31), core.Food, "", 30),
	}
	months := MonthlyTotals(records)
	want := []string{"2024-03", "2024-12", "2025-03"}
	if len(months) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(months))
	}
	for i, m := range months {
		if m.Month.String() != want[i] {
			t.Fatalf("position %d: got %s want %s", i, m.Month, want[i])
		}
	}
	if avg := AveragePerMonth(records); !avg.Equal(amt(20)) {
		t.Fatalf("expected average 20, got %s", avg)
	}
}

func TestTotalEqualsSumOfRecords(t *testing.T) {
	var records []core.Record
	var want core.Amount
	for i := 0; i < 40; i++ {
		a := amt(float64(i) + 0.35)
		records = append(records, core.Record{ID: i, Timestamp: day(2025, time.Month(i%12+1), 1), Category: core.Food, Amount: a})
		want = want.Add(a)
	}
	if got := TotalSpent(records); !got.Equal(want) {
		t.Fatalf("total %s, want %s", got, want)
	}
}

func TestSpentToday(t *testing.T) {
	records := []core.Record{
		rec(0, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), core.Food, "", 10),
		rec(1, time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC), core.Food, "", 15),
		rec(2, time.Date(2025, 3, 9, 23, 59, 59, 0, time.UTC), core.Food, "", 100),
		rec(3, time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), core.Food, "", 1000),
	}
	if got := SpentToday(records, time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)); !got.Equal(amt(25)) {
		t.Fatalf("expected 25, got %s", got)
	}
	if got := SpentToday(records, day(2025, 3, 11)); !got.IsZero() {
		t.Fatalf("expected zero, got %s", got)
	}
}

func TestBreakdowns(t *testing.T) {
	records := []core.Record{
		rec(0, day(2025, 1, 1), core.Gaming, "UC (BGMI)", 499),
		rec(1, day(2025, 1, 2), core.Food, "", 150),
		rec(2, day(2025, 1, 3), core.Gaming, "Valorant Points", 300),
		rec(3, day(2025, 1, 4), core.Gaming, "UC (BGMI)", 1),
		rec(4, day(2025, 1, 5), core.Transport, "", 150),
	}

	if got := SpentByCategory(records, core.Gaming); !got.Equal(amt(800)) {
		t.Fatalf("expected gaming 800, got %s", got)
	}
	if got := SpentByCategory(records, core.Pets); !got.IsZero() {
		t.Fatalf("expected pets zero, got %s", got)
	}

	cats := CategoryBreakdown(records)
	if len(cats) != 3 {
		t.Fatalf("expected 3 categories, got %v", cats)
	}
	if _, ok := cats[core.Pets]; ok {
		t.Fatalf("absent category should not appear")
	}
	if !cats[core.Food].Equal(amt(150)) {
		t.Fatalf("unexpected food total %s", cats[core.Food])
	}

	items := GameItemBreakdown(records)
	if len(items) != 2 || !items["UC (BGMI)"].Equal(amt(500)) || !items["Valorant Points"].Equal(amt(300)) {
		t.Fatalf("unexpected game items %v", items)
	}
}

func TestSummarizeRanksSeries(t *testing.T) {
	records := []core.Record{
		rec(0, day(2025, 1, 1), core.Transport, "", 150),
		rec(1, day(2025, 1, 2), core.Food, "", 150),
		rec(2, day(2025, 2, 3), core.Gaming, "UC (BGMI)", 700),
	}
	s := Summarize(records, day(2025, 2, 3))

	if !s.Total.Equal(amt(1000)) || !s.Today.Equal(amt(700)) || !s.Gaming.Equal(amt(700)) {
		t.Fatalf("unexpected metrics %+v", s)
	}
	if !s.AveragePerMonth.Equal(amt(500)) {
		t.Fatalf("expected average 500, got %s", s.AveragePerMonth)
	}
	if !s.HasGaming() {
		t.Fatalf("expected gaming series")
	}

	want := []core.Category{core.Gaming, core.Food, core.Transport}
	for i, c := range s.Categories {
		if c.Category != want[i] {
			t.Fatalf("position %d: got %s want %s", i, c.Category, want[i])
		}
	}
	if s.Categories[0].Share != 70 || s.Categories[1].Share != 15 {
		t.Fatalf("unexpected shares %+v", s.Categories)
	}
}

func TestSummarizeDoesNotMutate(t *testing.T) {
	records := []core.Record{
		rec(1, day(2025, 2, 1), core.Food, "", 1),
		rec(0, day(2025, 1, 1), core.Food, "", 2),
	}
	_ = Summarize(records, day(2025, 2, 1))
	if records[0].ID != 1 || records[1].ID != 0 {
		t.Fatalf("input order changed")
	}
}
