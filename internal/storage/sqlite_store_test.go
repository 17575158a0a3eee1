package storage

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLiteStore(context.Background())
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestSQLiteStoreRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	ist := time.FixedZone("IST", 5*3600+1800)
	want := []core.Record{
		{ID: 0, Timestamp: time.Date(2025, 1, 5, 8, 15, 30, 0, ist), Category: core.Food, Product: "Coffee",
			PaymentMode: core.Cash, Amount: core.AmountFromFloat(150), Description: "Food | Coffee | Cash"},
		{ID: 1, Timestamp: time.Date(2025, 2, 1, 21, 0, 0, 0, ist), Category: core.Gaming, Product: "Battle Pass",
			GameItem: "UC (BGMI)", PaymentMode: core.UPI, Amount: core.AmountFromFloat(499.99),
			Description: "Gaming | Battle Pass | UC (BGMI) | UPI"},
	}
	for _, r := range want {
		if err := s.Append(ctx, r); err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	n, err := s.Len(ctx)
	if err != nil || n != 2 {
		t.Fatalf("expected 2 records, got %d (err=%v)", n, err)
	}

	got, err := s.Records(ctx)
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	for i := range want {
		g, w := got[i], want[i]
		if g.ID != w.ID || g.Category != w.Category || g.Product != w.Product || g.GameItem != w.GameItem ||
			g.PaymentMode != w.PaymentMode || !g.Amount.Equal(w.Amount) || g.Description != w.Description {
			t.Fatalf("record %d mismatch: got %+v want %+v", i, g, w)
		}
		if !g.Timestamp.Equal(w.Timestamp) {
			t.Fatalf("record %d timestamp: got %v want %v", i, g.Timestamp, w.Timestamp)
		}
		if g.Timestamp.Day() != w.Timestamp.Day() {
			t.Fatalf("record %d lost its offset: %v", i, g.Timestamp)
		}
	}
}

func TestSQLiteStoreRejectsGameItemOutsideGaming(t *testing.T) {
	s := newTestStore(t)
	err := s.Append(context.Background(), core.Record{
		ID: 0, Timestamp: time.Now(), Category: core.Food, Product: "Pizza", GameItem: "Gems (Clash of Clans)",
		PaymentMode: core.Cash, Amount: core.AmountFromFloat(1), Description: "x",
	})
	if err == nil {
		t.Fatalf("expected check constraint violation")
	}
}

func TestRunMigrationsKeepsRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	err := s.Append(ctx, core.Record{
		ID: 0, Timestamp: time.Now(), Category: core.Food, Product: "Tea",
		PaymentMode: core.Cash, Amount: core.AmountFromFloat(20), Description: "Food | Tea | Cash",
	})
	if err != nil {
		t.Fatalf("append: %v", err)
	}

	if err := RunMigrations(s.db); err != nil {
		t.Fatalf("second RunMigrations: %v", err)
	}
	if n, err := s.Len(ctx); err != nil || n != 1 {
		t.Fatalf("expected 1 record after re-running migrations, got %d (err=%v)", n, err)
	}
}

func TestUpMigrationsDoNotDrop(t *testing.T) {
	ups, err := fs.Glob(migrationsFS, "migrations/*.up.sql")
	if err != nil || len(ups) == 0 {
		t.Fatalf("no up migrations found (err=%v)", err)
	}
	for _, name := range ups {
		b, err := migrationsFS.ReadFile(name)
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if strings.Contains(strings.ToUpper(string(b)), "DROP TABLE") {
			t.Errorf("%s drops a table", name)
		}
	}
}

func TestLedgerOnSQLiteStore(t *testing.T) {
	l := ledger.New(newTestStore(t))
	ctx := context.Background()

	for i, p := range []string{"Coffee", "Tea", "Coffee Beans"} {
		r, err := l.Append(ctx, core.Candidate{
			Timestamp: time.Now(), Category: core.Food, Product: p,
			PaymentMode: core.UPI, Amount: core.AmountFromFloat(10),
		})
		if err != nil {
			t.Fatalf("append %s: %v", p, err)
		}
		if r.ID != i {
			t.Fatalf("expected id %d, got %d", i, r.ID)
		}
	}
	if _, err := l.Append(ctx, core.Candidate{Category: core.Food, PaymentMode: core.UPI}); err == nil {
		t.Fatalf("expected invalid amount error")
	}

	seq, err := l.Query(ctx, "COF")
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	var products []string
	for r := range seq {
		products = append(products, r.Product)
	}
	if len(products) != 2 || products[0] != "Coffee" || products[1] != "Coffee Beans" {
		t.Fatalf("unexpected query result %v", products)
	}
}
