// Package ledger holds the append-only sequence of expense records for a
// session.
package ledger

import (
	"context"
	"fmt"
	"iter"
	"log/slog"
	"strings"
	"sync"

	"spendlog/internal/core"
)

// Store keeps the records of a ledger in insertion order. Implementations
// do not validate: the Ledger is their only writer.
type Store interface {
	Append(ctx context.Context, r core.Record) error
	Records(ctx context.Context) ([]core.Record, error)
	Len(ctx context.Context) (int, error)
}

// Ledger validates and admits records and serves snapshots of them.
type Ledger struct {
	mu    sync.RWMutex
	store Store
}

// New returns a ledger backed by store.
func New(store Store) *Ledger {
	return &Ledger{store: store}
}

// Append validates c, assigns it the next position and stores it. On error
// the ledger is unchanged.
func (l *Ledger) Append(ctx context.Context, c core.Candidate) (core.Record, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	n, err := l.store.Len(ctx)
	if err != nil {
		return core.Record{}, fmt.Errorf("ledger length: %w", err)
	}
	rec, err := core.NewRecord(n, c)
	if err != nil {
		return core.Record{}, err
	}
	if err := l.store.Append(ctx, rec); err != nil {
		return core.Record{}, fmt.Errorf("store record: %w", err)
	}

	slog.DebugContext(ctx, "Record appended",
		"id", rec.ID,
		"category", rec.Category,
		"amount", rec.Amount.String())
	return rec, nil
}

// Snapshot returns the records as they are now.
func (l *Ledger) Snapshot(ctx context.Context) (Snapshot, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records, err := l.store.Records(ctx)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read records: %w", err)
	}
	return Snapshot{records: records}, nil
}

// Query returns the records whose product contains filter, ignoring case,
// in ledger order. An empty filter matches every record. The sequence is
// bound to the snapshot taken by this call and can be ranged over again.
func (l *Ledger) Query(ctx context.Context, filter string) (iter.Seq[core.Record], error) {
	snap, err := l.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Filter(filter).All(), nil
}

// Len returns the number of records.
func (l *Ledger) Len(ctx context.Context) (int, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.store.Len(ctx)
}

// Snapshot is an immutable ordered view of the ledger.
type Snapshot struct {
	records []core.Record
}

// Len returns the number of records in the snapshot.
func (s Snapshot) Len() int { return len(s.records) }

// Records returns a copy of the records.
func (s Snapshot) Records() []core.Record {
	return append([]core.Record(nil), s.records...)
}

// All yields the records in order.
func (s Snapshot) All() iter.Seq[core.Record] {
	return func(yield func(core.Record) bool) {
		for _, r := range s.records {
			if !yield(r) {
				return
			}
		}
	}
}

// Filter keeps records whose product contains filter, ignoring case.
func (s Snapshot) Filter(filter string) Snapshot {
	needle := NormalizeFilter(filter)
	if needle == "" {
		return s
	}
	var out []core.Record
	for _, r := range s.records {
		if MatchesProduct(r, needle) {
			out = append(out, r)
		}
	}
	return Snapshot{records: out}
}

// NormalizeFilter trims and lower-cases a product filter.
func NormalizeFilter(filter string) string {
	return strings.ToLower(strings.TrimSpace(filter))
}

// MatchesProduct reports whether the product of r contains the normalized
// filter needle.
func MatchesProduct(r core.Record, needle string) bool {
	return strings.Contains(strings.ToLower(r.Product), needle)
}
