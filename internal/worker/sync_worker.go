// Package worker mirrors the ledger to Google Sheets in the background.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
	"spendlog/internal/sheets/google"
)

// Exporter replaces the sheet contents with the given records.
type Exporter interface {
	Export(ctx context.Context, records []core.Record) (google.Result, error)
}

// stale marks the sheet as not holding a ledger prefix.
const stale = -1

// SyncWorker pushes the full ledger to a sheet whenever it has grown since
// the last successful push. The ledger is append-only, so its length is
// enough to tell whether the sheet is stale.
type SyncWorker struct {
	ledger   *ledger.Ledger
	exporter Exporter
	interval time.Duration

	mu     sync.Mutex // held for every push to the sheet
	synced int
}

func NewSyncWorker(l *ledger.Ledger, exporter Exporter, interval time.Duration) *SyncWorker {
	return &SyncWorker{
		ledger:   l,
		exporter: exporter,
		interval: interval,
	}
}

// Synced returns the ledger length covered by the last successful push, or
// -1 when a manual push has replaced the mirror.
func (w *SyncWorker) Synced() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.synced
}

// ProcessPending pushes the ledger if it has records the sheet lacks. It
// reports whether a push happened.
func (w *SyncWorker) ProcessPending(ctx context.Context) (bool, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	snap, err := w.ledger.Snapshot(ctx)
	if err != nil {
		return false, fmt.Errorf("snapshot ledger: %w", err)
	}
	if snap.Len() == w.synced {
		return false, nil
	}

	slog.InfoContext(ctx, "Processing pending records", "count", snap.Len()-w.synced)

	res, err := w.exporter.Export(ctx, snap.Records())
	if err != nil {
		return false, fmt.Errorf("export to sheets: %w", err)
	}
	w.synced = snap.Len()

	slog.InfoContext(ctx, "Successfully synced ledger",
		"records", snap.Len(),
		"range", res.UpdatedRange)
	return true, nil
}

// Export pushes records chosen by a caller, such as a filtered view, to the
// mirrored sheet. It waits for any mirror push in progress and leaves the
// mirror stale, so the next tick writes the full ledger back.
func (w *SyncWorker) Export(ctx context.Context, records []core.Record) (google.Result, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	res, err := w.exporter.Export(ctx, records)
	w.synced = stale
	if err != nil {
		return res, err
	}
	slog.InfoContext(ctx, "Manual sheets push completed, mirror marked stale",
		"records", len(records),
		"range", res.UpdatedRange)
	return res, nil
}

// Run syncs on every tick until ctx is done, then makes one final attempt.
func (w *SyncWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	slog.InfoContext(ctx, "Sheets sync worker started", "interval", w.interval)
	for {
		select {
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if _, err := w.ProcessPending(finalCtx); err != nil {
				slog.Error("Final sheets sync failed", "error", err)
			}
			cancel()
			return nil
		case <-ticker.C:
			if _, err := w.ProcessPending(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic sync failed", "error", err)
			}
		}
	}
}
