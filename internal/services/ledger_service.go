// Package services orchestrates ledger appends with their side effects.
package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

// EventPublisher announces appended records. A nil publisher disables events.
type EventPublisher interface {
	PublishRecordAppended(ctx context.Context, r core.Record) error
}

// LedgerService appends to the ledger and then publishes the record.
type LedgerService struct {
	ledger    *ledger.Ledger
	publisher EventPublisher
	closers   []io.Closer
}

func NewLedgerService(l *ledger.Ledger, publisher EventPublisher, closers ...io.Closer) *LedgerService {
	return &LedgerService{
		ledger:    l,
		publisher: publisher,
		closers:   closers,
	}
}

// Ledger returns the underlying ledger for read paths.
func (s *LedgerService) Ledger() *ledger.Ledger {
	return s.ledger
}

// RecordExpense validates and appends c. Publishing is best effort: the
// record is already part of the ledger when the publish fails.
func (s *LedgerService) RecordExpense(ctx context.Context, c core.Candidate) (core.Record, error) {
	rec, err := s.ledger.Append(ctx, c)
	if err != nil {
		return core.Record{}, fmt.Errorf("append expense: %w", err)
	}

	if s.publisher == nil {
		return rec, nil
	}
	if err := s.publisher.PublishRecordAppended(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record appended event",
			"id", rec.ID, "error", err)
	}
	return rec, nil
}

// Close releases the resources handed to NewLedgerService.
func (s *LedgerService) Close() error {
	var errs []error
	for _, c := range s.closers {
		if c == nil {
			continue
		}
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("close ledger service: %v", errs)
	}
	return nil
}
