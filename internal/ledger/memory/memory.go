// Package memory is the default ledger store: a slice owned by the process.
package memory

import (
	"context"
	"sync"

	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

var _ ledger.Store = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	items []core.Record
}

func New() *Store {
	return &Store{}
}

// Append adds r at the end.
func (s *Store) Append(_ context.Context, r core.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append(s.items, r)
	return nil
}

// Records returns a copy of the stored records.
func (s *Store) Records(_ context.Context) ([]core.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.items...), nil
}

func (s *Store) Len(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items), nil
}
