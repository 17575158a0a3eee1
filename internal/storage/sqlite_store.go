// Package storage provides a SQLite ledger store.
//
// The database lives in memory and dies with the process: records are not
// kept across restarts.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"spendlog/internal/core"
	"spendlog/internal/ledger"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"
)

// memoryDSN opens a private in-memory database. The pool is pinned to a
// single connection so every query sees the same database.
const memoryDSN = ":memory:"

var _ ledger.Store = (*SQLiteStore)(nil)

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens the in-memory database and applies the schema.
func NewSQLiteStore(ctx context.Context) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", memoryDSN)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Append implements ledger.Store.
func (s *SQLiteStore) Append(ctx context.Context, r core.Record) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO records (seq, occurred_at, category, product, game_item, payment_mode, amount, description)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID,
		r.Timestamp.Format(time.RFC3339Nano),
		string(r.Category),
		r.Product,
		r.GameItem,
		string(r.PaymentMode),
		r.Amount.String(),
		r.Description,
	)
	if err != nil {
		return fmt.Errorf("insert record: %w", err)
	}

	slog.DebugContext(ctx, "Record saved to SQLite", "id", r.ID, "amount", r.Amount.String())
	return nil
}

// Records implements ledger.Store.
func (s *SQLiteStore) Records(ctx context.Context) ([]core.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, occurred_at, category, product, game_item, payment_mode, amount, description
		 FROM records ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	var out []core.Record
	for rows.Next() {
		var (
			r                     core.Record
			occurredAt, amount    string
			category, paymentMode string
		)
		if err := rows.Scan(&r.ID, &occurredAt, &category, &r.Product, &r.GameItem, &paymentMode, &amount, &r.Description); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if r.Timestamp, err = time.Parse(time.RFC3339Nano, occurredAt); err != nil {
			return nil, fmt.Errorf("parse timestamp of record %d: %w", r.ID, err)
		}
		d, err := decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("parse amount of record %d: %w", r.ID, err)
		}
		r.Amount = core.NewAmount(d)
		r.Category = core.Category(category)
		r.PaymentMode = core.PaymentMode(paymentMode)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return out, nil
}

// Len implements ledger.Store.
func (s *SQLiteStore) Len(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}
