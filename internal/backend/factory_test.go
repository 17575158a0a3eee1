package backend

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"spendlog/internal/amqp"
	"spendlog/internal/config"
	"spendlog/internal/core"
	"spendlog/internal/ledger"
)

func TestFromAppConfig(t *testing.T) {
	if _, err := FromAppConfig(nil); err == nil {
		t.Fatal("expected error for nil config")
	}

	cfg, err := FromAppConfig(&config.Config{
		DataBackend:    "sqlite",
		AMQPURL:        "amqp://localhost:5672/",
		AMQPExchange:   "spendlog",
		AMQPRoutingKey: "record.appended",
	})
	if err != nil {
		t.Fatalf("FromAppConfig: %v", err)
	}
	if cfg.Type != SQLiteBackend || cfg.AMQPRoutingKey != "record.appended" {
		t.Fatalf("unexpected config %+v", cfg)
	}

	if _, err := FromAppConfig(&config.Config{DataBackend: "sheets"}); err == nil {
		t.Fatal("expected error for unsupported backend")
	}
}

func TestGetBackendTypeStrings(t *testing.T) {
	got := GetBackendTypeStrings()
	if len(got) != 2 || got[0] != "memory" || got[1] != "sqlite" {
		t.Fatalf("GetBackendTypeStrings() = %v", got)
	}
}

func TestCreateBackend(t *testing.T) {
	tests := []struct {
		name      string
		backend   BackendType
		storeType string
	}{
		{"memory", MemoryBackend, "*memory.Store"},
		{"sqlite", SQLiteBackend, "*storage.SQLiteStore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFactory(nil)
			res, err := f.CreateBackend(context.Background(), Config{Type: tt.backend})
			if err != nil {
				t.Fatalf("CreateBackend: %v", err)
			}
			if res.Cleanup != nil {
				defer res.Cleanup()
			}
			if res.Publisher != nil {
				t.Error("publisher should be nil without AMQP URL")
			}
			if got := fmt.Sprintf("%T", res.Store); got != tt.storeType {
				t.Fatalf("store = %s, want %s", got, tt.storeType)
			}

			l := ledger.New(res.Store)
			_, err = l.Append(context.Background(), core.Candidate{
				Timestamp:   time.Date(2025, 1, 5, 9, 30, 0, 0, time.UTC),
				Category:    core.Food,
				Product:     "Coffee",
				PaymentMode: core.UPI,
				Amount:      core.AmountFromFloat(150),
			})
			if err != nil {
				t.Fatalf("Append on %s backend: %v", tt.name, err)
			}
		})
	}
}

func TestCreateBackend_InvalidType(t *testing.T) {
	f := NewFactory(nil)
	if _, err := f.CreateBackend(context.Background(), Config{Type: "sheets"}); err == nil {
		t.Fatal("expected error for invalid backend type")
	}
}

func TestCreateBackend_UnreachableBrokerDisablesEvents(t *testing.T) {
	f := &DefaultFactory{
		logger: slogDiscard(),
		newPublisher: func(string, string, string) (*amqp.Client, error) {
			return nil, errors.New("dial AMQP: connection refused")
		},
	}

	res, err := f.CreateBackend(context.Background(), Config{
		Type:           MemoryBackend,
		AMQPURL:        "amqp://localhost:5672/",
		AMQPExchange:   "spendlog",
		AMQPRoutingKey: "record.appended",
	})
	if err != nil {
		t.Fatalf("CreateBackend should tolerate broker failures: %v", err)
	}
	if res.Publisher != nil {
		t.Fatal("publisher should stay nil when the broker is unreachable")
	}
}

func slogDiscard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
