// Package google pushes ledger exports to a Google Sheet.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"spendlog/internal/core"
)

// ErrNotConfigured is returned when no spreadsheet is configured.
var ErrNotConfigured = errors.New("google sheets export not configured")

// Config names the target sheet and the service account used to reach it.
type Config struct {
	SpreadsheetID      string
	SheetName          string
	ServiceAccountFile string
	ServiceAccountJSON string
}

// Exporter replaces the contents of one sheet with an export snapshot.
type Exporter struct {
	mu            sync.Mutex // one clear-then-update at a time
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// Result describes a completed push.
type Result struct {
	SpreadsheetID string
	UpdatedRange  string
	UpdatedRows   int64
}

// NewExporter creates a Sheets client authenticated with a service account.
func NewExporter(ctx context.Context, cfg Config) (*Exporter, error) {
	if strings.TrimSpace(cfg.SpreadsheetID) == "" {
		return nil, ErrNotConfigured
	}

	credentialsJSON, err := serviceAccountCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets exporter ready",
		"spreadsheet_id", cfg.SpreadsheetID,
		"sheet", sheetNameOrDefault(cfg.SheetName))
	return newExporter(svc, cfg.SpreadsheetID, cfg.SheetName), nil
}

func newExporter(svc *gsheet.Service, spreadsheetID, sheetName string) *Exporter {
	return &Exporter{
		svc:           svc,
		spreadsheetID: strings.TrimSpace(spreadsheetID),
		sheetName:     sheetNameOrDefault(sheetName),
	}
}

func sheetNameOrDefault(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "Expenses"
	}
	return name
}

// serviceAccountCredentials prefers inline JSON, then the file, then
// GOOGLE_APPLICATION_CREDENTIALS.
func serviceAccountCredentials(cfg Config) ([]byte, error) {
	inline := strings.TrimSpace(cfg.ServiceAccountJSON)
	file := strings.TrimSpace(cfg.ServiceAccountFile)
	if inline == "" && file == "" {
		file = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case inline != "":
		return []byte(inline), nil
	case file != "":
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read service account file: %w", err)
		}
		return b, nil
	default:
		return nil, errors.New("missing service account credentials (set GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or GOOGLE_APPLICATION_CREDENTIALS)")
	}
}

// Export clears the sheet and writes the header plus one row per record.
// Concurrent calls run one after the other.
func (e *Exporter) Export(ctx context.Context, records []core.Record) (Result, error) {
	if e == nil || e.svc == nil {
		return Result{}, ErrNotConfigured
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	clearRange := fmt.Sprintf("%s!A:G", e.sheetName)
	_, err := e.svc.Spreadsheets.Values.Clear(e.spreadsheetID, clearRange, &gsheet.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return Result{}, fmt.Errorf("clear %s: %w", clearRange, err)
	}

	vr := &gsheet.ValueRange{Values: toValues(records)}
	resp, err := e.svc.Spreadsheets.Values.Update(e.spreadsheetID, fmt.Sprintf("%s!A1", e.sheetName), vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return Result{}, fmt.Errorf("update %s: %w", e.sheetName, err)
	}

	slog.InfoContext(ctx, "Exported records to Google Sheets",
		"spreadsheet_id", e.spreadsheetID,
		"range", resp.UpdatedRange,
		"rows", resp.UpdatedRows)

	return Result{
		SpreadsheetID: e.spreadsheetID,
		UpdatedRange:  resp.UpdatedRange,
		UpdatedRows:   resp.UpdatedRows,
	}, nil
}
