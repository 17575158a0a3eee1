package http

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"spendlog/internal/analytics"
	"spendlog/internal/core"
	"spendlog/internal/export"
	applog "spendlog/internal/log"
	"spendlog/internal/sheets/google"
)

const (
	csvFileName  = "expense_data.csv"
	xlsxFileName = "expense_data.xlsx"
	pdfFileName  = "expense_report.pdf"
)

func (s *Server) filteredRecords(r *http.Request) ([]core.Record, string, error) {
	filter := FilterParam(r.URL.Query())
	snap, err := s.svc.Ledger().Snapshot(r.Context())
	if err != nil {
		return nil, filter, err
	}
	return snap.Filter(filter).Records(), filter, nil
}

// writeDownload renders into a buffer before any header is written.
func writeDownload(w http.ResponseWriter, r *http.Request, contentType, fileName, format string, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		applog.NewStructuredLogger(applog.FromContext(r.Context())).
			LogError(r.Context(), "Export failed", err, applog.ComponentExport, applog.OpExport, applog.NewFields())
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Export served",
		applog.FieldFormat, format, "bytes", buf.Len())
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.filteredRecords(r)
	if err != nil {
		slogError(r, "Snapshot failed", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	writeDownload(w, r, "text/csv; charset=utf-8", csvFileName, "csv", func(buf *bytes.Buffer) error {
		return export.CSV(buf, records)
	})
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	records, _, err := s.filteredRecords(r)
	if err != nil {
		slogError(r, "Snapshot failed", err)
		http.Error(w, "export failed", http.StatusInternalServerError)
		return
	}
	sum := analytics.Summarize(records, s.today())
	writeDownload(w, r, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", xlsxFileName, "xlsx",
		func(buf *bytes.Buffer) error {
			return export.XLSX(buf, records, sum)
		})
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	sum, err := s.summary(r.Context())
	if err != nil {
		slogError(r, "Summary failed", err)
		http.Error(w, "report failed", http.StatusInternalServerError)
		return
	}
	generated := s.today()
	writeDownload(w, r, "application/pdf", pdfFileName, "pdf", func(buf *bytes.Buffer) error {
		return export.PDF(buf, sum, generated)
	})
}

func (s *Server) handleExportSheets(w http.ResponseWriter, r *http.Request) {
	if s.sheets == nil {
		ServiceUnavailableError("Google Sheets export is not configured").Write(w)
		return
	}

	records, filter, err := s.filteredRecords(r)
	if err != nil {
		slogError(r, "Snapshot failed", err)
		InternalServerError("Could not read the ledger").Write(w)
		return
	}

	res, err := s.sheets.Export(r.Context(), records)
	if err != nil {
		if errors.Is(err, google.ErrNotConfigured) {
			ServiceUnavailableError("Google Sheets export is not configured").Write(w)
			return
		}
		applog.NewStructuredLogger(applog.FromContext(r.Context())).
			LogError(r.Context(), "Sheets export failed", err, applog.ComponentSheets, applog.OpExport, applog.NewFields())
		ErrorResponse(http.StatusBadGateway, "Google Sheets export failed").Write(w)
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Sheets export completed",
		applog.FieldCount, len(records), applog.FieldFilter, filter, "range", res.UpdatedRange)
	SuccessResponse(fmt.Sprintf("Exported %d expenses to Google Sheets", len(records))).Write(w)
}
