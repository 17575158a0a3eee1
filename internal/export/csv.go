// Package export renders ledger snapshots as downloadable files.
//
// CSV is the canonical export. XLSX and PDF are convenience renderings of the
// same rows and of the dashboard summary.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"time"

	"spendlog/internal/core"

	"github.com/shopspring/decimal"
)

// TimestampLayout is the DateTime column format.
const TimestampLayout = "2006-01-02 15:04:05"

// Header is the column order of every tabular export.
var Header = []string{"DateTime", "Category", "Product", "Game_Item", "Payment_Mode", "Amount", "Description"}

// Row renders one record in Header order.
func Row(r core.Record) []string {
	return []string{
		r.Timestamp.Format(TimestampLayout),
		string(r.Category),
		r.Product,
		r.GameItem,
		string(r.PaymentMode),
		r.Amount.String(),
		r.Description,
	}
}

// CSV writes the header and one line per record, in order. Identical input
// gives identical bytes.
func CSV(w io.Writer, records []core.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("write record %d: %w", r.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}

// CSVBytes is CSV into a buffer.
func CSVBytes(records []core.Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := CSV(&buf, records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ParseCSV reads an export back into records, numbering them by row.
// Timestamps are interpreted in loc. It checks the export format; it is not
// a way to load records into a ledger.
func ParseCSV(r io.Reader, loc *time.Location) ([]core.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	head, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	for i, h := range Header {
		if head[i] != h {
			return nil, fmt.Errorf("unexpected column %d: got %q, want %q", i, head[i], h)
		}
	}

	var out []core.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row %d: %w", len(out)+1, err)
		}
		ts, err := time.ParseInLocation(TimestampLayout, row[0], loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: parse DateTime: %w", len(out)+1, err)
		}
		d, err := decimal.NewFromString(row[5])
		if err != nil {
			return nil, fmt.Errorf("row %d: parse Amount: %w", len(out)+1, err)
		}
		out = append(out, core.Record{
			ID:          len(out),
			Timestamp:   ts,
			Category:    core.Category(row[1]),
			Product:     row[2],
			GameItem:    row[3],
			PaymentMode: core.PaymentMode(row[4]),
			Amount:      core.NewAmount(d),
			Description: row[6],
		})
	}
	return out, nil
}
