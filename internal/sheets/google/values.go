package google

import (
	"spendlog/internal/core"
	"spendlog/internal/export"
)

// toValues lays records out in export column order. Amount goes out as a
// number so the sheet can sum it.
func toValues(records []core.Record) [][]interface{} {
	values := make([][]interface{}, 0, len(records)+1)

	header := make([]interface{}, len(export.Header))
	for i, h := range export.Header {
		header[i] = h
	}
	values = append(values, header)

	for _, r := range records {
		row := export.Row(r)
		out := make([]interface{}, len(row))
		for i, cell := range row {
			out[i] = cell
		}
		out[5] = r.Amount.Float64()
		values = append(values, out)
	}
	return values
}
