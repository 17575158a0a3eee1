package export

import (
	"fmt"
	"io"

	"spendlog/internal/analytics"
	"spendlog/internal/core"

	"github.com/xuri/excelize/v2"
)

const (
	ExpensesSheet = "Expenses"
	SummarySheet  = "Summary"
)

// XLSX writes a workbook with the records on one sheet and the summary on
// another. Amounts are numeric cells.
func XLSX(w io.Writer, records []core.Record, summary analytics.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExpensesSheet); err != nil {
		return fmt.Errorf("rename default sheet: %w", err)
	}

	for i, h := range Header {
		if err := setCell(f, ExpensesSheet, i+1, 1, h); err != nil {
			return err
		}
	}
	for idx, r := range records {
		row := idx + 2
		values := []any{
			r.Timestamp.Format(TimestampLayout),
			string(r.Category),
			r.Product,
			r.GameItem,
			string(r.PaymentMode),
			r.Amount.Float64(),
			r.Description,
		}
		for col, v := range values {
			if err := setCell(f, ExpensesSheet, col+1, row, v); err != nil {
				return err
			}
		}
	}

	f.SetColWidth(ExpensesSheet, "A", "A", 20)
	f.SetColWidth(ExpensesSheet, "B", "C", 22)
	f.SetColWidth(ExpensesSheet, "D", "D", 20)
	f.SetColWidth(ExpensesSheet, "E", "F", 14)
	f.SetColWidth(ExpensesSheet, "G", "G", 50)

	if err := writeSummarySheet(f, summary); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, s analytics.Summary) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return fmt.Errorf("create sheet: %w", err)
	}

	rows := [][]any{
		{"Total Spent", s.Total.Float64()},
		{"Gaming Spent", s.Gaming.Float64()},
		{"Avg per Month", s.AveragePerMonth.Float64()},
		{"Today's Spending", s.Today.Float64()},
		{},
		{"Month", "Amount"},
	}
	for _, m := range s.Monthly {
		rows = append(rows, []any{m.Month.String(), m.Amount.Float64()})
	}
	rows = append(rows, []any{}, []any{"Category", "Amount", "Share %"})
	for _, c := range s.Categories {
		rows = append(rows, []any{string(c.Category), c.Amount.Float64(), c.Share})
	}
	if s.HasGaming() {
		rows = append(rows, []any{}, []any{"Game Item", "Amount"})
		for _, g := range s.GameItems {
			rows = append(rows, []any{g.GameItem, g.Amount.Float64()})
		}
	}

	for i, row := range rows {
		for j, v := range row {
			if err := setCell(f, SummarySheet, j+1, i+1, v); err != nil {
				return err
			}
		}
	}
	f.SetColWidth(SummarySheet, "A", "A", 24)
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell name: %w", err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s!%s: %w", sheet, cell, err)
	}
	return nil
}
