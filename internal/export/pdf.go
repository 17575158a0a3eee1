package export

import (
	"fmt"
	"io"
	"time"

	"spendlog/internal/analytics"
	"spendlog/internal/core"

	"github.com/phpdave11/gofpdf"
)

// PDF writes a one-page report of the summary. The core PDF fonts have no
// rupee glyph, so amounts are prefixed with "Rs.".
func PDF(w io.Writer, s analytics.Summary, generated time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Expense Report", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "Personal & Gaming Expense Report")
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "", 11)
	pdf.Cell(0, 7, fmt.Sprintf("Generated: %s  -  %d expenses", generated.Format("2006-01-02 15:04"), s.Count))
	pdf.Ln(10)

	section(pdf, "Overview")
	twoCol(pdf, "Total Spent", rs(s.Total))
	twoCol(pdf, "Gaming Spent", rs(s.Gaming))
	twoCol(pdf, "Avg per Month", rs(s.AveragePerMonth))
	twoCol(pdf, "Today's Spending", rs(s.Today))
	pdf.Ln(4)

	if len(s.Monthly) > 0 {
		section(pdf, "Monthly Spending")
		for _, m := range s.Monthly {
			twoCol(pdf, m.Month.Label(), rs(m.Amount))
		}
		pdf.Ln(4)
	}

	if len(s.Categories) > 0 {
		section(pdf, "Spending by Category")
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(80, 7, "Category")
		pdf.Cell(50, 7, "Amount")
		pdf.Cell(30, 7, "%")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		for _, c := range s.Categories {
			pdf.Cell(80, 7, tr(string(c.Category)))
			pdf.Cell(50, 7, rs(c.Amount))
			pdf.Cell(30, 7, fmt.Sprintf("%.1f%%", c.Share))
			pdf.Ln(7)
		}
		pdf.Ln(4)
	}

	if s.HasGaming() {
		section(pdf, "Gaming Expenses Breakdown")
		for _, g := range s.GameItems {
			twoCol(pdf, tr(g.GameItem), rs(g.Amount))
		}
	}

	return pdf.Output(w)
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Helvetica", "B", 13)
	pdf.Cell(0, 8, title)
	pdf.Ln(8)
	pdf.SetFont("Helvetica", "", 11)
}

func twoCol(pdf *gofpdf.Fpdf, label, value string) {
	pdf.Cell(80, 7, label)
	pdf.Cell(50, 7, value)
	pdf.Ln(7)
}

func rs(a core.Amount) string {
	return "Rs. " + a.String()
}
