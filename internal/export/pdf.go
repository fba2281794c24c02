package export

import (
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/pgEdge/pgedge-salesreport/internal/report"
)

const (
	pdfPageWidth = 277.0 // A4 landscape minus 10mm margins
	pdfRowHeight = 6.0
)

// writePDF renders the summary columns of t as a landscape table with the
// header repeated on every page.
func writePDF(path string, t *Table, evalDate time.Time) error {
	header, rows := t.project(0)
	if len(header) == 0 {
		return fmt.Errorf("no columns to render")
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	width := pdfPageWidth / float64(len(header))

	pdf.SetHeaderFunc(func() {
		pdf.SetFont("Arial", "B", 14)
		pdf.SetTextColor(0, 0, 0)
		pdf.CellFormat(0, 10, tr(t.Title), "", 1, "L", false, 0, "")
		pdf.SetFont("Arial", "", 9)
		pdf.SetTextColor(100, 100, 100)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Evaluation date %s, %d rows",
			evalDate.Format(report.DateLayout), len(rows))), "", 1, "L", false, 0, "")
		pdf.Ln(2)

		pdf.SetFont("Arial", "B", 7)
		pdf.SetFillColor(40, 40, 40)
		pdf.SetTextColor(255, 255, 255)
		for _, h := range header {
			pdf.CellFormat(width, pdfRowHeight, tr(h), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.SetAutoPageBreak(false, 0)
	_, pageHeight := pdf.GetPageSize()

	pdf.AddPage()
	for i, row := range rows {
		if pdf.GetY()+pdfRowHeight > pageHeight-20 {
			pdf.AddPage()
		}
		pdf.SetFont("Arial", "", 7)
		pdf.SetTextColor(50, 50, 50)
		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		for _, cell := range row {
			pdf.CellFormat(width, pdfRowHeight, tr(fit(pdf, cell, width)), "1", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("error writing PDF file: %w", err)
	}
	return nil
}

// fit truncates s with "..." so it fits in a cell of the given width.
func fit(pdf *gofpdf.Fpdf, s string, width float64) string {
	limit := width - 2
	if pdf.GetStringWidth(s) <= limit {
		return s
	}
	r := []rune(s)
	for len(r) > 0 && pdf.GetStringWidth(string(r)+"...") > limit {
		r = r[:len(r)-1]
	}
	return string(r) + "..."
}
