package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"

	"github.com/hosfile/prepay-api/internal/models"
)

// Landscape A4 is 297mm wide; with 10mm margins the table gets 277mm,
// split per column with Content taking the widest share.
var pdfWidths = []float64{40, 26, 20, 70, 45, 18, 22, 36}

// PDF renders the listing as a landscape table with a title line.
func PDF(items []models.Submission, title string) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, title, "", 1, "C", false, 0, "")
		pdf.Ln(3)
	}

	pdf.SetFont("Arial", "B", 9)
	for i, header := range columns {
		pdf.CellFormat(pdfWidths[i], 8, header, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 8)
	for _, item := range items {
		for i, value := range rowOf(item) {
			pdf.CellFormat(pdfWidths[i], 7, value, "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
