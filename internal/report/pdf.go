package report

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin    = 10.0
	headerHeight = 8.0
	rowHeight    = 7.0
)

// encodePDF renders the document as a paginated A4 table. Column widths are
// the usable page width divided evenly by column count; when vertical space
// runs out a new page starts and the header band repeats.
func encodePDF(doc Document) (Export, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(false, pdfMargin)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	usable := pageW - 2*pdfMargin
	colW := usable / float64(len(doc.Header))

	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(usable, 10, "Transaction Report", "", 1, "C", false, 0, "")
	pdf.Ln(4)

	writeHeader := func() {
		pdf.SetFont("Helvetica", "B", 10)
		for _, title := range doc.Header {
			pdf.CellFormat(colW, headerHeight, title, "B", 0, "L", false, 0, "")
		}
		pdf.Ln(headerHeight)
		pdf.SetFont("Helvetica", "", 9)
	}
	writeHeader()

	for _, row := range doc.Rows {
		if pdf.GetY()+rowHeight > pageH-pdfMargin {
			pdf.AddPage()
			writeHeader()
		}
		for _, cell := range row {
			pdf.CellFormat(colW, rowHeight, cell, "", 0, "L", false, 0, "")
		}
		pdf.Ln(rowHeight)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return Export{}, fmt.Errorf("render pdf: %w", err)
	}

	return Export{
		Data:      buf.Bytes(),
		MediaType: "application/pdf",
		Filename:  filename("pdf"),
	}, nil
}
