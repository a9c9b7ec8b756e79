package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// PDFExporter renders datasets into a landscape tabular PDF.
type PDFExporter struct{}

func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render creates a PDF document with a single table.
func (e *PDFExporter) Render(data Dataset, title string) ([]byte, error) {
	return e.RenderReport(title, []Section{{Data: data}})
}

// RenderReport creates a PDF document with one table per section.
func (e *PDFExporter) RenderReport(title string, sections []Section) ([]byte, error) {
	if len(sections) == 0 {
		return nil, fmt.Errorf("pdf requires at least one section")
	}
	for _, s := range sections {
		if len(s.Data.Headers) == 0 {
			return nil, fmt.Errorf("pdf section %q requires at least one header", s.Heading)
		}
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 15, 10)
	pdf.AddPage()
	// Core fonts are cp1252; names such as "Economía" need translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
		pdf.Ln(4)
	}

	const width = 277.0
	for _, s := range sections {
		if s.Heading != "" {
			pdf.SetFont("Arial", "B", 12)
			pdf.CellFormat(0, 8, tr(s.Heading), "", 1, "L", false, 0, "")
		}

		colWidth := width / float64(len(s.Data.Headers))
		pdf.SetFont("Arial", "B", 9)
		for _, header := range s.Data.Headers {
			pdf.CellFormat(colWidth, 8, tr(header), "1", 0, "C", false, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetFont("Arial", "", 9)
		for _, row := range s.Data.Rows {
			for i := range s.Data.Headers {
				c := cellAt(row, i)
				align := "R"
				if c.Kind == KindText {
					align = "L"
				}
				pdf.CellFormat(colWidth, 7, tr(display(c)), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
		pdf.Ln(6)
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
