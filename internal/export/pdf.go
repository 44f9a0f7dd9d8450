package export

import (
	"fmt"
	"io"
	"os"

	"github.com/go-pdf/fpdf"
)

// WritePDF encodes pages as an A4 PDF, one PDF page per layout page, each line
// drawn at its laid-out offset.
func (l Layout) WritePDF(w io.Writer, pages []Page) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetCreator("casehelper", true)
	pdf.SetFont("Helvetica", "", l.FontSize)
	// core fonts are cp1252; translate so accented names survive
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, p := range pages {
		pdf.AddPage()
		for _, ln := range p.Lines {
			pdf.Text(l.LeftMargin, ln.Y, tr(ln.Text))
		}
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return pdf.Output(w)
}

// WritePDFFile lays out s and writes the PDF to path.
func (l Layout) WritePDFFile(path string, s Snapshot) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := l.WritePDF(f, l.Document(s)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
