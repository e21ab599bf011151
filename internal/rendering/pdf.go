package rendering

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Layout constants mirroring the download document format: A4 portrait,
// centered bold title, 95-column word wrap, automatic page breaks.
const (
	wrapWidth       = 95
	pageBreakMargin = 15
	titleFontSize   = 14
	bodyFontSize    = 11
	titleCellHeight = 10
	bodyLineHeight  = 6
	blankLineGap    = 5
	afterTitleGap   = 4
)

// ResumePDF renders a block of text into a paginated PDF with a centered bold
// title. Each input line is word-wrapped at 95 columns; empty lines become
// vertical gaps. Text outside Latin-1 is transliterated lossily by the font
// translator.
func ResumePDF(text, title string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, pageBreakMargin)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", titleFontSize)
	pdf.CellFormat(0, titleCellHeight, tr(title), "", 1, "C", false, 0, "")
	pdf.Ln(afterTitleGap)

	pdf.SetFont("Arial", "", bodyFontSize)
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for _, line := range strings.Split(text, "\n") {
		segments := Wrap(line, wrapWidth)
		if len(segments) == 0 {
			pdf.Ln(blankLineGap)
			continue
		}
		for _, segment := range segments {
			pdf.MultiCell(0, bodyLineHeight, tr(segment), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return buf.Bytes(), nil
}
