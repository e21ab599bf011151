// Package extract pulls plain text out of uploaded resume PDFs.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts the text of every page of a PDF, pages joined by blank lines.
// It never fails: any parse error or a PDF with no extractable text yields ""
// and the caller surfaces a warning to the user.
func Text(data []byte) string {
	text, err := FromBytes(data)
	if err != nil {
		return ""
	}
	return text
}

// FromBytes walks pages 1..NumPage, skipping pages that yield no text, and
// joins the rest with blank-line separators.
func FromBytes(data []byte) (text string, err error) {
	defer func() {
		// ledongthuc/pdf panics on some malformed inputs.
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("malformed pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		if strings.TrimSpace(pageText) == "" {
			continue
		}
		pages = append(pages, pageText)
	}

	return strings.TrimSpace(strings.Join(pages, "\n\n")), nil
}
