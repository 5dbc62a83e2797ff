// Package pdf inspects PDF input before it is sent to GROBID.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNotPDF indicates the input does not start with a PDF header.
var ErrNotPDF = errors.New("not a PDF file")

// magic is the header every PDF file starts with.
const magic = "%PDF-"

// scanPages is how many leading pages are searched for a DOI and title.
const scanPages = 3

// Info is what a quick look at a PDF reveals.
type Info struct {
	Pages int    `json:"pages"`
	DOI   string `json:"doi,omitempty"`
	Title string `json:"title,omitempty"`
}

// IsPDF reports whether data starts with the PDF header.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte(magic))
}

// Inspect reads the page count and looks for a DOI and a title candidate in
// the first pages. Pages whose text cannot be extracted are skipped.
func Inspect(data []byte) (*Info, error) {
	if !IsPDF(data) {
		return nil, ErrNotPDF
	}

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("reading PDF: %w", err)
	}

	info := &Info{Pages: r.NumPage()}
	text := extractText(r, scanPages)
	info.DOI = FindDOI(text)
	info.Title = guessTitle(text)
	return info, nil
}

// extractText extracts text from the first maxPages pages.
func extractText(r *pdf.Reader, maxPages int) string {
	if maxPages <= 0 || maxPages > r.NumPage() {
		maxPages = r.NumPage()
	}

	var builder strings.Builder
	for i := 1; i <= maxPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		builder.WriteString(text)
		builder.WriteString("\n")
	}
	return builder.String()
}
