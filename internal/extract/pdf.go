package extract

import (
	"fmt"
	"strings"

	"github.com/hyperjump/askdoc/internal/apperr"
	"github.com/ledongthuc/pdf"
)

const pdfErrMsg = "error reading PDF file"

// ExtractPDF returns the text of every page of the PDF at path, in page order,
// joined by single spaces and trimmed. A PDF without pages yields "".
func (e *Extractor) ExtractPDF(path string) (text string, err error) {
	// ledongthuc/pdf panics on some malformed input.
	defer func() {
		if r := recover(); r != nil {
			text, err = "", apperr.Wrap(apperr.KindExtraction, fmt.Errorf("%v", r), pdfErrMsg)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, err, pdfErrMsg)
	}
	defer f.Close()

	numPages := r.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			return "", apperr.Wrap(apperr.KindExtraction, fmt.Errorf("extract page %d: %w", i, err), pdfErrMsg)
		}
		pages = append(pages, pageText)
	}
	return joinPages(pages), nil
}

func joinPages(pages []string) string {
	return strings.TrimSpace(strings.Join(pages, " "))
}
