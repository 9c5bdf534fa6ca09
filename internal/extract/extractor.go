// Package extract turns stored documents and web pages into plain text.
package extract

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/hyperjump/askdoc/internal/apperr"
)

const (
	docxMIME = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

type format int

const (
	formatPDF format = iota
	formatDOCX
	formatXLSX
)

// Extractor extracts plain text from stored document files.
type Extractor struct{}

// NewExtractor returns a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// ExtractFile extracts text from the file at path. The format is sniffed from the
// content; name (the client's original filename) only breaks ties for generic zip
// archives. Anything that is not DOCX or XLSX is read as a PDF.
// All failures are apperr.KindExtraction.
func (e *Extractor) ExtractFile(path, name string) (string, error) {
	mt, err := mimetype.DetectFile(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, err, "error reading uploaded file")
	}
	switch detectFormat(mt, name) {
	case formatDOCX:
		return e.readAndExtract(path, "error reading DOCX file", extractDOCX)
	case formatXLSX:
		return e.readAndExtract(path, "error reading XLSX file", extractExcel)
	default:
		return e.ExtractPDF(path)
	}
}

func (e *Extractor) readAndExtract(path, msg string, fn func([]byte) (string, error)) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, err, msg)
	}
	text, err := fn(content)
	if err != nil {
		return "", apperr.Wrap(apperr.KindExtraction, err, msg)
	}
	return text, nil
}

func detectFormat(mt *mimetype.MIME, name string) format {
	switch {
	case mt.Is(docxMIME):
		return formatDOCX
	case mt.Is(xlsxMIME):
		return formatXLSX
	case mt.Is("application/zip"):
		switch strings.ToLower(filepath.Ext(name)) {
		case ".docx":
			return formatDOCX
		case ".xlsx":
			return formatXLSX
		}
	}
	return formatPDF
}
