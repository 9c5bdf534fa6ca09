package extract

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/hyperjump/askdoc/internal/apperr"
)

// buildPDF writes a PDF with one page per entry, each showing its text in
// Helvetica. Object offsets in the xref table are computed exactly.
func buildPDF(pages ...string) []byte {
	var objs []string
	kids := make([]string, len(pages))
	// 1: catalog, 2: pages, 3: font, then (page, contents) pairs.
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	objs = append(objs,
		"<< /Type /Catalog /Pages 2 0 R >>",
		fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	)
	for i, text := range pages {
		stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", text)
		objs = append(objs,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objs))
	for i, body := range objs {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, body)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objs)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objs)+1, xref)
	return buf.Bytes()
}

func TestJoinPages(t *testing.T) {
	tests := []struct {
		name  string
		pages []string
		want  string
	}{
		{"no pages", nil, ""},
		{"single page", []string{"only"}, "only"},
		{"pages in order", []string{"one", "two", "three"}, "one two three"},
		{"outer whitespace trimmed", []string{"\n lead", "tail \n"}, "lead tail"},
		{"inner whitespace kept", []string{"a  b", "c"}, "a  b c"},
		{"empty page keeps separator", []string{"a", "", "b"}, "a  b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinPages(tt.pages); got != tt.want {
				t.Errorf("joinPages(%q) = %q, want %q", tt.pages, got, tt.want)
			}
		})
	}
}

func TestExtractPDF_pagesInOrder(t *testing.T) {
	path := writeTemp(t, buildPDF("First", "Second", "Third"))
	got, err := NewExtractor().ExtractPDF(path)
	if err != nil {
		t.Fatalf("ExtractPDF: %v", err)
	}
	if got != "First Second Third" {
		t.Errorf("got %q", got)
	}
}

func TestExtractPDF_zeroPages(t *testing.T) {
	path := writeTemp(t, buildPDF())
	got, err := NewExtractor().ExtractPDF(path)
	if err != nil {
		t.Fatalf("ExtractPDF: %v", err)
	}
	if got != "" {
		t.Errorf("zero-page PDF should yield empty text, got %q", got)
	}
}

func TestExtractPDF_garbage(t *testing.T) {
	path := writeTemp(t, []byte("%PDF-1.4\nthis is truncated"))
	_, err := NewExtractor().ExtractPDF(path)
	if err == nil {
		t.Fatal("expected error")
	}
	if !apperr.Is(err, apperr.KindExtraction) {
		t.Errorf("kind: got %q", apperr.KindOf(err))
	}
	if !strings.HasPrefix(err.Error(), "error reading PDF file: ") {
		t.Errorf("message should wrap the cause: %q", err.Error())
	}
}
