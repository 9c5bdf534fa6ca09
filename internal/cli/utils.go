// Package cli provides output helpers for the askdoc command line.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// OutputFormat is the format for answer output.
type OutputFormat string

const (
	// OutputText is human-readable text (default).
	OutputText OutputFormat = "text"
	// OutputJSON is the same JSON body the HTTP API returns.
	OutputJSON OutputFormat = "json"
)

// ParseOutputFormat maps a -json flag to a format.
func ParseOutputFormat(jsonOut bool) OutputFormat {
	if jsonOut {
		return OutputJSON
	}
	return OutputText
}

// WriteAnswer writes answer to w. source is the file name or URL the question
// was about; payload is what gets encoded for OutputJSON.
func WriteAnswer(w io.Writer, source, answer string, payload interface{}, format OutputFormat) error {
	switch format {
	case OutputJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(payload)
	default:
		writeAnswerText(w, source, answer)
		return nil
	}
}

func writeAnswerText(w io.Writer, source, answer string) {
	fmt.Fprintf(w, "Source: %s\n", source)
	fmt.Fprintln(w, strings.Repeat("─", 57))
	fmt.Fprintln(w, strings.TrimRight(answer, "\n"))
}

// TruncateWords returns up to maxWords from the space-separated string.
func TruncateWords(s string, maxWords int) string {
	words := strings.Fields(s)
	if len(words) <= maxWords {
		return s
	}
	return strings.Join(words[:maxWords], " ") + "..."
}
