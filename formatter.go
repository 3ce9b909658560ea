package cdoc

import (
	"fmt"
	"strings"
)

// FormatRecords formats records as plain text for terminal output.
// Records are separated by blank lines.
func FormatRecords(records []DocRecord) string {
	if len(records) == 0 {
		return ""
	}

	parts := make([]string, 0, len(records))
	for _, rec := range records {
		var b strings.Builder
		header := rec.SignaturePreview
		if header == "" {
			header = fmt.Sprintf("(line %d)", rec.Line)
		}
		b.WriteString(header)
		b.WriteString("\n  ")
		b.WriteString(rec.Brief)
		for _, p := range rec.Params {
			fmt.Fprintf(&b, "\n  param %s: %s", p.Name, p.Description)
		}
		if rec.Returns != "" {
			b.WriteString("\n  returns: ")
			b.WriteString(rec.Returns)
		}
		parts = append(parts, b.String())
	}

	return strings.Join(parts, "\n\n")
}
