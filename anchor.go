package cdoc

import (
	"strconv"
	"strings"
	"unicode"
)

// Anchors returns one URL-safe anchor per record, in record order.
// Anchors come from the signature preview, or the brief when the record has
// no preview. Duplicates get numeric suffixes, so every anchor is unique.
func Anchors(records []DocRecord) []string {
	if len(records) == 0 {
		return nil
	}

	anchors := make([]string, 0, len(records))
	used := make(map[string]bool)
	next := make(map[string]int)

	for _, rec := range records {
		title := signatureName(rec.SignaturePreview)
		if title == "" {
			title = rec.Brief
		}
		baseAnchor := generateAnchor(title)
		if baseAnchor == "" {
			baseAnchor = "record"
		}

		// A suffixed candidate may already be taken by a literal anchor.
		anchor := baseAnchor
		for used[anchor] {
			next[baseAnchor]++
			anchor = baseAnchor + "-" + strconv.Itoa(next[baseAnchor])
		}
		used[anchor] = true

		anchors = append(anchors, anchor)
	}

	return anchors
}

// signatureName returns the identifier just before the first "(" of a
// signature preview, e.g. "addition" for "int addition(int a, int b)".
// Previews without a call shape are returned whole.
func signatureName(preview string) string {
	i := strings.Index(preview, "(")
	if i < 0 {
		return strings.TrimSuffix(preview, PreviewMarker)
	}
	fields := strings.FieldsFunc(preview[:i], func(r rune) bool {
		return unicode.IsSpace(r) || r == '*' || r == '&'
	})
	if len(fields) == 0 {
		return preview
	}
	return fields[len(fields)-1]
}

// generateAnchor creates a URL-safe anchor from a title.
// Converts to lowercase, replaces spaces with hyphens, removes special chars.
func generateAnchor(title string) string {
	var sb strings.Builder
	prevHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			sb.WriteRune(r)
			prevHyphen = false
		} else if unicode.IsSpace(r) || r == '-' {
			if !prevHyphen && sb.Len() > 0 {
				sb.WriteRune('-')
				prevHyphen = true
			}
		}
	}

	result := sb.String()
	// Trim trailing hyphen
	return strings.TrimSuffix(result, "-")
}
