package cdoc

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Param is a documented parameter.
type Param struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// DocRecord is the structured documentation extracted from one doc-comment.
// A DocRecord always has a non-empty Brief.
type DocRecord struct {
	SignaturePreview string  `json:"signaturePreview"`
	Brief            string  `json:"brief"`
	Params           []Param `json:"params"`
	Returns          string  `json:"returns"`
	Line             int     `json:"line"`
}

// Tag classifies a single comment line.
type Tag int

// Tag values returned by ClassifyLine.
const (
	// TagNone marks a prose or blank line.
	TagNone Tag = iota
	TagBrief
	TagParam
	TagReturn
	TagUnrecognized
)

// String returns the tag token, or "" for TagNone.
func (t Tag) String() string {
	switch t {
	case TagBrief:
		return "@brief"
	case TagParam:
		return "@param"
	case TagReturn:
		return "@return"
	case TagUnrecognized:
		return "@unrecognized"
	}
	return ""
}

// ClassifyLine reports which tag a cleaned comment line carries and the text
// after the tag token. For TagNone the whole line is returned.
func ClassifyLine(line string) (Tag, string) {
	if rest, ok := cutTag(line, "@brief"); ok {
		return TagBrief, rest
	}
	if rest, ok := cutTag(line, "@param"); ok {
		return TagParam, rest
	}
	if rest, ok := cutTag(line, "@return"); ok {
		return TagReturn, rest
	}
	if rest, ok := cutTag(line, "@returns"); ok {
		return TagReturn, rest
	}
	if strings.HasPrefix(line, "@") {
		return TagUnrecognized, line
	}
	return TagNone, line
}

// cutTag matches tag as a whole token at the start of line: it must be
// followed by whitespace or end the line.
func cutTag(line, tag string) (string, bool) {
	rest, ok := strings.CutPrefix(line, tag)
	if !ok {
		return "", false
	}
	if rest == "" {
		return "", true
	}
	if r, _ := utf8.DecodeRuneInString(rest); !unicode.IsSpace(r) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

// ParseBlock turns a raw block into a DocRecord. It reports false when no
// brief could be derived, in which case the block produces no record.
func ParseBlock(b RawBlock) (DocRecord, bool) {
	rec := DocRecord{
		SignaturePreview: Preview(b.TrailingContext),
		Line:             b.Line,
	}

	for _, line := range CleanLines(b.CommentBody) {
		tag, rest := ClassifyLine(line)
		switch tag {
		case TagBrief:
			rec.Brief = rest
		case TagParam:
			if p, ok := parseParam(rest); ok {
				rec.Params = append(rec.Params, p)
			}
		case TagReturn:
			rec.Returns = rest
		case TagNone:
			// First prose line stands in for a missing @brief.
			if line != "" && rec.Brief == "" {
				rec.Brief = line
			}
		}
	}

	if rec.Brief == "" {
		return DocRecord{}, false
	}
	return rec, true
}

// parseParam splits "name description" on the first run of whitespace.
// A parameter without a description is dropped.
func parseParam(s string) (Param, bool) {
	i := strings.IndexFunc(s, unicode.IsSpace)
	if i < 0 {
		return Param{}, false
	}
	desc := strings.TrimSpace(s[i:])
	if desc == "" {
		return Param{}, false
	}
	return Param{Name: s[:i], Description: desc}, true
}

// CleanLines splits a comment body into lines with the leading decoration
// removed: surrounding whitespace, then one "*" and at most one space or tab
// after it.
func CleanLines(body string) []string {
	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimLeftFunc(line, unicode.IsSpace)
		if rest, ok := strings.CutPrefix(line, "*"); ok {
			if len(rest) > 0 && (rest[0] == ' ' || rest[0] == '\t') {
				rest = rest[1:]
			}
			line = rest
		}
		lines[i] = strings.TrimSpace(line)
	}
	return lines
}

// Records yields the DocRecords of src in source order. Blocks without a
// derivable brief are skipped.
func Records(src string) iter.Seq[DocRecord] {
	return func(yield func(DocRecord) bool) {
		for b := range Blocks(src) {
			rec, ok := ParseBlock(b)
			if !ok {
				continue
			}
			if !yield(rec) {
				return
			}
		}
	}
}

// Extract returns every DocRecord of src in source order.
func Extract(src string) []DocRecord {
	var records []DocRecord
	for rec := range Records(src) {
		records = append(records, rec)
	}
	return records
}
