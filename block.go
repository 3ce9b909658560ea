package cdoc

import (
	"iter"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Doc-comment delimiters. A plain "/*" comment is not a doc-comment.
const (
	docOpen  = "/**"
	docClose = "*/"
)

// RawBlock is a doc-comment body paired with the code that follows it.
type RawBlock struct {
	// CommentBody is the text strictly between "/**" and "*/".
	CommentBody string

	// TrailingContext is the code after the comment, up to and including the
	// first ";" or ")". Empty when no terminator precedes the next
	// doc-comment or the end of input.
	TrailingContext string

	// Line is the 1-based line of the opening "/**".
	Line int
}

// Blocks scans src for doc-comments and yields them in source order.
// Nested comments are not supported: the first "*/" after "/**" closes the
// block. An unterminated "/**" ends the scan.
func Blocks(src string) iter.Seq[RawBlock] {
	return func(yield func(RawBlock) bool) {
		pos, line := 0, 1
		for {
			i := strings.Index(src[pos:], docOpen)
			if i < 0 {
				return
			}
			open := pos + i
			line += strings.Count(src[pos:open], "\n")

			bodyStart := open + len(docOpen)
			j := strings.Index(src[bodyStart:], docClose)
			if j < 0 {
				return
			}
			bodyEnd := bodyStart + j
			after := bodyEnd + len(docClose)

			block := RawBlock{
				CommentBody:     src[bodyStart:bodyEnd],
				TrailingContext: trailingContext(src[after:]),
				Line:            line,
			}
			if !yield(block) {
				return
			}

			line += strings.Count(src[open:after], "\n")
			pos = after
		}
	}
}

// trailingContext returns the text at the start of rest, after leading
// whitespace, up to and including the first ";" or ")". The search stops at
// the next doc-comment so a declaration is never borrowed from a later block.
func trailingContext(rest string) string {
	rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
	if next := strings.Index(rest, docOpen); next >= 0 {
		rest = rest[:next]
	}
	end := strings.IndexAny(rest, ";)")
	if end < 0 {
		return ""
	}
	return rest[:end+1]
}

// Preview limits and terminator for signature previews.
const (
	PreviewLength = 50
	PreviewMarker = "..."
)

// Preview renders a trailing context as a display hint: the first
// PreviewLength characters, followed by PreviewMarker if anything was cut.
func Preview(context string) string {
	if utf8.RuneCountInString(context) <= PreviewLength {
		return context
	}
	n := 0
	for i := range context {
		if n == PreviewLength {
			return context[:i] + PreviewMarker
		}
		n++
	}
	return context
}
