package cdoc

import (
	"io"
	"time"
)

// Document is a set of records ready for rendering.
type Document struct {
	Title       string      `json:"title"`
	Source      string      `json:"source"`
	GeneratedAt time.Time   `json:"generatedAt"`
	Records     []DocRecord `json:"records"`
}

// NewDocument extracts the records of src into a Document.
func NewDocument(title, source, src string) *Document {
	return &Document{
		Title:       title,
		Source:      source,
		GeneratedAt: time.Now().UTC(),
		Records:     Extract(src),
	}
}

// Renderer writes a Document in a presentation format.
//
// Records carry raw text. Implementations must escape Brief, parameter
// descriptions, Returns and SignaturePreview for their format.
type Renderer interface {
	Render(w io.Writer, doc *Document) error
}

// Format names an output format.
type Format string

// Supported output formats.
const (
	FormatHTML     Format = "html"
	FormatMarkdown Format = "markdown"
	FormatJSON     Format = "json"
	FormatXML      Format = "xml"
)

// Formats lists the supported output formats.
func Formats() []Format {
	return []Format{FormatHTML, FormatMarkdown, FormatJSON, FormatXML}
}

// ParseFormat validates a format name. "md" is accepted for markdown.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatHTML, FormatMarkdown, FormatJSON, FormatXML:
		return Format(s), nil
	case "md":
		return FormatMarkdown, nil
	}
	return "", Errorf(EINVALID, "unknown format %q", s)
}

// Ext returns the file extension for the format, including the dot.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	case FormatXML:
		return ".xml"
	}
	return ".html"
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms an HTML fragment into Markdown.
	Convert(html string) (string, error)
}
