package htmltomarkdown

import (
	"bytes"
	"fmt"
	"io"

	"github.com/fwojciec/cdoc"
	"gopkg.in/yaml.v3"
)

// Ensure Renderer implements cdoc.Renderer at compile time.
var _ cdoc.Renderer = (*Renderer)(nil)

// BodyRenderer renders the HTML content of a document without page chrome.
type BodyRenderer interface {
	RenderBody(w io.Writer, doc *cdoc.Document) error
}

// Renderer renders a document as Markdown with YAML front matter.
// Record text is escaped by the HTML renderer and then converted, so
// Markdown never sees raw markup from comments.
type Renderer struct {
	body BodyRenderer
	conv cdoc.Converter
}

// NewRenderer creates a new Renderer.
func NewRenderer(body BodyRenderer, conv cdoc.Converter) *Renderer {
	return &Renderer{body: body, conv: conv}
}

// frontMatter is the YAML header of a Markdown document.
type frontMatter struct {
	Title     string `yaml:"title"`
	Source    string `yaml:"source,omitempty"`
	Generated string `yaml:"generated"`
	Records   int    `yaml:"records"`
}

// FormatFrontMatter returns the YAML front matter block for doc.
func FormatFrontMatter(doc *cdoc.Document) (string, error) {
	out, err := yaml.Marshal(frontMatter{
		Title:     doc.Title,
		Source:    doc.Source,
		Generated: doc.GeneratedAt.Format("2006-01-02"),
		Records:   len(doc.Records),
	})
	if err != nil {
		return "", fmt.Errorf("encoding front matter: %w", err)
	}
	return "---\n" + string(out) + "---\n", nil
}

// Render writes doc as Markdown.
func (r *Renderer) Render(w io.Writer, doc *cdoc.Document) error {
	var body bytes.Buffer
	if err := r.body.RenderBody(&body, doc); err != nil {
		return fmt.Errorf("rendering HTML body: %w", err)
	}

	md, err := r.conv.Convert(body.String())
	if err != nil {
		return fmt.Errorf("converting to markdown: %w", err)
	}

	header, err := FormatFrontMatter(doc)
	if err != nil {
		return err
	}

	_, err = io.WriteString(w, header+"\n"+md+"\n")
	return err
}
