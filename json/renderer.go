// Package json renders documentation records as JSON.
package json

import (
	"encoding/json"
	"io"

	"github.com/fwojciec/cdoc"
)

// Ensure Renderer implements cdoc.Renderer at compile time.
var _ cdoc.Renderer = (*Renderer)(nil)

// Renderer writes documents as indented JSON.
type Renderer struct{}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render writes doc as a JSON object. Records and params are always arrays,
// never null. HTML-sensitive characters are escaped so the output can be
// embedded in a page.
func (r *Renderer) Render(w io.Writer, doc *cdoc.Document) error {
	out := *doc
	out.Records = make([]cdoc.DocRecord, len(doc.Records))
	for i, rec := range doc.Records {
		if rec.Params == nil {
			rec.Params = []cdoc.Param{}
		}
		out.Records[i] = rec
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(&out)
}
