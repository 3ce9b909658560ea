// Package etree renders documentation records as XML using etree.
package etree

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/beevik/etree"
	"github.com/fwojciec/cdoc"
)

// Ensure Renderer implements cdoc.Renderer at compile time.
var _ cdoc.Renderer = (*Renderer)(nil)

// Renderer writes documents as XML. Text and attribute values are escaped by
// etree on output.
type Renderer struct {
	// Indent is the number of spaces per nesting level. Zero writes compact XML.
	Indent int
}

// NewRenderer creates a new Renderer with two-space indentation.
func NewRenderer() *Renderer {
	return &Renderer{Indent: 2}
}

// Render writes doc as an XML document.
func (r *Renderer) Render(w io.Writer, doc *cdoc.Document) error {
	out := BuildDocument(doc)
	if r.Indent > 0 {
		out.Indent(r.Indent)
	}
	if _, err := out.WriteTo(w); err != nil {
		return fmt.Errorf("writing XML: %w", err)
	}
	return nil
}

// BuildDocument converts doc into an XML tree.
func BuildDocument(doc *cdoc.Document) *etree.Document {
	out := etree.NewDocument()
	out.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := out.CreateElement("documentation")
	root.CreateAttr("title", doc.Title)
	if doc.Source != "" {
		root.CreateAttr("source", doc.Source)
	}
	root.CreateAttr("generated", doc.GeneratedAt.Format(time.RFC3339))

	for _, rec := range doc.Records {
		el := root.CreateElement("record")
		if rec.Line > 0 {
			el.CreateAttr("line", strconv.Itoa(rec.Line))
		}
		if rec.SignaturePreview != "" {
			el.CreateElement("signature").SetText(rec.SignaturePreview)
		}
		el.CreateElement("brief").SetText(rec.Brief)
		if len(rec.Params) > 0 {
			params := el.CreateElement("params")
			for _, p := range rec.Params {
				param := params.CreateElement("param")
				param.CreateAttr("name", p.Name)
				param.SetText(p.Description)
			}
		}
		if rec.Returns != "" {
			el.CreateElement("returns").SetText(rec.Returns)
		}
	}

	return out
}
