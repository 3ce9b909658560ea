// Package html renders documentation records as a standalone HTML page.
package html

import (
	"html/template"
	"io"

	"github.com/fwojciec/cdoc"
)

// Ensure Renderer implements cdoc.Renderer at compile time.
var _ cdoc.Renderer = (*Renderer)(nil)

// Renderer renders documents with html/template, which escapes every record
// field for its HTML context.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer creates a new Renderer.
func NewRenderer() *Renderer {
	return &Renderer{tmpl: template.Must(template.New("page").Parse(pageTemplate))}
}

// block is a record with its page anchor.
type block struct {
	Anchor string
	cdoc.DocRecord
}

type pageData struct {
	*cdoc.Document
	Blocks []block
}

func newPageData(doc *cdoc.Document) pageData {
	anchors := cdoc.Anchors(doc.Records)
	blocks := make([]block, len(doc.Records))
	for i, rec := range doc.Records {
		blocks[i] = block{Anchor: anchors[i], DocRecord: rec}
	}
	return pageData{Document: doc, Blocks: blocks}
}

// Render writes doc as a complete HTML page.
func (r *Renderer) Render(w io.Writer, doc *cdoc.Document) error {
	return r.tmpl.ExecuteTemplate(w, "page", newPageData(doc))
}

// RenderBody writes only the page content, without <html>, <head> or styles.
// It is the input of the Markdown conversion.
func (r *Renderer) RenderBody(w io.Writer, doc *cdoc.Document) error {
	return r.tmpl.ExecuteTemplate(w, "body", newPageData(doc))
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<title>{{.Title}}</title>
<style>
body { font-family: 'Segoe UI', Tahoma, Geneva, Verdana, sans-serif; background-color: #f4f4f9; padding: 20px; color: #333; }
.container { max-width: 800px; margin: 0 auto; background: white; padding: 30px; box-shadow: 0 0 10px rgba(0,0,0,0.1); border-radius: 8px; }
h1 { text-align: center; color: #2c3e50; border-bottom: 2px solid #3498db; padding-bottom: 10px; }
.doc-block { margin-bottom: 40px; border-left: 5px solid #3498db; padding-left: 15px; }
.func-sig { font-family: 'Courier New', monospace; background: #eee; padding: 5px; font-weight: bold; display: inline-block; border-radius: 4px; }
.description { margin: 10px 0; font-style: italic; }
table { width: 100%; border-collapse: collapse; margin-top: 10px; }
th, td { text-align: left; padding: 8px; border-bottom: 1px solid #ddd; }
th { background-color: #f8f9fa; color: #555; width: 30%; }
.tag-title { font-weight: bold; color: #e67e22; margin-top: 10px; display: block; }
</style>
</head>
<body>
<div class="container">
{{template "body" .}}
</div>
</body>
</html>
{{define "body"}}<h1>{{.Title}}</h1>
<p class="meta">{{if .Source}}Source: <code>{{.Source}}</code>. {{end}}Generated {{.GeneratedAt.Format "2006-01-02 15:04"}}.</p>
{{if not .Blocks}}<p class="empty">No documentation found.</p>
{{else}}<ul class="toc">
{{range .Blocks}}<li><a href="#{{.Anchor}}">{{if .SignaturePreview}}{{.SignaturePreview}}{{else}}{{.Brief}}{{end}}</a></li>
{{end}}</ul>
{{range .Blocks}}<div class="doc-block" id="{{.Anchor}}">
{{if .SignaturePreview}}<pre class="func-sig"><code>{{.SignaturePreview}}</code></pre>
{{end}}<p class="description">{{.Brief}}</p>
{{if .Params}}<span class="tag-title">Parameters:</span>
<table class="params">
<thead><tr><th>Name</th><th>Description</th></tr></thead>
<tbody>
{{range .Params}}<tr><td class="param-name"><code>{{.Name}}</code></td><td class="param-desc">{{.Description}}</td></tr>
{{end}}</tbody>
</table>
{{end}}{{if .Returns}}<span class="tag-title">Returns:</span>
<p class="returns">{{.Returns}}</p>
{{end}}</div>
<hr>
{{end}}{{end}}{{end}}`
