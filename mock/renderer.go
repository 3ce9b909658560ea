package mock

import (
	"io"

	"github.com/fwojciec/cdoc"
)

var _ cdoc.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of cdoc.Renderer.
type Renderer struct {
	RenderFn func(w io.Writer, doc *cdoc.Document) error
}

func (r *Renderer) Render(w io.Writer, doc *cdoc.Document) error {
	return r.RenderFn(w, doc)
}
