package slog

import (
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/cdoc"
)

// Ensure LoggingRenderer implements cdoc.Renderer.
var _ cdoc.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   cdoc.Renderer
	format cdoc.Format
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer for the given format.
func NewLoggingRenderer(next cdoc.Renderer, format cdoc.Format, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, format: format, logger: logger}
}

// Render delegates to the wrapped renderer and logs the document size.
func (r *LoggingRenderer) Render(w io.Writer, doc *cdoc.Document) (err error) {
	cw := &countingWriter{w: w}
	defer func(begin time.Time) {
		r.logger.Info("render",
			"format", string(r.format),
			"source", doc.Source,
			"records", len(doc.Records),
			"bytes", cw.n,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(cw, doc)
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
