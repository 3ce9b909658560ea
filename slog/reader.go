// Package slog provides log/slog decorators for cdoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdoc"
)

// Ensure LoggingSourceReader implements cdoc.SourceReader.
var _ cdoc.SourceReader = (*LoggingSourceReader)(nil)

// LoggingSourceReader wraps a SourceReader with debug logging.
type LoggingSourceReader struct {
	next   cdoc.SourceReader
	logger *slog.Logger
}

// NewLoggingSourceReader creates a new LoggingSourceReader.
func NewLoggingSourceReader(next cdoc.SourceReader, logger *slog.Logger) *LoggingSourceReader {
	return &LoggingSourceReader{next: next, logger: logger}
}

// ReadSource delegates to the wrapped reader and logs the operation.
func (r *LoggingSourceReader) ReadSource(ctx context.Context, path string) (src string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("read source",
			"path", path,
			"bytes", len(src),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.ReadSource(ctx, path)
}
