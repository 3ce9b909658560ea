package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/cdoc"
)

// Ensure LoggingSourceService implements cdoc.SourceService.
var _ cdoc.SourceService = (*LoggingSourceService)(nil)

// LoggingSourceService wraps a SourceService with logging of writes.
// Reads are delegated without logging.
type LoggingSourceService struct {
	next   cdoc.SourceService
	logger *slog.Logger
}

// NewLoggingSourceService creates a new LoggingSourceService.
func NewLoggingSourceService(next cdoc.SourceService, logger *slog.Logger) *LoggingSourceService {
	return &LoggingSourceService{next: next, logger: logger}
}

// CreateSource delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) CreateSource(ctx context.Context, source *cdoc.Source) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create source",
			"name", source.Name,
			"id", source.ID,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateSource(ctx, source)
}

// FindSourceByID delegates to the wrapped service.
func (s *LoggingSourceService) FindSourceByID(ctx context.Context, id string) (*cdoc.Source, error) {
	return s.next.FindSourceByID(ctx, id)
}

// FindSources delegates to the wrapped service.
func (s *LoggingSourceService) FindSources(ctx context.Context, filter cdoc.SourceFilter) ([]*cdoc.Source, error) {
	return s.next.FindSources(ctx, filter)
}

// UpdateSource delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) UpdateSource(ctx context.Context, id string, upd cdoc.SourceUpdate) (source *cdoc.Source, err error) {
	defer func(begin time.Time) {
		s.logger.Info("update source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.UpdateSource(ctx, id, upd)
}

// DeleteSource delegates to the wrapped service and logs the operation.
func (s *LoggingSourceService) DeleteSource(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete source",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteSource(ctx, id)
}
