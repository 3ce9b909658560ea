package mock

import (
	"context"

	"github.com/fwojciec/cdoc"
)

var _ cdoc.SourceService = (*SourceService)(nil)

// SourceService is a mock implementation of cdoc.SourceService.
type SourceService struct {
	CreateSourceFn   func(ctx context.Context, source *cdoc.Source) error
	FindSourceByIDFn func(ctx context.Context, id string) (*cdoc.Source, error)
	FindSourcesFn    func(ctx context.Context, filter cdoc.SourceFilter) ([]*cdoc.Source, error)
	UpdateSourceFn   func(ctx context.Context, id string, upd cdoc.SourceUpdate) (*cdoc.Source, error)
	DeleteSourceFn   func(ctx context.Context, id string) error
}

func (s *SourceService) CreateSource(ctx context.Context, source *cdoc.Source) error {
	return s.CreateSourceFn(ctx, source)
}

func (s *SourceService) FindSourceByID(ctx context.Context, id string) (*cdoc.Source, error) {
	return s.FindSourceByIDFn(ctx, id)
}

func (s *SourceService) FindSources(ctx context.Context, filter cdoc.SourceFilter) ([]*cdoc.Source, error) {
	return s.FindSourcesFn(ctx, filter)
}

func (s *SourceService) UpdateSource(ctx context.Context, id string, upd cdoc.SourceUpdate) (*cdoc.Source, error) {
	return s.UpdateSourceFn(ctx, id, upd)
}

func (s *SourceService) DeleteSource(ctx context.Context, id string) error {
	return s.DeleteSourceFn(ctx, id)
}

var _ cdoc.SourceReader = (*SourceReader)(nil)

// SourceReader is a mock implementation of cdoc.SourceReader.
type SourceReader struct {
	ReadSourceFn func(ctx context.Context, path string) (string, error)
}

func (r *SourceReader) ReadSource(ctx context.Context, path string) (string, error) {
	return r.ReadSourceFn(ctx, path)
}
