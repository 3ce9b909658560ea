package mock

import (
	"context"

	"github.com/fwojciec/cdoc"
)

var _ cdoc.EntryService = (*EntryService)(nil)

// EntryService is a mock implementation of cdoc.EntryService.
type EntryService struct {
	CreateEntriesFn         func(ctx context.Context, sourceID string, records []cdoc.DocRecord) ([]*cdoc.Entry, error)
	FindEntriesFn           func(ctx context.Context, filter cdoc.EntryFilter) ([]*cdoc.Entry, error)
	DeleteEntriesBySourceFn func(ctx context.Context, sourceID string) error
}

func (s *EntryService) CreateEntries(ctx context.Context, sourceID string, records []cdoc.DocRecord) ([]*cdoc.Entry, error) {
	return s.CreateEntriesFn(ctx, sourceID, records)
}

func (s *EntryService) FindEntries(ctx context.Context, filter cdoc.EntryFilter) ([]*cdoc.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}

func (s *EntryService) DeleteEntriesBySource(ctx context.Context, sourceID string) error {
	return s.DeleteEntriesBySourceFn(ctx, sourceID)
}
