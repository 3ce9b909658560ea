package mock

import (
	"context"

	"github.com/fwojciec/cdoc"
)

var _ cdoc.OutputStore = (*OutputStore)(nil)

// OutputStore is a mock implementation of cdoc.OutputStore.
type OutputStore struct {
	SaveFn   func(ctx context.Context, name string, doc *cdoc.Document) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *OutputStore) Save(ctx context.Context, name string, doc *cdoc.Document) error {
	return s.SaveFn(ctx, name, doc)
}

func (s *OutputStore) Commit() error {
	return s.CommitFn()
}

func (s *OutputStore) Abort() error {
	return s.AbortFn()
}
