package cdoc

import "context"

// OutputStore persists rendered documents with atomic semantics.
// Save writes to a temporary location; Commit makes changes permanent;
// Abort discards pending changes.
type OutputStore interface {
	Save(ctx context.Context, name string, doc *Document) error
	Commit() error
	Abort() error
}
