// Package catalog indexes annotated source files into the catalog.
// It coordinates reading, extraction, change detection and storage of
// doc records.
package catalog

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/fwojciec/cdoc"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of files read at once when Indexer
// does not specify one.
const DefaultConcurrency = 8

// Indexer extracts doc records from source files and stores them.
type Indexer struct {
	Reader      cdoc.SourceReader
	Sources     cdoc.SourceService
	Entries     cdoc.EntryService
	Concurrency int
}

// Result holds the outcome of an index operation.
type Result struct {
	Indexed   int
	Unchanged int
	Failed    int
	Records   int
	Bytes     int
}

// ProgressEvent reports progress during an index operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Path      string
	Records   int
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting index progress.
type ProgressFunc func(event ProgressEvent)

// extractResult holds the outcome of processing a single file.
type extractResult struct {
	position int
	path     string
	records  []cdoc.DocRecord
	hash     string
	size     int
	err      error
}

// Index reads and extracts every path concurrently, then stores the results
// in input order. A source whose content hash matches the stored one keeps
// its entries. Per-file failures are counted, not returned.
func (ix *Indexer) Index(ctx context.Context, paths []string, progress ProgressFunc) (*Result, error) {
	concurrency := ix.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan extractResult, len(paths))

	var completed atomic.Int64
	total := len(paths)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, path := range paths {
			g.Go(func() error {
				resultCh <- ix.extract(gctx, i, path)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]extractResult, len(paths))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Path:      r.path,
			Records:   len(r.records),
		}
		if r.err != nil {
			event.Type = ProgressFailed
			event.Error = r.err
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var res Result
	for _, r := range results {
		if r.err != nil {
			res.Failed++
			continue
		}

		changed, err := ix.store(ctx, r)
		if err != nil {
			res.Failed++
			if progress != nil {
				progress(ProgressEvent{
					Type:      ProgressFailed,
					Completed: total,
					Total:     total,
					Path:      r.path,
					Error:     err,
				})
			}
			continue
		}

		if changed {
			res.Indexed++
		} else {
			res.Unchanged++
		}
		res.Records += len(r.records)
		res.Bytes += r.size
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &res, nil
}

// extract reads and parses a single file.
func (ix *Indexer) extract(ctx context.Context, position int, path string) extractResult {
	result := extractResult{
		position: position,
		path:     path,
	}

	src, err := ix.Reader.ReadSource(ctx, path)
	if err != nil {
		result.err = err
		return result
	}

	result.records = cdoc.Extract(src)
	result.hash = computeHash(src)
	result.size = len(src)
	return result
}

// store writes the records of r, replacing any previous entries of the same
// source. It reports false when the stored hash already matched.
func (ix *Indexer) store(ctx context.Context, r extractResult) (bool, error) {
	name := SourceName(r.path)
	existing, err := ix.Sources.FindSources(ctx, cdoc.SourceFilter{Name: &name})
	if err != nil {
		return false, fmt.Errorf("finding source: %w", err)
	}

	if len(existing) == 0 {
		source := &cdoc.Source{Name: name, Path: r.path, ContentHash: r.hash}
		if err := ix.Sources.CreateSource(ctx, source); err != nil {
			return false, fmt.Errorf("creating source: %w", err)
		}
		if _, err := ix.Entries.CreateEntries(ctx, source.ID, r.records); err != nil {
			return false, fmt.Errorf("storing entries: %w", err)
		}
		return true, nil
	}

	source := existing[0]
	if source.ContentHash == r.hash && source.Path == r.path {
		return false, nil
	}

	if err := ix.Entries.DeleteEntriesBySource(ctx, source.ID); err != nil {
		return false, fmt.Errorf("clearing entries: %w", err)
	}
	if _, err := ix.Entries.CreateEntries(ctx, source.ID, r.records); err != nil {
		return false, fmt.Errorf("storing entries: %w", err)
	}
	if _, err := ix.Sources.UpdateSource(ctx, source.ID, cdoc.SourceUpdate{
		Path:        &r.path,
		ContentHash: &r.hash,
	}); err != nil {
		return false, fmt.Errorf("updating source: %w", err)
	}
	return true, nil
}

// SourceName returns the catalog name of the file at path. URLs are used
// as given.
func SourceName(path string) string {
	if strings.Contains(path, "://") {
		return path
	}
	return filepath.ToSlash(filepath.Clean(path))
}
