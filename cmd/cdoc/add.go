package main

import (
	"fmt"

	"github.com/fwojciec/cdoc"
	"github.com/fwojciec/cdoc/catalog"
)

// Run executes the add command.
func (c *AddCmd) Run(deps *Dependencies) error {
	paths, err := expandInputs(c.Patterns)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return err
	}

	if c.Concurrency > 0 {
		deps.Indexer.Concurrency = c.Concurrency
	}

	progress := func(event catalog.ProgressEvent) {
		switch event.Type {
		case catalog.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d files\n", event.Total)
		case catalog.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", catalog.TruncatePath(event.Path, 60), event.Error)
		}
	}

	result, err := deps.Indexer.Index(deps.Ctx, paths, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error indexing: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Indexed %d, unchanged %d, failed %d (%s, %s)\n",
		result.Indexed, result.Unchanged, result.Failed,
		catalog.FormatRecords(result.Records), catalog.FormatBytes(result.Bytes))

	if result.Failed > 0 && result.Indexed+result.Unchanged == 0 {
		return cdoc.Errorf(cdoc.EINVALID, "no files could be indexed")
	}
	return nil
}
