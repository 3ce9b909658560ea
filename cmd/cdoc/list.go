package main

import (
	"fmt"

	"github.com/fwojciec/cdoc"
	"github.com/fwojciec/cdoc/catalog"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	sources, err := deps.Sources.FindSources(deps.Ctx, cdoc.SourceFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return err
	}

	if len(sources) == 0 {
		fmt.Fprintln(deps.Stdout, "No sources found. Use 'cdoc add' to catalog some.")
		return nil
	}

	for _, s := range sources {
		entries, err := deps.Entries.FindEntries(deps.Ctx, cdoc.EntryFilter{SourceID: &s.ID})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.Name, catalog.FormatRecords(len(entries)), s.Path)
	}

	return nil
}
