package main

import (
	"bytes"
	"fmt"

	"github.com/fwojciec/cdoc"
	"github.com/fwojciec/cdoc/catalog"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	source, err := findSource(deps, c.Name)
	if err != nil {
		return err
	}

	entries, err := deps.Entries.FindEntries(deps.Ctx, cdoc.EntryFilter{SourceID: &source.ID})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return err
	}
	records := cdoc.EntryRecords(entries)

	if c.Format == "text" {
		if len(records) == 0 {
			fmt.Fprintf(deps.Stdout, "No records for %q.\n", source.Name)
			return nil
		}
		fmt.Fprintln(deps.Stdout, cdoc.FormatRecords(records))
		return nil
	}

	format, err := cdoc.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return err
	}

	doc := &cdoc.Document{
		Title:       source.Name,
		Source:      source.Path,
		GeneratedAt: source.UpdatedAt,
		Records:     records,
	}

	var buf bytes.Buffer
	if err := deps.Renderer(format).Render(&buf, doc); err != nil {
		fmt.Fprintf(deps.Stderr, "error rendering %s: %v\n", source.Name, err)
		return err
	}
	_, err = deps.Stdout.Write(buf.Bytes())
	return err
}

// findSource looks up a source by catalog name and reports a missing one on
// stderr.
func findSource(deps *Dependencies, name string) (*cdoc.Source, error) {
	name = catalog.SourceName(name)
	sources, err := deps.Sources.FindSources(deps.Ctx, cdoc.SourceFilter{Name: &name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return nil, err
	}

	if len(sources) == 0 {
		fmt.Fprintf(deps.Stderr, "error: source %q not found. Use 'cdoc list' to see available sources.\n", name)
		return nil, cdoc.Errorf(cdoc.ENOTFOUND, "source %q not found", name)
	}
	return sources[0], nil
}
