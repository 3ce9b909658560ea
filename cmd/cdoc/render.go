package main

import (
	"bytes"
	"fmt"
	"path/filepath"

	"github.com/fwojciec/cdoc"
	"github.com/fwojciec/cdoc/fs"
)

// Run executes the render command.
func (c *RenderCmd) Run(deps *Dependencies) error {
	format, err := cdoc.ParseFormat(c.Format)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return err
	}

	paths, err := expandInputs(c.Patterns)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return err
	}

	renderer := deps.Renderer(format)

	if c.Out == "" {
		if len(paths) > 1 {
			fmt.Fprintf(deps.Stderr, "error: %d files matched; use --out to render more than one\n", len(paths))
			return cdoc.Errorf(cdoc.EINVALID, "--out required for multiple files")
		}
		doc, err := c.document(deps, paths[0])
		if err != nil {
			return err
		}
		var buf bytes.Buffer
		if err := renderer.Render(&buf, doc); err != nil {
			fmt.Fprintf(deps.Stderr, "error rendering %s: %v\n", paths[0], err)
			return err
		}
		_, err = deps.Stdout.Write(buf.Bytes())
		return err
	}

	out := filepath.Clean(c.Out)
	store := deps.OutputStore(out, renderer, format)

	var records int
	for _, path := range paths {
		doc, err := c.document(deps, path)
		if err != nil {
			_ = store.Abort()
			return err
		}
		if err := store.Save(deps.Ctx, path, doc); err != nil {
			_ = store.Abort()
			fmt.Fprintf(deps.Stderr, "error rendering %s: %s\n", path, errorText(err))
			return err
		}
		records += len(doc.Records)
	}

	if err := store.Commit(); err != nil {
		_ = store.Abort()
		fmt.Fprintf(deps.Stderr, "error writing %s: %s\n", out, errorText(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Rendered %d files (%d records) to %s\n", len(paths), records, out)
	return nil
}

// NewOutputStore returns a store that atomically replaces the directory out.
func NewOutputStore(out string, renderer cdoc.Renderer, format cdoc.Format) cdoc.OutputStore {
	return fs.NewOutputStore(filepath.Dir(out), filepath.Base(out), renderer, format)
}

// document reads path and extracts its records.
func (c *RenderCmd) document(deps *Dependencies, path string) (*cdoc.Document, error) {
	src, err := deps.Reader.ReadSource(deps.Ctx, path)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return nil, err
	}
	title := c.Title
	if title == "" {
		title = filepath.Base(path)
	}
	return cdoc.NewDocument(title, path, src), nil
}

// errorText returns the message of an application error, or the full text of
// any other error.
func errorText(err error) string {
	if cdoc.ErrorCode(err) == cdoc.EINTERNAL {
		return err.Error()
	}
	return cdoc.ErrorMessage(err)
}
