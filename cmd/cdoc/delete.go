package main

import (
	"fmt"

	"github.com/fwojciec/cdoc"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return cdoc.Errorf(cdoc.EINVALID, "use --force to confirm deletion")
	}

	source, err := findSource(deps, c.Name)
	if err != nil {
		return err
	}

	if err := deps.Sources.DeleteSource(deps.Ctx, source.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", cdoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted source %q\n", source.Name)
	return nil
}
