package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/marketway"
)

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	lines, err := deps.Lines.FindLines(deps.Ctx, marketway.LineFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if len(lines) == 0 {
		fmt.Fprintln(deps.Stdout, "No lines found. Use 'marketway seed' to load a catalog.")
		return nil
	}

	for _, l := range lines {
		fmt.Fprintf(deps.Stdout, "%-5s %2d  %s  (%s)\n",
			l.Layout.Column, l.Layout.Order, l.Name, strings.Join(l.Items, ", "))
	}
	return nil
}

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return marketway.Errorf(marketway.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Lines.DeleteLine(deps.Ctx, c.Name); err != nil {
		if marketway.ErrorCode(err) == marketway.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: line %q not found. Use 'marketway list' to see available lines.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		}
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted line %q\n", c.Name)
	return nil
}
