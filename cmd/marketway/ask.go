package main

import (
	"fmt"
	"io"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/resolve"
)

// Run executes the ask command.
func (c *AskCmd) Run(deps *Dependencies) error {
	answer, err := deps.Asker.Ask(deps.Ctx, marketway.Input{
		Modality: marketway.ModalityTyped,
		Text:     c.Question,
		Position: marketway.Position(c.From),
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, answer.Text)
	for _, r := range answer.Routes {
		fmt.Fprintf(deps.Stdout, "\n%s\n", r.Directions)
	}
	if answer.Provenance != marketway.ProvenanceLocal {
		fmt.Fprintf(deps.Stdout, "\n(source: %s)\n", answer.Provenance)
	}
	return nil
}

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	lines, err := deps.Directory.SearchLines(deps.Ctx, c.Product)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if len(lines) == 0 {
		fmt.Fprintf(deps.Stdout, "No line sells %q.\n", c.Product)
		return nil
	}

	for _, l := range lines {
		printLine(deps.Stdout, l)
	}
	return nil
}

// Run executes the line command.
func (c *LineCmd) Run(deps *Dependencies) error {
	line, err := deps.Directory.FindLine(deps.Ctx, c.Name)
	if err != nil {
		if marketway.ErrorCode(err) == marketway.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: line %q not found. Use 'marketway list' to see available lines.\n", c.Name)
		} else {
			fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		}
		return err
	}

	printLine(deps.Stdout, line)
	return nil
}

// Run executes the navigate command.
func (c *NavigateCmd) Run(deps *Dependencies) error {
	route, err := deps.Navigator.Navigate(deps.Ctx, marketway.Position(c.From), c.Line)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, route.Directions)
	return nil
}

// Run executes the history command.
func (c *HistoryCmd) Run(deps *Dependencies) error {
	history, err := deps.Directory.History(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if history == "" {
		fmt.Fprintln(deps.Stdout, "No market history recorded.")
		return nil
	}

	fmt.Fprintln(deps.Stdout, history)
	return nil
}

func printLine(w io.Writer, l *marketway.Line) {
	fmt.Fprintln(w, resolve.DescribeLine(l))
}
