package main

import (
	"fmt"

	"github.com/fwojciec/marketway"
	"github.com/fwojciec/marketway/goldmark"
	"github.com/fwojciec/marketway/yaml"
)

// Run executes the seed command.
func (c *SeedCmd) Run(deps *Dependencies) error {
	seed, err := yaml.Load(c.File)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	// Validate the whole catalog before touching the store.
	if _, err := marketway.NewCatalog(seed.Market, seed.Lines, ""); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	history, err := goldmark.PlainText([]byte(seed.History))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
		return err
	}

	if c.Replace {
		existing, err := deps.Lines.FindLines(deps.Ctx, marketway.LineFilter{})
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
			return err
		}
		for _, l := range existing {
			if err := deps.Lines.DeleteLine(deps.Ctx, l.Name); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
				return err
			}
		}
	}

	for _, l := range seed.Lines {
		if err := deps.Lines.CreateLine(deps.Ctx, l); err != nil {
			if marketway.ErrorCode(err) == marketway.ECONFLICT {
				fmt.Fprintf(deps.Stderr, "error: %s. Use --replace to overwrite stored lines.\n", marketway.ErrorMessage(err))
			} else {
				fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
			}
			return err
		}
	}

	if history != "" {
		if err := deps.History.SetHistory(deps.Ctx, history); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", marketway.ErrorMessage(err))
			return err
		}
	}

	market := seed.Market
	if market == "" {
		market = deps.Market
	}
	fmt.Fprintf(deps.Stdout, "Seeded %d lines for %s\n", len(seed.Lines), market)
	return nil
}
