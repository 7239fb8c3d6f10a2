package main

import (
	"github.com/dustin/go-humanize"

	"github.com/pescuma/tally/lib/model"
)

type ShowCmd struct {
	Month string `help:"Only show deltas of this month (format: 2006-01)."`
	Files bool   `short:"f" help:"Also list the individual file deltas."`
}

func (c *ShowCmd) Run(ctx *context) error {
	console := ctx.ws.Console()

	totals, err := ctx.ws.QueryMonthlyTotals()
	if err != nil {
		return err
	}

	for _, t := range totals {
		if c.Month != "" && t.Month != c.Month {
			continue
		}

		console.Printf("%v %v: %v file(s), %v line(s)\n",
			t.Month, t.Skill, humanize.Comma(int64(t.Files)), humanize.Comma(int64(t.Additions)))
	}

	if !c.Files {
		return nil
	}

	deltas, err := ctx.ws.ListFileDeltas(c.Month)
	if err != nil {
		return err
	}

	for _, d := range deltas {
		c.printDelta(ctx, d)
	}

	return nil
}

func (c *ShowCmd) printDelta(ctx *context, d *model.FileDelta) {
	ignored := ""
	if d.Ignore {
		ignored = " (ignored)"
	}

	ctx.ws.Console().Printf("   %v %v %v: %+d line(s)%v\n", d.Month, d.CommitHash, d.Path, d.Additions, ignored)
}
