package main

import (
	stdcontext "context"

	"github.com/pescuma/tally/lib/attribution"
	"github.com/pescuma/tally/lib/model"
)

type DiffFileCmd struct {
	Project string `arg:"" help:"Project ID or full path on the server."`
	Commit  string `arg:"" help:"Commit hash."`
	Path    string `arg:"" help:"File path inside the repository."`

	Change string `default:"modification" help:"Claimed change type: modification, addition, removal or rename."`
}

func (c *DiffFileCmd) Run(ctx *context) error {
	change, err := model.ParseFileChangeType(c.Change)
	if err != nil {
		return err
	}

	file, err := ctx.ws.DiffFile(stdcontext.Background(), c.Project, c.Commit, c.Path, change)
	if err != nil {
		return err
	}

	ctx.ws.Console().Printf("%v: %+d line(s) (%v)\n", file.Path, file.Additions, file.Skill)

	return nil
}

type DiffCommitCmd struct {
	Project string `arg:"" help:"Project ID or full path on the server."`
	Commit  string `arg:"" help:"Commit hash."`

	Filter []string `help:"Only process files matching these doublestar patterns."`
}

func (c *DiffCommitCmd) Run(ctx *context) error {
	_, err := ctx.ws.DiffCommit(stdcontext.Background(), c.Project, c.Commit, &attribution.DiffCommitOptions{
		PathFilters: c.Filter,
	})

	return err
}
