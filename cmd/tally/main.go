package main

import (
	"github.com/alecthomas/kong"

	"github.com/pescuma/tally/lib/workspace"
)

var cli struct {
	Workspace string `short:"w" help:"Workspace to store data. Default is ./.tally or ~/.tally if that does not exist." type:"path"`

	Diff struct {
		File   DiffFileCmd   `cmd:"" help:"Compute the line delta of one file in one commit."`
		Commit DiffCommitCmd `cmd:"" help:"Compute the line deltas of all files changed by a commit."`
	} `cmd:""`

	Show ShowCmd `cmd:"" help:"Show stored line deltas and monthly totals."`

	Config struct {
		Set ConfigSetCmd `cmd:"" help:"Set configuration parameters."`
	} `cmd:""`

	Ignore struct {
		Add struct {
			File  IgnoreAddFileCmd  `cmd:"" help:"Ignore files matching a gitignore style rule."`
			Skill IgnoreAddSkillCmd `cmd:"" help:"Ignore files of a language."`
		} `cmd:""`
	} `cmd:""`

	Server ServerCmd `cmd:"" help:"Start the HTTP server."`
}

type context struct {
	ws *workspace.Workspace
}

func main() {
	ctx := kong.Parse(&cli, kong.ShortUsageOnError())

	ws, err := workspace.NewWorkspace(cli.Workspace)
	ctx.FatalIfErrorf(err)

	err = ctx.Run(&context{
		ws: ws,
	})
	_ = ws.Close()

	ctx.FatalIfErrorf(err)
}
