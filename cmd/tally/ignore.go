package main

type IgnoreAddFileCmd struct {
	Rule string `arg:"" help:"File ignore rule, in gitignore syntax."`
}

func (c *IgnoreAddFileCmd) Run(ctx *context) error {
	return ctx.ws.IgnoreAddFileRule(c.Rule)
}

type IgnoreAddSkillCmd struct {
	Skill string `arg:"" help:"Language to ignore (ex: Markdown)."`
}

func (c *IgnoreAddSkillCmd) Run(ctx *context) error {
	return ctx.ws.IgnoreAddSkillRule(c.Skill)
}
