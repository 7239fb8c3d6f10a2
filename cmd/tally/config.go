package main

type ConfigSetCmd struct {
	Config string `arg:"" help:"Configuration name to change (ex: gitlab.url, gitlab.token, gitlab.timeout)."`
	Value  string `arg:"" help:"Configuration value to set."`
}

func (c *ConfigSetCmd) Run(ctx *context) error {
	ctx.ws.Console().Printf("Setting '%v' = '%v'\n", c.Config, c.Value)

	return ctx.ws.SetConfigParameter(c.Config, c.Value)
}
