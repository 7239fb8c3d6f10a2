package main

import (
	"github.com/pescuma/tally/lib/server"
)

type ServerCmd struct {
	Port uint `default:"2428" help:"Port to listen to."`
}

func (c *ServerCmd) Run(ctx *context) error {
	return server.Run(ctx.ws, &server.Options{
		Port: c.Port,
	})
}
