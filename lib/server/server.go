package server

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/pescuma/tally/lib/workspace"
)

type Options struct {
	Port uint
}

func Run(ws *workspace.Workspace, opts *Options) error {
	s := newServer(ws, opts)

	ws.Console().Printf("Starting server on port %v...\n", s.opts.Port)

	return s.run()
}

type server struct {
	opts *Options

	ws *workspace.Workspace
}

func newServer(ws *workspace.Workspace, opts *Options) *server {
	if opts == nil {
		opts = &Options{}
	}
	if opts.Port == 0 {
		opts.Port = 2428
	}

	return &server{
		opts: opts,
		ws:   ws,
	}
}

func (s *server) run() error {
	gin.SetMode(gin.ReleaseMode)
	r := gin.Default()

	s.initDeltas(r)
	s.initDiff(r)

	return r.Run(fmt.Sprintf(":%v", s.opts.Port))
}
