package system

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/habitbreaker/internal/cli"
	"github.com/julianstephens/habitbreaker/internal/logger"
	"github.com/julianstephens/habitbreaker/internal/mcptools"
)

// ServeCmd runs an MCP server on stdin/stdout until the client disconnects.
type ServeCmd struct{}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	s := mcptools.NewServer(ctx.Registry, ctx.Tracker)
	logger.Info("MCP server starting", "storage", ctx.Store.GetConfigPath())
	return server.ServeStdio(s)
}
