package mcptools

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/julianstephens/habitbreaker/internal/constants"
	"github.com/julianstephens/habitbreaker/internal/registry"
	"github.com/julianstephens/habitbreaker/internal/tracker"
)

// NewServer creates an MCP server with every habit tool registered.
func NewServer(reg *registry.Registry, tr *tracker.Tracker) *server.MCPServer {
	s := server.NewMCPServer(
		constants.AppName,
		constants.Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)

	registerTool := NewRegisterTool(reg)
	s.AddTool(registerTool.Definition(), registerTool.Handle)

	createTool := NewCreateTool(tr)
	s.AddTool(createTool.Definition(), createTool.Handle)

	activeTool := NewActiveTool(tr)
	s.AddTool(activeTool.Definition(), activeTool.Handle)

	successTool := NewSuccessTool(tr)
	s.AddTool(successTool.Definition(), successTool.Handle)

	breakTool := NewBreakTool(tr)
	s.AddTool(breakTool.Definition(), breakTool.Handle)

	statsTool := NewStatsTool(tr)
	s.AddTool(statsTool.Definition(), statsTool.Handle)

	historyTool := NewHistoryTool(tr)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	return s
}
