// Package mcptools exposes the habit tracker as MCP tools so an assistant can
// act as the chat transport.
//
// Each tool is a struct with its dependencies injected via constructor,
// a Definition() returning the mcp.Tool schema and a Handle() that runs it.
package mcptools

import (
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	apperrors "github.com/julianstephens/habitbreaker/internal/errors"
	"github.com/julianstephens/habitbreaker/internal/logger"
)

// userIDParam is the argument every tool uses to name the user.
const userIDParam = "user_id"

func withUserID() mcp.ToolOption {
	return mcp.WithNumber(userIDParam,
		mcp.Required(),
		mcp.Description("Opaque numeric identity of the chat user"),
	)
}

// userID extracts the user identity. JSON numbers arrive as float64.
func userID(req mcp.CallToolRequest) (int64, bool) {
	v, ok := req.GetArguments()[userIDParam].(float64)
	if !ok || v != float64(int64(v)) {
		return 0, false
	}
	return int64(v), true
}

func intArg(req mcp.CallToolRequest, key string, defaultVal int) int {
	v, ok := req.GetArguments()[key].(float64)
	if !ok {
		return defaultVal
	}
	return int(v)
}

func missingUserID() *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("'%s' is required and must be an integer", userIDParam))
}

// errorResult maps tracker errors to tool errors the caller can act on.
func errorResult(op string, err error) *mcp.CallToolResult {
	switch {
	case errors.Is(err, apperrors.ErrNoActiveHabit):
		return mcp.NewToolResultError("no active habit: create one with habit_create first")
	case errors.Is(err, apperrors.ErrValidation):
		return mcp.NewToolResultError(err.Error())
	default:
		logger.Error("MCP tool failed", "op", op, "error", err)
		return mcp.NewToolResultError(fmt.Sprintf("failed to %s: %v", op, err))
	}
}
