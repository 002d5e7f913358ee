package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/julianstephens/habitbreaker/internal/registry"
	"github.com/julianstephens/habitbreaker/internal/tracker"
)

// RegisterTool handles the habit_register MCP tool.
type RegisterTool struct {
	registry *registry.Registry
}

func NewRegisterTool(reg *registry.Registry) *RegisterTool {
	return &RegisterTool{registry: reg}
}

func (t *RegisterTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_register",
		mcp.WithDescription("Register a user on first contact. Safe to call repeatedly; the first display name and handle are kept."),
		withUserID(),
		mcp.WithString("display_name",
			mcp.Description("User's display name"),
		),
		mcp.WithString("handle",
			mcp.Description("User's handle, without @"),
		),
	)
}

func (t *RegisterTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := userID(req)
	if !ok {
		return missingUserID(), nil
	}

	err := t.registry.Register(ctx, id,
		req.GetString("display_name", ""),
		strings.TrimPrefix(req.GetString("handle", ""), "@"))
	if err != nil {
		return errorResult("register user", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("User %d registered", id)), nil
}

// CreateTool handles the habit_create MCP tool.
type CreateTool struct {
	tracker *tracker.Tracker
}

func NewCreateTool(tr *tracker.Tracker) *CreateTool {
	return &CreateTool{tracker: tr}
}

func (t *CreateTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_create",
		mcp.WithDescription("Start tracking a new bad habit for the user. It replaces the current habit as the active one; older habits are kept."),
		withUserID(),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Habit to quit, e.g. 'smoking' or 'doomscrolling'"),
		),
	)
}

func (t *CreateTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := userID(req)
	if !ok {
		return missingUserID(), nil
	}

	habit, err := t.tracker.CreateHabit(ctx, id, req.GetString("name", ""))
	if err != nil {
		return errorResult("create habit", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Now tracking %q (ID: %d)", habit.Name, habit.ID)), nil
}

// ActiveTool handles the habit_active MCP tool.
type ActiveTool struct {
	tracker *tracker.Tracker
}

func NewActiveTool(tr *tracker.Tracker) *ActiveTool {
	return &ActiveTool{tracker: tr}
}

func (t *ActiveTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_active",
		mcp.WithDescription("Show the habit the user is currently tracking."),
		withUserID(),
	)
}

func (t *ActiveTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := userID(req)
	if !ok {
		return missingUserID(), nil
	}

	habit, err := t.tracker.GetActiveHabit(ctx, id)
	if err != nil {
		return errorResult("get active habit", err), nil
	}
	if habit == nil {
		return mcp.NewToolResultText("No active habit."), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("%q since %s (ID: %d)",
		habit.Name, habit.StartedAt.Format("2006-01-02"), habit.ID)), nil
}
