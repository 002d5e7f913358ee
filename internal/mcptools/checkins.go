package mcptools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/julianstephens/habitbreaker/internal/constants"
	"github.com/julianstephens/habitbreaker/internal/tracker"
)

// SuccessTool handles the habit_success MCP tool.
type SuccessTool struct {
	tracker *tracker.Tracker
}

func NewSuccessTool(tr *tracker.Tracker) *SuccessTool {
	return &SuccessTool{tracker: tr}
}

func (t *SuccessTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_success",
		mcp.WithDescription("Record that the user resisted their habit today. Extends the current streak by one day."),
		withUserID(),
	)
}

func (t *SuccessTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := userID(req)
	if !ok {
		return missingUserID(), nil
	}

	streak, err := t.tracker.RecordSuccess(ctx, id)
	if err != nil {
		return errorResult("record success", err), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Success recorded. Current streak: %d day(s)", streak)), nil
}

// BreakTool handles the habit_break MCP tool.
type BreakTool struct {
	tracker *tracker.Tracker
}

func NewBreakTool(tr *tracker.Tracker) *BreakTool {
	return &BreakTool{tracker: tr}
}

func (t *BreakTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_break",
		mcp.WithDescription("Record that the user slipped today. Resets the current streak; the longest streak is kept."),
		withUserID(),
	)
}

func (t *BreakTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := userID(req)
	if !ok {
		return missingUserID(), nil
	}

	if _, err := t.tracker.RecordBreak(ctx, id); err != nil {
		return errorResult("record break", err), nil
	}
	return mcp.NewToolResultText("Break recorded. Current streak reset to 0."), nil
}

// HistoryTool handles the habit_history MCP tool.
type HistoryTool struct {
	tracker *tracker.Tracker
}

func NewHistoryTool(tr *tracker.Tracker) *HistoryTool {
	return &HistoryTool{tracker: tr}
}

func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_history",
		mcp.WithDescription("List the user's most recent daily check-ins, newest first."),
		withUserID(),
		mcp.WithNumber("limit",
			mcp.Description(fmt.Sprintf("Maximum number of check-ins (default: %d)", constants.DefaultHistoryLimit)),
		),
	)
}

func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := userID(req)
	if !ok {
		return missingUserID(), nil
	}

	limit := intArg(req, "limit", constants.DefaultHistoryLimit)
	reports, err := t.tracker.History(ctx, id, limit)
	if err != nil {
		return errorResult("get history", err), nil
	}
	if len(reports) == 0 {
		return mcp.NewToolResultText("No check-ins yet."), nil
	}

	var b strings.Builder
	for _, r := range reports {
		fmt.Fprintf(&b, "%s  %s\n", r.OccurredAt.Local().Format(constants.DateTimeFormat), r.Outcome)
	}
	return mcp.NewToolResultText(strings.TrimRight(b.String(), "\n")), nil
}
