package mcptools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/julianstephens/habitbreaker/internal/tracker"
)

// StatsTool handles the habit_stats MCP tool.
type StatsTool struct {
	tracker *tracker.Tracker
}

func NewStatsTool(tr *tracker.Tracker) *StatsTool {
	return &StatsTool{tracker: tr}
}

func (t *StatsTool) Definition() mcp.Tool {
	return mcp.NewTool("habit_stats",
		mcp.WithDescription("Get streak statistics for the user's active habit as JSON: name, current_streak, longest_streak, total_days, break_days and success_rate (percent)."),
		withUserID(),
	)
}

func (t *StatsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, ok := userID(req)
	if !ok {
		return missingUserID(), nil
	}

	stats, err := t.tracker.GetStats(ctx, id)
	if err != nil {
		return errorResult("get stats", err), nil
	}

	data, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return errorResult("encode stats", err), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
