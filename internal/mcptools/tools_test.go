package mcptools

import (
	"context"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/julianstephens/habitbreaker/internal/models"
	"github.com/julianstephens/habitbreaker/internal/registry"
	"github.com/julianstephens/habitbreaker/internal/storage/sqlite"
	"github.com/julianstephens/habitbreaker/internal/tracker"
)

// ─── Test helpers ────────────────────────────────────────────────────────────

func newTestServices(t *testing.T) (*registry.Registry, *tracker.Tracker) {
	t.Helper()
	store := sqlite.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return registry.New(store), tracker.New(store)
}

func makeReq(args map[string]interface{}) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	return req
}

func resultText(r *mcp.CallToolResult) string {
	if r == nil || len(r.Content) == 0 {
		return ""
	}
	for _, c := range r.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func call(t *testing.T, handle func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	result, err := handle(context.Background(), makeReq(args))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

// ─── Definitions ─────────────────────────────────────────────────────────────

func TestDefinitionsRequireUserID(t *testing.T) {
	reg, tr := newTestServices(t)
	defs := []mcp.Tool{
		NewRegisterTool(reg).Definition(),
		NewCreateTool(tr).Definition(),
		NewActiveTool(tr).Definition(),
		NewSuccessTool(tr).Definition(),
		NewBreakTool(tr).Definition(),
		NewStatsTool(tr).Definition(),
		NewHistoryTool(tr).Definition(),
	}

	seen := map[string]bool{}
	for _, def := range defs {
		if seen[def.Name] {
			t.Errorf("duplicate tool name %q", def.Name)
		}
		seen[def.Name] = true

		if _, ok := def.InputSchema.Properties[userIDParam]; !ok {
			t.Errorf("%s: missing %q parameter", def.Name, userIDParam)
		}
		found := false
		for _, r := range def.InputSchema.Required {
			if r == userIDParam {
				found = true
			}
		}
		if !found {
			t.Errorf("%s: %q should be required", def.Name, userIDParam)
		}
	}

	if NewServer(reg, tr) == nil {
		t.Error("NewServer returned nil")
	}
}

// ─── Handlers ────────────────────────────────────────────────────────────────

func TestMissingUserID(t *testing.T) {
	_, tr := newTestServices(t)
	for _, args := range []map[string]interface{}{
		{},
		{"user_id": "42"},
		{"user_id": 4.5},
	} {
		result := call(t, NewSuccessTool(tr).Handle, args)
		if !result.IsError {
			t.Errorf("args %v: expected error result", args)
		}
	}
}

func TestHabitLifecycle(t *testing.T) {
	reg, tr := newTestServices(t)
	user := map[string]interface{}{"user_id": float64(42)}

	result := call(t, NewRegisterTool(reg).Handle, map[string]interface{}{
		"user_id": float64(42), "display_name": "Ada", "handle": "@ada",
	})
	if result.IsError {
		t.Fatalf("register failed: %s", resultText(result))
	}
	u, err := reg.Get(context.Background(), 42)
	if err != nil || u.Handle != "ada" {
		t.Errorf("registered user = %+v, %v", u, err)
	}

	result = call(t, NewActiveTool(tr).Handle, user)
	if resultText(result) != "No active habit." {
		t.Errorf("active = %q", resultText(result))
	}

	result = call(t, NewSuccessTool(tr).Handle, user)
	if !result.IsError || !strings.Contains(resultText(result), "habit_create") {
		t.Errorf("success without habit = %q", resultText(result))
	}

	result = call(t, NewCreateTool(tr).Handle, map[string]interface{}{"user_id": float64(42), "name": "  "})
	if !result.IsError {
		t.Error("blank name should be rejected")
	}

	result = call(t, NewCreateTool(tr).Handle, map[string]interface{}{"user_id": float64(42), "name": "smoking"})
	if result.IsError || !strings.Contains(resultText(result), `"smoking"`) {
		t.Fatalf("create = %q", resultText(result))
	}

	for i := 0; i < 3; i++ {
		call(t, NewSuccessTool(tr).Handle, user)
	}
	result = call(t, NewBreakTool(tr).Handle, user)
	if result.IsError {
		t.Fatalf("break failed: %s", resultText(result))
	}

	result = call(t, NewStatsTool(tr).Handle, user)
	var stats models.Stats
	if err := json.Unmarshal([]byte(resultText(result)), &stats); err != nil {
		t.Fatalf("stats not JSON: %v\n%s", err, resultText(result))
	}
	if stats.TotalDays != 3 || stats.BreakDays != 1 || stats.LongestStreak != 3 || stats.SuccessRate != 75 {
		t.Errorf("stats = %+v", stats)
	}

	result = call(t, NewHistoryTool(tr).Handle, map[string]interface{}{"user_id": float64(42), "limit": float64(2)})
	lines := strings.Split(resultText(result), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "break") {
		t.Errorf("history = %q", resultText(result))
	}
}
