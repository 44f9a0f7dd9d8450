package mcpserver

import (
	"context"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/require"

	"github.com/comigor/casehelper-go/internal/agent"
	"github.com/comigor/casehelper-go/internal/history"
	"github.com/comigor/casehelper-go/internal/profile"
	"github.com/comigor/casehelper-go/internal/store"
	"github.com/comigor/casehelper-go/internal/timeline"
	"github.com/comigor/casehelper-go/pkg/tools"
)

type cannedLLM struct{}

func (cannedLLM) Complete(ctx context.Context, prompt string) (string, error) { return "ok", nil }

func newManager() (*tools.ToolManager, tools.Case) {
	b := store.NewMemoryBackend()
	c := tools.Case{
		Assistant: agent.New(cannedLLM{}, history.Open(b)),
		Timeline:  timeline.Open(b),
		Profile:   profile.Open(b),
	}
	return tools.NewCaseToolManager(c), c
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return tc.Text
}

func TestDefinition_RequiredParams(t *testing.T) {
	m, _ := newManager()
	tool, err := m.GetTool("add_timeline_event")
	require.NoError(t, err)

	def := Definition(tool)
	require.Equal(t, "add_timeline_event", def.Name)
	require.Equal(t, tool.Description(), def.Description)
	require.ElementsMatch(t, []string{"date", "description"}, def.InputSchema.Required)
	require.Contains(t, def.InputSchema.Properties, "date")
}

func TestHandler_RunsTool(t *testing.T) {
	m, c := newManager()
	tool, err := m.GetTool("add_timeline_event")
	require.NoError(t, err)

	req := mcp.CallToolRequest{}
	req.Params.Name = tool.Name()
	req.Params.Arguments = map[string]any{"date": "2024-06-01", "description": "Mediation"}

	res, err := Handler(tool)(context.Background(), req)
	require.NoError(t, err)
	require.False(t, res.IsError)
	require.Contains(t, textOf(t, res), "1 event")
	require.Equal(t, []timeline.Event{{Date: "2024-06-01", Description: "Mediation"}}, c.Timeline.Snapshot())
}

func TestHandler_ToolErrorIsResult(t *testing.T) {
	m, c := newManager()
	tool, err := m.GetTool("add_timeline_event")
	require.NoError(t, err)

	req := mcp.CallToolRequest{}
	req.Params.Name = tool.Name()
	req.Params.Arguments = map[string]any{"date": "", "description": "x"}

	res, err := Handler(tool)(context.Background(), req)
	require.NoError(t, err)
	require.True(t, res.IsError)
	require.Empty(t, c.Timeline.Snapshot())
}

func TestHandler_NoArguments(t *testing.T) {
	m, _ := newManager()
	tool, err := m.GetTool("list_timeline")
	require.NoError(t, err)

	res, err := Handler(tool)(context.Background(), mcp.CallToolRequest{})
	require.NoError(t, err)
	require.Equal(t, "The timeline is empty.", textOf(t, res))
}

func TestNew(t *testing.T) {
	m, _ := newManager()
	require.NotNil(t, New("casehelper", "test", m))
}
