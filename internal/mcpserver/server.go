// Package mcpserver exposes the case tools over the Model Context Protocol so
// another assistant can read and update the case.
package mcpserver

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/comigor/casehelper-go/internal/logger"
	"github.com/comigor/casehelper-go/pkg/tools"
)

// New builds an MCP server publishing every tool of m.
func New(name, version string, m *tools.ToolManager) *server.MCPServer {
	s := server.NewMCPServer(name, version, server.WithToolCapabilities(false))
	for _, t := range m.List() {
		s.AddTool(Definition(t), Handler(t))
		logger.L.Debug("Registered tool for MCP", "tool", t.Name())
	}
	return s
}

// Definition converts a tool into its MCP description.
func Definition(t tools.Tool) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(t.Description())}
	for _, p := range t.Params() {
		popts := []mcp.PropertyOption{mcp.Description(p.Description)}
		if p.Required {
			popts = append(popts, mcp.Required())
		}
		opts = append(opts, mcp.WithString(p.Name, popts...))
	}
	return mcp.NewTool(t.Name(), opts...)
}

// Handler runs t for an MCP call. Tool failures are reported as error
// results, not protocol errors.
func Handler(t tools.Tool) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := json.Marshal(req.Params.Arguments)
		if err != nil {
			return mcp.NewToolResultError("Error: Could not encode arguments for tool " + t.Name()), nil
		}
		if string(args) == "null" {
			args = []byte("{}")
		}
		out, err := t.Run(ctx, string(args))
		if err != nil {
			logger.L.Warn("MCP tool call failed", "tool", t.Name(), "error", err)
			return mcp.NewToolResultError(err.Error()), nil
		}
		return mcp.NewToolResultText(out), nil
	}
}

// ServeStdio serves s on stdin/stdout until the input closes.
func ServeStdio(s *server.MCPServer) error {
	return server.ServeStdio(s)
}
