package main

import (
	"github.com/spf13/cobra"

	"github.com/comigor/casehelper-go/internal/mcpserver"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the case tools over MCP on stdin/stdout",
	RunE: func(cmd *cobra.Command, args []string) error {
		return mcpserver.ServeStdio(mcpserver.New("casehelper", version, current.tools()))
	},
}
