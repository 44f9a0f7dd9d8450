package tools

import "context"

// Param describes one string argument of a tool.
type Param struct {
	Name        string
	Description string
	Required    bool
}

// Tool is the interface for all tools
type Tool interface {
	Name() string
	Description() string
	Params() []Param
	// Run executes the tool with a JSON object of string arguments.
	Run(ctx context.Context, args string) (string, error)
}
