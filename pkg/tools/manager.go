package tools

import (
	"fmt"
	"slices"
	"strings"
)

// ToolManager is the registry of tools published to other assistants.
type ToolManager struct {
	tools map[string]Tool
}

// NewToolManager creates an empty registry.
func NewToolManager() *ToolManager {
	return &ToolManager{
		tools: make(map[string]Tool),
	}
}

// RegisterTool adds tool. A second tool with the same name is rejected and
// the first registration kept.
func (m *ToolManager) RegisterTool(tool Tool) error {
	if _, exists := m.tools[tool.Name()]; exists {
		return fmt.Errorf("tool already registered: %s", tool.Name())
	}
	m.tools[tool.Name()] = tool
	return nil
}

// GetTool retrieves a tool by name
func (m *ToolManager) GetTool(name string) (Tool, error) {
	tool, ok := m.tools[name]
	if !ok {
		return nil, fmt.Errorf("tool not found: %s", name)
	}
	return tool, nil
}

// List returns the registered tools ordered by name, so clients always see a
// stable listing.
func (m *ToolManager) List() []Tool {
	ts := make([]Tool, 0, len(m.tools))
	for _, t := range m.tools {
		ts = append(ts, t)
	}
	slices.SortFunc(ts, func(a, b Tool) int { return strings.Compare(a.Name(), b.Name()) })
	return ts
}
