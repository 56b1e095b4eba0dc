// Package tool defines the callable-capability abstraction exposed to agent
// nodes. Tools are discovered from external providers (see tool/mcp) rather
// than registered by hand; the node only needs names, descriptions and a
// JSON schema to advertise them to its model.
package tool

import (
	"context"

	"github.com/graphbridge/graphbridge/model"
)

// Tool defines the interface for a single invocable capability.
//
// Tool implementations should:
//   - Provide clear, descriptive names and descriptions
//   - Define proper JSON schema for parameters
//   - Be safe for concurrent use
type Tool interface {
	// Name returns the unique identifier for this tool.
	Name() string

	// Description returns a human-readable description provided to the LLM
	// to help it decide when to use the tool.
	Description() string

	// Parameters returns a JSON schema describing the expected arguments.
	Parameters() map[string]any

	// Call executes the tool with structured arguments.
	Call(ctx context.Context, args map[string]any) (any, error)
}

// Definitions converts tools into model tool definitions for advertising to
// a chat model.
func Definitions(tools []Tool) []model.ToolDefinition {
	if len(tools) == 0 {
		return nil
	}
	defs := make([]model.ToolDefinition, len(tools))
	for i, t := range tools {
		defs[i] = model.ToolDefinition{
			Type: "function",
			Function: model.FunctionDefinition{
				Name:        t.Name(),
				Description: t.Description(),
				Parameters:  t.Parameters(),
			},
		}
	}
	return defs
}
