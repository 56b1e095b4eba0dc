package tool

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTool struct {
	name        string
	description string
	parameters  map[string]any
}

func (t staticTool) Name() string               { return t.name }
func (t staticTool) Description() string        { return t.description }
func (t staticTool) Parameters() map[string]any { return t.parameters }
func (t staticTool) Call(context.Context, map[string]any) (any, error) {
	return "ok", nil
}

func TestDefinitions(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"date": map[string]any{"type": "string"},
		},
	}

	defs := Definitions([]Tool{
		staticTool{name: "list_events", description: "List calendar events", parameters: schema},
	})

	require.Len(t, defs, 1)
	assert.Equal(t, "function", defs[0].Type)
	assert.Equal(t, "list_events", defs[0].Function.Name)
	assert.Equal(t, "List calendar events", defs[0].Function.Description)
	assert.Equal(t, schema, defs[0].Function.Parameters)
}

func TestDefinitions_Empty(t *testing.T) {
	assert.Nil(t, Definitions(nil))
	assert.Nil(t, Definitions([]Tool{}))
}
