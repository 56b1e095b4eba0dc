// Package agent defines the node types composed into the two-level agent
// hierarchy served by the hosted graph: worker nodes that execute
// tool-backed tasks and a supervisor node that delegates to them and
// composes the final answer. Nodes are declarative: they bundle a model
// handle, rendered instructions and a tool set; execution happens in the
// hosting process.
package agent

import (
	"github.com/graphbridge/graphbridge/model"
	"github.com/graphbridge/graphbridge/tool"
)

// OutputMode controls how much of a node's conversation the supervisor
// surfaces to its caller.
type OutputMode string

const (
	// OutputModeLastMessage surfaces only the final message.
	OutputModeLastMessage OutputMode = "last_message"
	// OutputModeFullHistory surfaces the complete exchange.
	OutputModeFullHistory OutputMode = "full_history"
)

// Node is one member of the agent hierarchy.
type Node struct {
	name         string
	model        model.Model
	instructions string
	tools        []tool.Tool
}

// NewWorker constructs a worker node with a stable name, a model handle,
// instructions rendered at build time and the tools discovered from its
// provider connection.
func NewWorker(name string, m model.Model, instructions string, tools []tool.Tool) *Node {
	return &Node{
		name:         name,
		model:        m,
		instructions: instructions,
		tools:        tools,
	}
}

// Name returns the node's stable name.
func (n *Node) Name() string { return n.name }

// Model returns the node's model handle.
func (n *Node) Model() model.Model { return n.model }

// Instructions returns the node's rendered instruction text.
func (n *Node) Instructions() string { return n.instructions }

// Tools returns the node's tool set.
func (n *Node) Tools() []tool.Tool { return n.tools }

// ToolDefinitions returns the node's tools as model tool definitions.
func (n *Node) ToolDefinitions() []model.ToolDefinition {
	return tool.Definitions(n.tools)
}

// SupervisorOptions configures a Supervisor instance.
type SupervisorOptions struct {
	Name         string
	Instructions string
	Tools        []tool.Tool
	OutputMode   OutputMode
}

// Supervisor owns the delegation relationship to its worker nodes and an
// independent tool set of its own.
type Supervisor struct {
	Node
	workers    []*Node
	outputMode OutputMode
}

// NewSupervisor constructs a supervisor delegating to the given workers.
// Output mode defaults to last-message only.
func NewSupervisor(m model.Model, workers []*Node, optFns ...func(o *SupervisorOptions)) *Supervisor {
	opts := SupervisorOptions{
		Name:       "supervisor",
		OutputMode: OutputModeLastMessage,
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Supervisor{
		Node: Node{
			name:         opts.Name,
			model:        m,
			instructions: opts.Instructions,
			tools:        opts.Tools,
		},
		workers:    workers,
		outputMode: opts.OutputMode,
	}
}

// Workers returns the worker nodes this supervisor delegates to.
func (s *Supervisor) Workers() []*Node { return s.workers }

// OutputMode returns the configured output mode.
func (s *Supervisor) OutputMode() OutputMode { return s.outputMode }
