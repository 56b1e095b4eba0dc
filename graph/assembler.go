// Package graph assembles the two-level agent hierarchy served by the
// hosted graph process: a calendar worker with tools discovered from its
// own provider connection, and a supervisor delegating to it with an
// independent tool set. The tool-provider connections opened during Build
// live as long as the returned Graph; Close releases all of them.
package graph

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/graphbridge/graphbridge/agent"
	"github.com/graphbridge/graphbridge/config"
	"github.com/graphbridge/graphbridge/logging"
	"github.com/graphbridge/graphbridge/prompt"
	"github.com/graphbridge/graphbridge/tool"
	mcptool "github.com/graphbridge/graphbridge/tool/mcp"
)

// ToolProvider is one open tool-provider connection.
type ToolProvider interface {
	Tools() []tool.Tool
	Close() error
}

// ConnectFunc dials one endpoint and returns the live provider.
type ConnectFunc func(ctx context.Context, name, url string) (ToolProvider, error)

// Options configures Build.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// Now supplies the build timestamp bound into the worker instructions.
	Now func() time.Time

	// Connect dials tool-provider endpoints. Defaults to the MCP SSE
	// client; overridable for tests.
	Connect ConnectFunc
}

// Graph is the assembled hierarchy plus the provider connections backing
// its tool sets. One connection set per graph instance, never pooled.
type Graph struct {
	supervisor *agent.Supervisor
	worker     *agent.Node
	providers  []ToolProvider
	logger     logging.Logger
}

// BuildError reports a failed graph build. Partially opened connections are
// closed before the error surfaces; there is no degraded graph.
type BuildError struct {
	Step string
	Err  error
}

// Error implements the error interface.
func (e *BuildError) Error() string { return fmt.Sprintf("graph build: %s: %v", e.Step, e.Err) }

// Unwrap returns the underlying error.
func (e *BuildError) Unwrap() error { return e.Err }

// Build assembles the graph:
//
//  1. Bind today's date for the worker instructions.
//  2. Filter the configured endpoints; absent URLs are dropped silently.
//  3. Open one connection per retained endpoint and discover its tools.
//  4. Construct the worker, then the supervisor delegating to it.
//
// Any failure closes the connections opened so far and returns a
// *BuildError. With no endpoints configured the graph still builds, with
// empty tool sets on both nodes.
func Build(ctx context.Context, cfg *config.Config, optFns ...func(o *Options)) (*Graph, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
		Now:    time.Now,
		Connect: func(ctx context.Context, name, url string) (ToolProvider, error) {
			return mcptool.Connect(ctx, name, url)
		},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	today := opts.Now().Format("2006-01-02")

	g := &Graph{logger: opts.Logger}

	workerTools, err := g.openProviders(ctx, opts, filterEndpoints([]Endpoint{
		{Name: "zapier", URL: cfg.ZapierMCPURL, Transport: "sse"},
	}))
	if err != nil {
		g.closeProviders()
		return nil, &BuildError{Step: "connect worker tools", Err: err}
	}

	supervisorTools, err := g.openProviders(ctx, opts, filterEndpoints([]Endpoint{
		{Name: "supermemory", URL: cfg.SupermemoryMCPURL, Transport: "sse"},
	}))
	if err != nil {
		g.closeProviders()
		return nil, &BuildError{Step: "connect supervisor tools", Err: err}
	}

	workerInstructions, err := prompt.CalendarAgent(today)
	if err != nil {
		g.closeProviders()
		return nil, &BuildError{Step: "render worker instructions", Err: err}
	}

	supervisorInstructions, err := prompt.Supervisor()
	if err != nil {
		g.closeProviders()
		return nil, &BuildError{Step: "render supervisor instructions", Err: err}
	}

	workerModel, err := newChatModel(cfg.Model)
	if err != nil {
		g.closeProviders()
		return nil, &BuildError{Step: "construct worker model", Err: err}
	}

	supervisorModel, err := newChatModel(cfg.Model)
	if err != nil {
		g.closeProviders()
		return nil, &BuildError{Step: "construct supervisor model", Err: err}
	}

	g.worker = agent.NewWorker("calendar_agent", workerModel, workerInstructions, workerTools)
	g.supervisor = agent.NewSupervisor(supervisorModel, []*agent.Node{g.worker}, func(o *agent.SupervisorOptions) {
		o.Instructions = supervisorInstructions
		o.Tools = supervisorTools
		o.OutputMode = agent.OutputModeLastMessage
	})

	opts.Logger.Info("graph assembled",
		"worker_tools", len(workerTools),
		"supervisor_tools", len(supervisorTools),
		"today", today,
	)

	return g, nil
}

// openProviders dials every endpoint of one group and pools the discovered
// tools. Opened providers are tracked on the graph so teardown covers them
// even when a later endpoint in the group fails.
func (g *Graph) openProviders(ctx context.Context, opts Options, endpoints []Endpoint) ([]tool.Tool, error) {
	var tools []tool.Tool
	for _, ep := range endpoints {
		provider, err := opts.Connect(ctx, ep.Name, ep.URL)
		if err != nil {
			return nil, fmt.Errorf("endpoint %s: %w", ep.Name, err)
		}
		g.providers = append(g.providers, provider)
		tools = append(tools, provider.Tools()...)

		g.logger.Debug("tool provider connected", "endpoint", ep.Name, "tools", len(provider.Tools()))
	}
	return tools, nil
}

// closeProviders is the best-effort teardown used when a build fails
// midway: close errors are logged, never allowed to mask the build error.
func (g *Graph) closeProviders() {
	for _, p := range g.providers {
		if err := p.Close(); err != nil {
			g.logger.Error("tool provider close failed during aborted build", "error", err)
		}
	}
	g.providers = nil
}

// Supervisor returns the supervisor node.
func (g *Graph) Supervisor() *agent.Supervisor { return g.supervisor }

// Worker returns the calendar worker node.
func (g *Graph) Worker() *agent.Node { return g.worker }

// Close releases every tool-provider connection. All providers are closed
// even when some fail; failures are logged and returned aggregated.
func (g *Graph) Close() error {
	var result *multierror.Error
	for _, p := range g.providers {
		if err := p.Close(); err != nil {
			g.logger.Error("tool provider close failed", "error", err)
			result = multierror.Append(result, err)
		}
	}
	g.providers = nil
	return result.ErrorOrNil()
}
