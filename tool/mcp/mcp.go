// Package mcp connects to Model Context Protocol servers and exposes the
// tools they advertise as graphbridge tools. One Toolset wraps one server
// connection; the connection is a scoped resource owned by whoever built it
// and must be closed when the consuming agent graph is torn down.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/client"
	"github.com/mark3labs/mcp-go/mcp"

	"github.com/graphbridge/graphbridge/tool"
)

// Options configures a Toolset connection.
type Options struct {
	// ClientName is reported to the server during the initialize handshake.
	ClientName string

	// ClientVersion is reported alongside ClientName.
	ClientVersion string
}

// Toolset is one initialized MCP server connection plus the tools discovered
// from it. Not safe to share across concurrently built graphs.
type Toolset struct {
	name   string
	client *client.Client
	tools  []tool.Tool
}

// Connect dials the SSE endpoint at url, performs the initialize handshake
// and lists the server's tools. The returned Toolset holds the live
// connection; Close releases it. Any failure tears down the partially
// opened connection before returning.
func Connect(ctx context.Context, name, url string, optFns ...func(o *Options)) (*Toolset, error) {
	opts := Options{
		ClientName:    "graphbridge",
		ClientVersion: "0.1.0",
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	c, err := client.NewSSEMCPClient(url)
	if err != nil {
		return nil, fmt.Errorf("mcp %s: create client: %w", name, err)
	}

	if err := c.Start(ctx); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("mcp %s: start transport: %w", name, err)
	}

	initReq := mcp.InitializeRequest{}
	initReq.Params.ProtocolVersion = mcp.LATEST_PROTOCOL_VERSION
	initReq.Params.ClientInfo = mcp.Implementation{
		Name:    opts.ClientName,
		Version: opts.ClientVersion,
	}

	if _, err := c.Initialize(ctx, initReq); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("mcp %s: initialize: %w", name, err)
	}

	listed, err := c.ListTools(ctx, mcp.ListToolsRequest{})
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("mcp %s: list tools: %w", name, err)
	}

	tools := make([]tool.Tool, 0, len(listed.Tools))
	for _, t := range listed.Tools {
		tools = append(tools, &remoteTool{client: c, def: t})
	}

	return &Toolset{name: name, client: c, tools: tools}, nil
}

// Name returns the endpoint name this toolset was connected under.
func (ts *Toolset) Name() string { return ts.name }

// Tools returns the tools discovered from the server.
func (ts *Toolset) Tools() []tool.Tool { return ts.tools }

// Close releases the underlying server connection.
func (ts *Toolset) Close() error { return ts.client.Close() }

// remoteTool proxies a single server-side tool.
type remoteTool struct {
	client *client.Client
	def    mcp.Tool
}

// Name implements tool.Tool.
func (t *remoteTool) Name() string { return t.def.Name }

// Description implements tool.Tool.
func (t *remoteTool) Description() string { return t.def.Description }

// Parameters implements tool.Tool, round-tripping the server's input schema
// into the generic JSON-schema map the model layer expects.
func (t *remoteTool) Parameters() map[string]any {
	data, err := json.Marshal(t.def.InputSchema)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return map[string]any{"type": "object"}
	}
	return schema
}

// Call implements tool.Tool by invoking the server-side tool and collapsing
// its text content blocks into a single string result.
func (t *remoteTool) Call(ctx context.Context, args map[string]any) (any, error) {
	req := mcp.CallToolRequest{}
	req.Params.Name = t.def.Name
	req.Params.Arguments = args

	res, err := t.client.CallTool(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("mcp tool %s: %w", t.def.Name, err)
	}

	var sb strings.Builder
	for _, content := range res.Content {
		if tc, ok := content.(mcp.TextContent); ok {
			sb.WriteString(tc.Text)
		}
	}

	if res.IsError {
		return nil, fmt.Errorf("mcp tool %s: %s", t.def.Name, sb.String())
	}

	return sb.String(), nil
}
