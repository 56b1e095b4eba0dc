// Package graphbridge relays conversations between a phone-number-keyed
// messaging channel and a remotely hosted agent graph. Most applications
// interact with this package by:
//  1. Loading configuration from the environment (config.Load)
//  2. Creating a GraphBridge via New()
//  3. Calling Invoke once per inbound user message and forwarding the
//     returned text back to the channel
//
// The facade wires the hosted-run client to the session bridge while
// keeping setup ergonomics concise. The agent graph itself is assembled
// separately (package graph) by whatever process hosts the remote service.
package graphbridge

import (
	"context"
	"net/http"

	"github.com/graphbridge/graphbridge/bridge"
	"github.com/graphbridge/graphbridge/config"
	"github.com/graphbridge/graphbridge/hosted"
	"github.com/graphbridge/graphbridge/logging"
)

// Options configures the GraphBridge instance.
type Options struct {
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger

	// HTTPClient overrides the transport used for the hosted service.
	HTTPClient *http.Client
}

// GraphBridge is the high-level facade aggregating the hosted-run client
// and the session bridge.
type GraphBridge struct {
	bridge *bridge.Bridge
}

// New creates a GraphBridge from configuration. A malformed graph config
// string fails here, before any Invoke call is possible.
func New(cfg *config.Config, optFns ...func(o *Options)) (*GraphBridge, error) {
	opts := Options{
		Logger: logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	client := hosted.New(cfg.GraphURL, func(o *hosted.Options) {
		o.Logger = opts.Logger
		if opts.HTTPClient != nil {
			o.HTTPClient = opts.HTTPClient
		}
	})

	b, err := bridge.New(client, cfg.AssistantID, func(o *bridge.Options) {
		o.ConfigJSON = cfg.GraphConfigJSON
		o.Logger = opts.Logger
	})
	if err != nil {
		return nil, err
	}

	return &GraphBridge{bridge: b}, nil
}

// Invoke sends one user message (plus optional images) to the assistant
// and returns the final reply text. See bridge.Bridge.Invoke for the full
// contract.
func (g *GraphBridge) Invoke(ctx context.Context, id, userMessage string, images []map[string]any) (string, error) {
	return g.bridge.Invoke(ctx, id, userMessage, images)
}
