package core

import (
	"context"
	"encoding/json"
)

// Control flag values understood by the hosted run API.
const (
	// MultitaskInterrupt preempts any in-flight run for the same thread
	// instead of queuing behind it.
	MultitaskInterrupt = "interrupt"
	// IfNotExistsCreate creates the thread on first use and reuses it
	// thereafter.
	IfNotExistsCreate = "create"
	// StreamModeValues streams cumulative state snapshots; each chunk
	// supersedes the previous one.
	StreamModeValues = "values"
)

// RunRequest is the envelope for one streamed invocation of the hosted
// agent graph. Built fresh per call and discarded afterwards.
type RunRequest struct {
	ThreadID          string         `json:"thread_id"`
	AssistantID       string         `json:"assistant_id"`
	Input             RunInput       `json:"input"`
	Config            map[string]any `json:"config,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	MultitaskStrategy string         `json:"multitask_strategy"`
	IfNotExists       string         `json:"if_not_exists"`
	StreamMode        string         `json:"stream_mode"`
}

// RunInput carries the message list handed to the graph.
type RunInput struct {
	Messages []Message `json:"messages"`
}

// Chunk is one unit of streamed run output. Under StreamModeValues only the
// last chunk observed before stream termination is semantically meaningful.
type Chunk struct {
	Event string
	Data  json.RawMessage
}

// RunClient opens streaming runs against a hosted graph service. Both
// returned channels are closed when the stream terminates; at most one
// error is delivered.
type RunClient interface {
	StreamRun(ctx context.Context, req RunRequest) (<-chan Chunk, <-chan error)
}
