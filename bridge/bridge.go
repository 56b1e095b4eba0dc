// Package bridge relays messages between a messaging channel and a remotely
// hosted agent graph. The Bridge owns thread-identity derivation, payload
// construction, streaming consumption and reply extraction; transport of
// inbound user messages and outbound replies is the caller's concern.
//
// One operation is exposed: Invoke sends a user message (plus optional
// images) to the hosted assistant and returns its final reply. A stable
// thread id is derived from the caller-supplied identifier so every
// identifier maps onto a single conversation thread on the hosted side;
// the bridge itself keeps no state between calls.
package bridge

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/graphbridge/graphbridge/core"
	"github.com/graphbridge/graphbridge/logging"
	"github.com/graphbridge/graphbridge/session"
)

// Options configures a Bridge instance.
type Options struct {
	// ConfigJSON is the raw graph configuration, passed through opaquely to
	// every run. Parsed once at construction; invalid JSON fails New.
	ConfigJSON string

	// Config is an already-structured graph configuration. Ignored when
	// ConfigJSON is set.
	Config map[string]any

	// Metadata is attached to every run. Defaults to {"event": "api_call"}.
	Metadata map[string]any

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Bridge is a thin facade over a hosted-run client. Safe for concurrent use;
// each Invoke call is independent.
type Bridge struct {
	client      core.RunClient
	assistantID string
	config      map[string]any
	metadata    map[string]any
	logger      logging.Logger
}

// New creates a Bridge talking to the given hosted-run client on behalf of
// the named assistant. A malformed ConfigJSON surfaces here as a
// *ConfigError, never at call time.
func New(client core.RunClient, assistantID string, optFns ...func(o *Options)) (*Bridge, error) {
	opts := Options{
		Metadata: map[string]any{"event": "api_call"},
		Logger:   logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	cfg := opts.Config
	if opts.ConfigJSON != "" {
		cfg = map[string]any{}
		if err := json.Unmarshal([]byte(opts.ConfigJSON), &cfg); err != nil {
			return nil, &ConfigError{Err: fmt.Errorf("config is not valid JSON: %w", err)}
		}
	}
	if cfg == nil {
		cfg = map[string]any{}
	}

	return &Bridge{
		client:      client,
		assistantID: assistantID,
		config:      cfg,
		metadata:    opts.Metadata,
		logger:      opts.Logger,
	}, nil
}

// Invoke sends userMessage (and images) to the assistant and returns the
// final reply text.
//
// The id (typically a phone number) is hashed into a deterministic thread id
// so each user keeps a single conversation thread. Images are supplied as
// mappings shaped {"image_url": {"url": ...}}; malformed entries are skipped
// silently. A request with neither text nor a well-formed image is rejected
// with ErrEmptyContent before any network call.
//
// The run is streamed to completion; only the last chunk is inspected. Its
// payload is probed for the recognized reply shapes in fixed priority order:
// "messages" (legacy, content of last entry), then "response", then
// "content". An unrecognized payload fails with a *SchemaError carrying the
// raw payload.
func (b *Bridge) Invoke(ctx context.Context, id, userMessage string, images []map[string]any) (string, error) {
	if id == "" {
		return "", ErrEmptyID
	}

	parts := buildParts(userMessage, images)
	if len(parts) == 0 {
		return "", ErrEmptyContent
	}

	threadID := session.DeriveThreadID(id)
	b.logger.Info("invoking assistant", "thread_id", threadID)

	req := core.RunRequest{
		ThreadID:          threadID,
		AssistantID:       b.assistantID,
		Input:             core.RunInput{Messages: []core.Message{core.NewUserMessage(parts...)}},
		Config:            b.config,
		Metadata:          b.metadata,
		MultitaskStrategy: core.MultitaskInterrupt,
		IfNotExists:       core.IfNotExistsCreate,
		StreamMode:        core.StreamModeValues,
	}

	// Only the last chunk carries the full assistant reply under
	// stream_mode=values.
	var final core.Chunk

	chunks, errs := b.client.StreamRun(ctx, req)
	for chunk := range chunks {
		final = chunk
	}
	if err := <-errs; err != nil {
		b.logger.Error("run failed", "thread_id", threadID, "error", err)
		return "", &RunError{ThreadID: threadID, Err: err}
	}

	return extractReply(threadID, final.Data)
}

// buildParts assembles the ordered content-part sequence: at most one text
// part (first, iff userMessage is non-empty) followed by one image part per
// well-formed image entry, in the order supplied.
func buildParts(userMessage string, images []map[string]any) []core.Part {
	parts := make([]core.Part, 0, len(images)+1)
	if userMessage != "" {
		parts = append(parts, core.TextPart{Text: userMessage})
	}

	for _, img := range images {
		raw, ok := img["image_url"]
		if !ok {
			continue
		}
		var url string
		switch v := raw.(type) {
		case map[string]any:
			url, _ = v["url"].(string)
		case core.ImageURL:
			url = v.URL
		case string:
			url = v
		}
		if url == "" {
			continue
		}
		parts = append(parts, core.ImagePart{ImageURL: core.ImageURL{URL: url}})
	}

	return parts
}
