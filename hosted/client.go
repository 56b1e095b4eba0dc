// Package hosted implements core.RunClient against a hosted agent-graph
// service speaking the thread/run streaming API: runs are opened with a
// POST to /threads/{thread_id}/runs/stream and results arrive as
// server-sent events until the run completes.
package hosted

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/openai/openai-go/packages/ssestream"

	"github.com/graphbridge/graphbridge/core"
	"github.com/graphbridge/graphbridge/logging"
)

// Options configures the hosted-run client.
type Options struct {
	// HTTPClient performs the streaming request. The default client has no
	// overall timeout: run duration is bounded by the caller's context, not
	// by the transport.
	HTTPClient *http.Client

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Client streams runs from a hosted graph service. Stateless per call and
// safe for concurrent use.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     logging.Logger
}

// New creates a hosted-run client for the service at baseURL.
func New(baseURL string, optFns ...func(o *Options)) *Client {
	opts := Options{
		HTTPClient: &http.Client{Timeout: 0},
		Logger:     logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
	}
}

// StreamRun implements core.RunClient. Chunks are delivered in arrival
// order; both channels are closed when the stream terminates and at most
// one error is sent. Transport and protocol failures surface on the error
// channel, they are never converted into a synthetic final chunk.
func (c *Client) StreamRun(ctx context.Context, req core.RunRequest) (<-chan core.Chunk, <-chan error) {
	out := make(chan core.Chunk, 16)
	errCh := make(chan error, 1)

	go func() {
		defer close(out)
		defer close(errCh)

		body, err := json.Marshal(req)
		if err != nil {
			errCh <- fmt.Errorf("encode run request: %w", err)
			return
		}

		url := fmt.Sprintf("%s/threads/%s/runs/stream", c.baseURL, req.ThreadID)

		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
		if err != nil {
			errCh <- fmt.Errorf("build run request: %w", err)
			return
		}
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("Accept", "text/event-stream")
		httpReq.Header.Set("Cache-Control", "no-store")

		start := time.Now()

		res, err := c.httpClient.Do(httpReq)
		if err != nil {
			errCh <- fmt.Errorf("open run stream: %w", err)
			return
		}
		defer res.Body.Close()

		if res.StatusCode != http.StatusOK {
			msg, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
			errCh <- fmt.Errorf("open run stream: unexpected status %d: %s", res.StatusCode, strings.TrimSpace(string(msg)))
			return
		}

		decoder := ssestream.NewDecoder(res)
		count := 0

		for decoder.Next() {
			evt := decoder.Event()

			// The decoder may reuse its buffer between events.
			data := make(json.RawMessage, len(evt.Data))
			copy(data, evt.Data)

			select {
			case out <- core.Chunk{Event: evt.Type, Data: data}:
				count++
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		if err := decoder.Err(); err != nil {
			errCh <- fmt.Errorf("read run stream: %w", err)
			return
		}

		c.logger.Debug("run stream complete",
			"thread_id", req.ThreadID,
			"chunks", count,
			"duration", time.Since(start),
		)
	}()

	return out, errCh
}
