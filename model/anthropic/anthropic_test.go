package anthropic

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbridge/graphbridge/core"
	"github.com/graphbridge/graphbridge/model"
)

// warnRecorder counts warning breadcrumbs.
type warnRecorder struct {
	warns []string
}

func (r *warnRecorder) Debug(string, ...any)      {}
func (r *warnRecorder) Info(string, ...any)       {}
func (r *warnRecorder) Warn(msg string, _ ...any) { r.warns = append(r.warns, msg) }
func (r *warnRecorder) Error(string, ...any)      {}

func collect(respCh <-chan model.Response, errCh <-chan error) ([]model.Response, error) {
	var responses []model.Response
	for r := range respCh {
		responses = append(responses, r)
	}
	return responses, <-errCh
}

func newTestModel(t *testing.T, optFns ...func(o *Options)) *Model {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "msg_1", "type": "message", "role": "assistant", "model": "m",
			"content": [{"type": "text", "text": "hi there"}],
			"stop_reason": "end_turn", "stop_sequence": null,
			"usage": {"input_tokens": 3, "output_tokens": 2}
		}`)
	}))
	t.Cleanup(srv.Close)

	client := anthropicsdk.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL+"/"),
	)
	return NewModelFromClient(&client, optFns...)
}

func TestGenerate_SingleResponse(t *testing.T) {
	rec := &warnRecorder{}
	m := newTestModel(t, func(o *Options) {
		o.Logger = rec
	})

	responses, err := collect(m.Generate(context.Background(), model.Request{
		Messages: []core.Message{core.NewUserMessage(core.TextPart{Text: "hello"})},
	}))
	require.NoError(t, err)

	require.Len(t, responses, 1)
	assert.False(t, responses[0].Partial)
	assert.Equal(t, "hi there", responses[0].Text)
	assert.Equal(t, "end_turn", responses[0].FinishReason)
	assert.Empty(t, rec.warns, "non-streaming request must not warn")
}

// A streaming request is answered with one final response and leaves a
// warning breadcrumb about the downgrade.
func TestGenerate_StreamRequestWarnsAndDowngrades(t *testing.T) {
	rec := &warnRecorder{}
	m := newTestModel(t, func(o *Options) {
		o.Logger = rec
	})

	responses, err := collect(m.Generate(context.Background(), model.Request{
		Messages: []core.Message{core.NewUserMessage(core.TextPart{Text: "hello"})},
		Stream:   true,
	}))
	require.NoError(t, err)

	require.Len(t, responses, 1)
	assert.False(t, responses[0].Partial)
	require.Len(t, rec.warns, 1)
	assert.Contains(t, rec.warns[0], "streaming not implemented")
}

// The Streaming option triggers the same downgrade warning as a per-request
// Stream flag.
func TestGenerate_StreamingOptionWarns(t *testing.T) {
	rec := &warnRecorder{}
	m := newTestModel(t, func(o *Options) {
		o.Logger = rec
		o.Streaming = true
	})

	_, err := collect(m.Generate(context.Background(), model.Request{
		Messages: []core.Message{core.NewUserMessage(core.TextPart{Text: "hello"})},
	}))
	require.NoError(t, err)
	require.Len(t, rec.warns, 1)
}

func TestInfo(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.Model = anthropicsdk.ModelClaude3_5Sonnet20241022
		o.APIKey = "test-key"
	})

	info := m.Info()
	assert.Equal(t, string(anthropicsdk.ModelClaude3_5Sonnet20241022), info.Name)
	assert.Equal(t, "anthropic", info.Provider)
}
