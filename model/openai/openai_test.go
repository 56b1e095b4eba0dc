package openai

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	openaisdk "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbridge/graphbridge/core"
	"github.com/graphbridge/graphbridge/model"
)

func collect(respCh <-chan model.Response, errCh <-chan error) ([]model.Response, error) {
	var responses []model.Response
	for r := range respCh {
		responses = append(responses, r)
	}
	return responses, <-errCh
}

func newTestModel(t *testing.T, handler http.HandlerFunc, optFns ...func(o *Options)) *Model {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := openaisdk.NewClient(
		option.WithAPIKey("test-key"),
		option.WithBaseURL(srv.URL+"/"),
	)
	return NewModelFromClient(&client, optFns...)
}

func TestGenerate_NonStreaming(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{
			"id": "cmpl-1", "object": "chat.completion", "created": 1, "model": "m",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "hi there"}, "finish_reason": "stop"}],
			"usage": {"prompt_tokens": 3, "completion_tokens": 2, "total_tokens": 5}
		}`)
	})

	responses, err := collect(m.Generate(context.Background(), model.Request{
		Messages: []core.Message{core.NewUserMessage(core.TextPart{Text: "hello"})},
	}))
	require.NoError(t, err)

	require.Len(t, responses, 1)
	assert.False(t, responses[0].Partial)
	assert.Equal(t, "hi there", responses[0].Text)
	assert.Equal(t, "stop", responses[0].FinishReason)
	require.NotNil(t, responses[0].Usage)
	assert.Equal(t, 5, responses[0].Usage.TotalTokens)
}

// A client constructed with the Streaming option streams even when the
// request itself does not ask for it.
func TestGenerate_StreamingDefaultFromOptions(t *testing.T) {
	m := newTestModel(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		chunks := []string{
			`{"id":"c1","object":"chat.completion.chunk","created":1,"model":"m","choices":[{"index":0,"delta":{"content":"he"},"finish_reason":null}]}`,
			`{"id":"c1","object":"chat.completion.chunk","created":1,"model":"m","choices":[{"index":0,"delta":{"content":"llo"},"finish_reason":null}]}`,
			`{"id":"c1","object":"chat.completion.chunk","created":1,"model":"m","choices":[{"index":0,"delta":{},"finish_reason":"stop"}]}`,
		}
		for _, ck := range chunks {
			fmt.Fprintf(w, "data: %s\n\n", ck)
		}
		fmt.Fprint(w, "data: [DONE]\n\n")
	}, func(o *Options) {
		o.Streaming = true
	})

	responses, err := collect(m.Generate(context.Background(), model.Request{
		Messages: []core.Message{core.NewUserMessage(core.TextPart{Text: "hello"})},
	}))
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(responses), 3)
	assert.True(t, responses[0].Partial)
	final := responses[len(responses)-1]
	assert.False(t, final.Partial)
	assert.Equal(t, "hello", final.Text)
	assert.Equal(t, "stop", final.FinishReason)
}

func TestInfo(t *testing.T) {
	m := NewModel(func(o *Options) {
		o.Model = "llama3-70b-8192"
		o.APIKey = "test-key"
	})

	info := m.Info()
	assert.Equal(t, "llama3-70b-8192", info.Name)
	assert.Equal(t, "openai", info.Provider)
}
