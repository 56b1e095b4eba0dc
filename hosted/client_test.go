package hosted

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphbridge/graphbridge/core"
)

func collect(chunks <-chan core.Chunk, errs <-chan error) ([]core.Chunk, error) {
	var got []core.Chunk
	for ck := range chunks {
		got = append(got, ck)
	}
	return got, <-errs
}

func testRequest() core.RunRequest {
	return core.RunRequest{
		ThreadID:          "thread-1",
		AssistantID:       "assistant-1",
		Input:             core.RunInput{Messages: []core.Message{core.NewUserMessage(core.TextPart{Text: "hi"})}},
		MultitaskStrategy: core.MultitaskInterrupt,
		IfNotExists:       core.IfNotExistsCreate,
		StreamMode:        core.StreamModeValues,
	}
}

func TestStreamRun_DeliversChunksInOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/threads/thread-1/runs/stream", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req core.RunRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "interrupt", req.MultitaskStrategy)

		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		for _, payload := range []string{`{"content":"partial"}`, `{"content":"final reply"}`} {
			fmt.Fprintf(w, "event: values\ndata: %s\n\n", payload)
			flusher.Flush()
		}
	}))
	defer srv.Close()

	client := New(srv.URL)
	got, err := collect(client.StreamRun(context.Background(), testRequest()))
	require.NoError(t, err)

	require.Len(t, got, 2)
	assert.Equal(t, "values", got[0].Event)
	assert.JSONEq(t, `{"content":"partial"}`, string(got[0].Data))
	assert.JSONEq(t, `{"content":"final reply"}`, string(got[1].Data))
}

func TestStreamRun_NonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "assistant not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := New(srv.URL)
	got, err := collect(client.StreamRun(context.Background(), testRequest()))

	assert.Empty(t, got)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
	assert.Contains(t, err.Error(), "assistant not found")
}

func TestStreamRun_TransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // refuse connections

	client := New(srv.URL)
	got, err := collect(client.StreamRun(context.Background(), testRequest()))

	assert.Empty(t, got)
	require.Error(t, err)
}

func TestStreamRun_ContextCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		flusher := w.(http.Flusher)
		fmt.Fprint(w, "event: values\ndata: {\"content\":\"first\"}\n\n")
		flusher.Flush()
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())

	client := New(srv.URL)
	chunks, errs := client.StreamRun(ctx, testRequest())

	first := <-chunks
	assert.JSONEq(t, `{"content":"first"}`, string(first.Data))

	cancel()

	for range chunks {
	}
	require.Error(t, <-errs)
}
