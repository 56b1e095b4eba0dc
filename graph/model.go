package graph

import (
	"fmt"

	anthropicsdk "github.com/anthropics/anthropic-sdk-go"

	"github.com/graphbridge/graphbridge/config"
	"github.com/graphbridge/graphbridge/model"
	"github.com/graphbridge/graphbridge/model/anthropic"
	"github.com/graphbridge/graphbridge/model/openai"
)

// newChatModel constructs a chat-model client from configuration. Called
// once per node: the worker and the supervisor each get an independent
// client instance. A missing credential fails here, which aborts the whole
// build.
func newChatModel(cfg config.ModelConfig) (model.Model, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("model %s: api key is required", cfg.Provider)
	}

	switch cfg.Provider {
	case "", "openai":
		return openai.NewModel(func(o *openai.Options) {
			o.Model = cfg.Model
			o.APIKey = cfg.APIKey
			o.BaseURL = cfg.BaseURL
			o.Temperature = cfg.Temperature
			o.Streaming = cfg.Streaming
		}), nil

	case "anthropic":
		return anthropic.NewModel(func(o *anthropic.Options) {
			o.Model = anthropicsdk.Model(cfg.Model)
			o.APIKey = cfg.APIKey
			o.Temperature = cfg.Temperature
			o.Streaming = cfg.Streaming
		}), nil

	default:
		return nil, fmt.Errorf("unsupported model provider: %s", cfg.Provider)
	}
}
