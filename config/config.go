// Package config reads the process environment into typed configuration for
// the bridge and the graph assembler. Only plumbing lives here; validation
// that depends on use (e.g. a missing model credential) is enforced where
// the value is consumed.
package config

import "os"

// Default model backend values for the Groq OpenAI-compatible endpoint.
const (
	DefaultModel   = "llama3-70b-8192"
	DefaultBaseURL = "https://api.groq.com/openai/v1"
)

// ModelConfig describes the chat-model backend shared by both graph nodes.
// The same config is used to construct two independent client instances,
// one per node.
type ModelConfig struct {
	Provider    string // "openai" (default) or "anthropic"
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	Streaming   bool
}

// Config aggregates everything graphbridge reads from the environment.
type Config struct {
	// AssistantID names the hosted assistant runs are issued against.
	AssistantID string

	// GraphURL is the base URL of the hosted graph service.
	GraphURL string

	// GraphConfigJSON is the raw per-run configuration (JSON), passed
	// through to the hosted service opaquely.
	GraphConfigJSON string

	Model ModelConfig

	// Named tool-provider endpoint URLs. An empty URL disables the
	// integration; it is dropped before any connection attempt.
	ZapierMCPURL      string
	SupermemoryMCPURL string
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load reads all env vars and builds the config.
func Load() *Config {
	return &Config{
		AssistantID:     getEnv("ASSISTANT_ID", "agent"),
		GraphURL:        getEnv("LANGGRAPH_URL", "http://localhost:8123"),
		GraphConfigJSON: os.Getenv("CONFIG"),

		Model: ModelConfig{
			Provider:    getEnv("MODEL_PROVIDER", "openai"),
			Model:       getEnv("GROQ_MODEL", DefaultModel),
			APIKey:      os.Getenv("GROQ_API_KEY"),
			BaseURL:     getEnv("OPENAI_API_BASE", DefaultBaseURL),
			Temperature: 0.2,
			Streaming:   true,
		},

		ZapierMCPURL:      os.Getenv("ZAPIER_URL_MCP"),
		SupermemoryMCPURL: os.Getenv("SUPERMEMORY_URL_MCP"),
	}
}
