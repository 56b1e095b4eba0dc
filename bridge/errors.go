package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Input validation errors returned by Invoke before any network call.
var (
	// ErrEmptyID is returned when the caller supplies an empty identifier.
	ErrEmptyID = errors.New("bridge: id must not be empty")

	// ErrEmptyContent is returned when neither a user message nor a
	// well-formed image is supplied; the hosted service's behavior for a
	// contentless run is undefined, so the request is rejected here.
	ErrEmptyContent = errors.New("bridge: user message and images are both empty")
)

// ConfigError reports an unparseable static bridge configuration. Raised at
// construction time only.
type ConfigError struct {
	Err error
}

// Error implements the error interface.
func (e *ConfigError) Error() string { return fmt.Sprintf("bridge: %v", e.Err) }

// Unwrap returns the underlying parse error.
func (e *ConfigError) Unwrap() error { return e.Err }

// RunError reports a transport or protocol failure during a streamed run.
// Tagged with the thread id for correlation; never retried at this layer.
type RunError struct {
	ThreadID string
	Err      error
}

// Error implements the error interface.
func (e *RunError) Error() string {
	return fmt.Sprintf("bridge: run failed for thread %s: %v", e.ThreadID, e.Err)
}

// Unwrap returns the underlying transport error.
func (e *RunError) Unwrap() error { return e.Err }

// SchemaError reports a final-chunk payload matching none of the recognized
// reply shapes. The raw payload is carried for diagnostics.
type SchemaError struct {
	ThreadID string
	Payload  json.RawMessage
}

// Error implements the error interface.
func (e *SchemaError) Error() string {
	return fmt.Sprintf("bridge: unexpected assistant payload for thread %s: %s", e.ThreadID, string(e.Payload))
}
