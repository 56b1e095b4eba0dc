// Package core defines the wire-level data model shared by the session
// bridge and the hosted-run client: multi-modal message content, the run
// request envelope and the streamed chunk shape. Concrete part types
// implement the unexported isPart marker enabling a closed set.
package core

import "encoding/json"

// Part represents a polymorphic segment of message content.
type Part interface{ isPart() }

// TextPart is a plain text content segment.
type TextPart struct {
	Text string
}

// isPart implements the Part interface for TextPart.
func (TextPart) isPart() {}

// MarshalJSON emits the provider wire shape {"type":"text","text":...}.
func (p TextPart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type string `json:"type"`
		Text string `json:"text"`
	}{Type: "text", Text: p.Text})
}

// ImageURL references an image by URL. Data URLs are accepted unchanged.
type ImageURL struct {
	URL string `json:"url"`
}

// ImagePart is an image content segment.
type ImagePart struct {
	ImageURL ImageURL
}

// isPart implements the Part interface for ImagePart.
func (ImagePart) isPart() {}

// MarshalJSON emits the provider wire shape
// {"type":"image_url","image_url":{"url":...}}.
func (p ImagePart) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Type     string   `json:"type"`
		ImageURL ImageURL `json:"image_url"`
	}{Type: "image_url", ImageURL: p.ImageURL})
}

// Message is a single role-scoped message holding ordered content parts.
type Message struct {
	Role    string `json:"role"`
	Content []Part `json:"content"`
}

// NewUserMessage wraps content parts in a user-role message.
func NewUserMessage(parts ...Part) Message {
	return Message{Role: "user", Content: parts}
}
