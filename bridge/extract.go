package bridge

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// extractReply pulls the assistant reply out of the final chunk's payload,
// transparently supporting the schema variants seen across hosted backend
// versions. Exactly one variant is consulted, in fixed priority order:
//
//	"messages"  legacy payload; reply is the content of the last entry
//	"response"  current default
//	"content"   emitted when the graph is configured for last-message output
//
// A payload matching none of the variants is unrepresentable and fails with
// a *SchemaError carrying the raw payload so operators can diagnose backend
// schema drift.
func extractReply(threadID string, data json.RawMessage) (string, error) {
	if msgs := gjson.GetBytes(data, "messages"); msgs.Exists() {
		entries := msgs.Array()
		if len(entries) == 0 {
			return "", &SchemaError{ThreadID: threadID, Payload: data}
		}
		return entries[len(entries)-1].Get("content").String(), nil
	}

	if resp := gjson.GetBytes(data, "response"); resp.Exists() {
		return resp.String(), nil
	}

	if content := gjson.GetBytes(data, "content"); content.Exists() {
		return content.String(), nil
	}

	return "", &SchemaError{ThreadID: threadID, Payload: data}
}
