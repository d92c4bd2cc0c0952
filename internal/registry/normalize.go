package registry

import (
	"bytes"
	"encoding/json"
)

// envelope mirrors the inconsistent wrappers the backend uses. Some routes
// answer {"success":true,"data":{...}}, some answer the entity bare, and
// error bodies carry either "message" or "error".
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// normalize is the single place response bodies are unwrapped. It returns the
// canonical payload bytes and the backend's error message, if any. A body
// that is not JSON at all yields ok=false.
func normalize(body []byte) (payload json.RawMessage, message string, ok bool) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, "", true
	}
	if !json.Valid(trimmed) {
		return nil, "", false
	}

	var env envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		// Valid JSON but not an object (e.g. a bare array): it is the payload.
		return trimmed, "", true
	}

	message = env.Message
	if message == "" {
		message = env.Error
	}

	if env.Success != nil || len(env.Data) > 0 {
		return env.Data, message, true
	}
	return trimmed, message, true
}
