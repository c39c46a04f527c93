// server/internal/ai/response.go
package ai

import (
	"encoding/json"
	"errors"
	"strings"
)

// The service answers with a single JSON object, often wrapped in markdown
// code fences. The parse contract: strip known wrappers, require a JSON
// object, and fail closed on anything else. Partially parsed data never
// reaches a caller.

var ErrNotObject = errors.New("AI response is not a JSON object")

// StripCodeFences removes ```json / ``` markers around a response body.
func StripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}

// ParseObject validates raw response text against the parse contract and
// returns the decoded object.
func ParseObject(raw string) (map[string]interface{}, error) {
	cleaned := StripCodeFences(raw)
	if cleaned == "" {
		return nil, errors.New("AI response is empty")
	}

	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(cleaned), &obj); err != nil {
		return nil, ErrNotObject
	}
	return obj, nil
}

// ErrorFlag inspects the declared error field of a schema response. When the
// service reports a failure the message must be surfaced to the caller, never
// discarded.
func ErrorFlag(obj map[string]interface{}) (message string, flagged bool) {
	v, ok := obj["error"].(bool)
	if !ok || !v {
		return "", false
	}
	message, _ = obj["errorMessage"].(string)
	if message == "" {
		message = "The AI service could not process the request"
	}
	return message, true
}
