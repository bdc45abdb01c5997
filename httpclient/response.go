package httpclient

import (
	"encoding/json"
	"fmt"

	interrors "github.com/classpoint/classpoint-go/internal/errors"
)

// Envelope is the backend's standard JSON response shape. Error and Message
// are raw because misbehaving endpoints have been seen returning non-string
// values there (null, arrays, numbers, booleans).
type Envelope struct {
	Success *bool           `json:"success,omitempty"`
	Status  *string         `json:"status,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   json.RawMessage `json:"error,omitempty"`
	Message json.RawMessage `json:"message,omitempty"`
}

// APIError is a non-2xx backend response with its user-facing message.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// ErrorMessage extracts the user-facing message from an error response body.
// It prefers the "error" field, then "message"; anything that is not a
// non-empty JSON string falls back to the generic message, regardless of
// payload shape.
func ErrorMessage(body []byte) string {
	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return interrors.GenericMessage
	}

	if msg, ok := stringField(envelope.Error); ok {
		return msg
	}
	if msg, ok := stringField(envelope.Message); ok {
		return msg
	}
	return interrors.GenericMessage
}

func stringField(raw json.RawMessage) (string, bool) {
	if len(raw) == 0 {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil || s == "" {
		return "", false
	}
	return s, true
}
