package client

import (
	"encoding/json"
	"strings"
)

// Envelope is the JSON wrapper every backend endpoint responds with, for both
// success and domain errors.
type Envelope struct {
	Message    json.RawMessage `json:"message"`
	Data       json.RawMessage `json:"data"`
	StatusCode int             `json:"statusCode"`
	Path       string          `json:"path"`
}

// ExtractMessage unwraps the envelope's message field. Validation failures
// arrive as an array of field errors, which are joined into one line; when no
// usable envelope message is present the fallback is returned.
func (e *Envelope) ExtractMessage(fallback string) string {
	if len(e.Message) == 0 {
		return fallback
	}

	var single string
	if err := json.Unmarshal(e.Message, &single); err == nil && single != "" {
		return single
	}

	var many []string
	if err := json.Unmarshal(e.Message, &many); err == nil && len(many) > 0 {
		return strings.Join(many, ", ")
	}

	return fallback
}
