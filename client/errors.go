package client

import (
	"fmt"
	"net/http"

	apperrors "github.com/needhomes/needhomes-go/internal/errors"
)

// APIError is a non-2xx backend response, carrying the message extracted from
// the response envelope. A 401 wraps ErrUnauthorized so callers can match it
// with errors.Is.
type APIError struct {
	StatusCode int
	Message    string
	Path       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("api error %d on %s: %s", e.StatusCode, e.Path, e.Message)
}

func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusUnauthorized {
		return apperrors.ErrUnauthorized
	}
	return nil
}
