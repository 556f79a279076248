package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNoCredential reports that no token is stored. Requests are never sent
// without one.
var ErrNoCredential = errors.New("no credential available")

// maxErrorBody bounds how much of a failure payload is read for its message.
const maxErrorBody = 1 << 20

// Error describes a non-2xx response from the remote. Message carries the
// payload's error text when the payload was decodable JSON; otherwise it is
// empty and the rendered error falls back to the status code alone.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("operation failed (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("%s (status %d)", e.Message, e.StatusCode)
}

// newError builds the typed error for a non-2xx response, pulling the
// server's message out of the JSON payload when one is present.
func newError(resp *http.Response) *Error {
	apiErr := &Error{StatusCode: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return apiErr
	}

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return apiErr
	}
	if payload.Error != "" {
		apiErr.Message = payload.Error
	} else if payload.Message != "" {
		apiErr.Message = payload.Message
	}
	return apiErr
}
