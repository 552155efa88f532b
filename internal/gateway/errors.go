package gateway

import (
	"errors"
	"fmt"
)

// ErrUnreachable marks transport-level failures (DNS, refused
// connection, timeout) so callers can tell "could not reach server"
// apart from a backend rejection.
var ErrUnreachable = errors.New("cannot reach server")

// APIError is a non-2xx reply from the backend, message verbatim.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend rejected request (status %d): %s", e.Status, e.Message)
}

// Message returns the display text for err per the client's error
// taxonomy: the backend's own message for API errors, a generic
// connectivity message for transport failures.
func Message(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	if errors.Is(err, ErrUnreachable) {
		return "Could not reach the server. Please try again."
	}
	if err != nil {
		return fallback
	}
	return ""
}
