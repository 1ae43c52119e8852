package clockify

import (
	"errors"
	"fmt"
	"net/http"
)

// Error taxonomy surfaced to the rest of the system. Callers match with
// errors.Is; the wrapped message carries the server's response body.
var (
	// ErrAuth means the API key is missing, invalid, or unauthorized.
	ErrAuth = errors.New("clockify: authentication failed")
	// ErrNotFound means the addressed resource does not exist, typically
	// a time entry already stopped or deleted on the website.
	ErrNotFound = errors.New("clockify: not found")
	// ErrValidation means a required identifier is absent or the server
	// rejected the request payload.
	ErrValidation = errors.New("clockify: validation failed")
	// ErrNetwork wraps transport-level failures (DNS, refused, timeout).
	ErrNetwork = errors.New("clockify: network error")
)

func statusError(status int, body string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: status %d: %s", ErrAuth, status, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: status %d: %s", ErrNotFound, status, body)
	case http.StatusBadRequest:
		return fmt.Errorf("%w: status %d: %s", ErrValidation, status, body)
	default:
		return fmt.Errorf("clockify: unexpected status %d: %s", status, body)
	}
}
