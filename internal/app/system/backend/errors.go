// internal/app/system/backend/errors.go
package backend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrNotJSON is returned when an endpoint that must answer with JSON did
// not (for example a proxy error page in front of the backend).
var ErrNotJSON = errors.New("backend: response is not JSON")

// ErrNoToken is returned by Session calls made without an admin token.
var ErrNoToken = errors.New("backend: no admin token")

// APIError is a failure reported by the backend: either a non-2xx status,
// or (App == true) a 2xx response whose body said {"success": false}.
type APIError struct {
	StatusCode int
	Message    string
	Body       string
	App        bool
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error %d: %s", e.StatusCode, strings.TrimSpace(e.Body))
}

// Detail returns the message, or the raw body for endpoints that answer
// failures in plain text.
func (e *APIError) Detail() string {
	if e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(e.Body)
}

// AsAPIError unwraps err to an *APIError.
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// StatusCode returns the upstream status carried by err, or 0.
func StatusCode(err error) int {
	if apiErr, ok := AsAPIError(err); ok {
		return apiErr.StatusCode
	}
	return 0
}

// IsUnauthorized reports a 401 or 403 from the backend.
func IsUnauthorized(err error) bool {
	code := StatusCode(err)
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// MessageOr returns the backend's message for err when it sent one, and
// fallback for transport failures or message-less errors.
func MessageOr(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok && apiErr.Message != "" {
		return apiErr.Message
	}
	return fallback
}

// DetailOr is like MessageOr but also accepts a plain-text error body.
func DetailOr(err error, fallback string) string {
	if apiErr, ok := AsAPIError(err); ok {
		if d := apiErr.Detail(); d != "" {
			return d
		}
	}
	return fallback
}

// appError converts a {success:false} body into an error.
func appError(status int, success bool, message string) error {
	if success {
		return nil
	}
	return &APIError{StatusCode: status, Message: message, App: true}
}
