package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
)

// ErrNotFound matches (via errors.Is) an HTTPError carrying a 404 status.
var ErrNotFound = errors.New("resource not found")

const unknownServerError = "Unknown server error"

// TransportUnreachableError reports a request that left the client without a
// response coming back: connection refused, DNS failure, timeout, cancellation.
type TransportUnreachableError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportUnreachableError) Error() string {
	return fmt.Sprintf("%s %s: no response received from server: %v", e.Method, e.Path, e.Err)
}

func (e *TransportUnreachableError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the request was abandoned because it ran out of time.
func (e *TransportUnreachableError) Timeout() bool {
	var netErr net.Error
	if errors.As(e.Err, &netErr) {
		return netErr.Timeout()
	}
	return false
}

// HTTPError reports a response whose status falls outside 200-299.
// Body is kept verbatim up to 10MB; Truncated marks a body cut at that limit.
type HTTPError struct {
	Method    string
	Path      string
	Status    int
	Body      []byte
	Truncated bool
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: server returned %d %s: %s", e.Method, e.Path, e.Status, http.StatusText(e.Status), e.Message())
}

func (e *HTTPError) Is(target error) bool {
	return target == ErrNotFound && e.Status == http.StatusNotFound
}

// Message extracts a human-readable message from the response body. Plain
// text is returned as is; for a JSON object the "message" (or "error") field
// is preferred, falling back to the raw JSON.
func (e *HTTPError) Message() string {
	return bodyMessage(e.Body)
}

// RequestSetupError reports a request that could not be built or sent:
// invalid base URL, unserializable payload.
type RequestSetupError struct {
	Method string
	Path   string
	Err    error
}

func (e *RequestSetupError) Error() string {
	return fmt.Sprintf("%s %s: error setting up request: %v", e.Method, e.Path, e.Err)
}

func (e *RequestSetupError) Unwrap() error {
	return e.Err
}

// ResponseDecodeError reports a 2xx response whose body is not the expected JSON.
type ResponseDecodeError struct {
	Method string
	Path   string
	Status int
	Body   []byte
	Err    error
}

func (e *ResponseDecodeError) Error() string {
	return fmt.Sprintf("%s %s: failed to decode %d response: %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *ResponseDecodeError) Unwrap() error {
	return e.Err
}

func bodyMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return unknownServerError
	}

	var decoded any
	if err := json.Unmarshal([]byte(trimmed), &decoded); err != nil {
		return trimmed
	}

	switch v := decoded.(type) {
	case string:
		if v == "" {
			return unknownServerError
		}
		return v
	case map[string]any:
		for _, key := range []string{"message", "error"} {
			if msg, ok := v[key].(string); ok && msg != "" {
				return msg
			}
		}
	}

	return trimmed
}

// statusHint mirrors the guidance logged for common failure statuses.
func statusHint(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Bad request. Check your input data."
	case http.StatusUnauthorized:
		return "Unauthorized. Authentication may be required."
	case http.StatusForbidden:
		return "Forbidden. You do not have permission to access this resource."
	case http.StatusNotFound:
		return "Resource not found. Check URL and parameters."
	case http.StatusInternalServerError:
		return "Server error. Check the backend logs for more information."
	}
	return ""
}
