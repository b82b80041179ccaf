package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// OverlapToken is the marker the backend puts in scheduling-conflict messages.
const OverlapToken = "solapa"

// RequestError is a non-2xx response. Message holds the server's structured
// error text and is empty when the body carried none.
type RequestError struct {
	Method    string
	Path      string
	Status    int
	Message   string
	RequestID string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("api: %s %s: %s", e.Method, e.Path, http.StatusText(e.StatusCode()))
}

// StatusCode returns the HTTP status of the rejection.
func (e *RequestError) StatusCode() int {
	if e.Status <= 0 {
		return http.StatusInternalServerError
	}
	return e.Status
}

// Structured reports whether the server explained the rejection.
func (e *RequestError) Structured() bool {
	return strings.TrimSpace(e.Message) != ""
}

// TransportError wraps failures where no response was received.
type TransportError struct {
	Method string
	Path   string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("api: %s %s: %v", e.Method, e.Path, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DecodeError wraps responses that could not be read or did not match the
// contract.
type DecodeError struct {
	Method string
	Path   string
	Status int
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("api: %s %s (%d): decode response: %v", e.Method, e.Path, e.Status, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ServerMessage returns the structured error text carried by err, if any.
func ServerMessage(err error) (string, bool) {
	var reqErr *RequestError
	if errors.As(err, &reqErr) && reqErr.Structured() {
		return strings.TrimSpace(reqErr.Message), true
	}
	return "", false
}

// IsOverlapConflict reports whether err is a scheduling-overlap rejection.
func IsOverlapConflict(err error) bool {
	msg, ok := ServerMessage(err)
	return ok && strings.Contains(strings.ToLower(msg), OverlapToken)
}

// IsUnauthorized reports whether err is a 401 or 403 rejection.
func IsUnauthorized(err error) bool {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return false
	}
	return reqErr.Status == http.StatusUnauthorized || reqErr.Status == http.StatusForbidden
}
