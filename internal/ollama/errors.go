package ollama

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// UpstreamError reports a non-success status returned by the daemon.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func newUpstreamError(op string, status int, body []byte) *UpstreamError {
	return &UpstreamError{Op: op, Status: status, Body: strings.TrimSpace(string(body))}
}

// Message returns the daemon's own error text when the body is an
// {"error": "..."} object, otherwise the raw body.
func (e *UpstreamError) Message() string {
	var payload struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal([]byte(e.Body), &payload); err == nil && payload.Error != "" {
		return payload.Error
	}
	return e.Body
}

func (e *UpstreamError) Error() string {
	msg := e.Message()
	if msg == "" {
		return fmt.Sprintf("%s: upstream status %d", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: upstream status %d: %s", e.Op, e.Status, msg)
}

// StatusCode lets the HTTP layer map the failure if it chooses to.
func (e *UpstreamError) StatusCode() int { return e.Status }

// TransportError reports a connection, timeout or read failure reaching the daemon.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string { return e.Op + ": " + e.Err.Error() }

func (e *TransportError) Unwrap() error { return e.Err }

// IsUpstream reports whether err is or wraps an *UpstreamError.
func IsUpstream(err error) bool {
	var ue *UpstreamError
	return errors.As(err, &ue)
}

// IsTransport reports whether err is or wraps a *TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
