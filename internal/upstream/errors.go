package upstream

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/parkscope/parkscope/internal/common"
)

// Kind is a canonical upstream failure class. The set is closed: every
// failure observed at the transport boundary maps to exactly one Kind.
type Kind string

const (
	KindMissingAPIKey Kind = "missing_api_key"
	KindHTTP          Kind = "http_error"
	KindTimeout       Kind = "timeout_error"
	KindNetwork       Kind = "network_error"
	KindParse         Kind = "parse_error"
	KindUnknown       Kind = "unknown_error"
	KindNotFound      Kind = "not_found"
)

// Error is the classified form of any upstream failure. It carries enough
// context to be returned verbatim to a caller as a structured document.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Details    map[string]any
}

func (e *Error) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (HTTP %d): %s", e.Kind, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Transient reports whether the failure is retry-eligible.
// Only timeouts and network failures qualify.
func (e *Error) Transient() bool {
	return e.Kind == KindTimeout || e.Kind == KindNetwork
}

// Document is the boundary representation of a failure: a plain JSON
// object callers can discriminate by the presence of the "error" field.
type Document struct {
	Error   string         `json:"error"`
	Message string         `json:"message"`
	Details map[string]any `json:"details,omitempty"`
}

// Document converts the error into its boundary form.
func (e *Error) Document() Document {
	details := e.Details
	if e.StatusCode > 0 {
		if details == nil {
			details = map[string]any{}
		}
		details["statusCode"] = e.StatusCode
	}
	return Document{
		Error:   string(e.Kind),
		Message: e.Message,
		Details: details,
	}
}

// MissingAPIKey builds the canonical error for an absent credential.
// No network call is made for requests that fail this way.
func MissingAPIKey(provider string) *Error {
	return &Error{
		Kind:    KindMissingAPIKey,
		Message: provider + " API key not configured",
		Details: map[string]any{"provider": provider},
	}
}

// classifyTransport maps a failed http.Client round trip onto the
// taxonomy. Deadline and timeout failures come first, then anything that
// looks like a connectivity problem, then the catch-all.
func classifyTransport(err error, url string) *Error {
	details := map[string]any{"url": url, "error": err.Error()}

	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "Request timed out", Details: details}
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return &Error{Kind: KindTimeout, Message: "Request timed out", Details: details}
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) || isNetworkMessage(err) {
		return &Error{Kind: KindNetwork, Message: "Network error occurred", Details: details}
	}

	return &Error{Kind: KindUnknown, Message: "Unexpected error occurred", Details: details}
}

// isNetworkMessage catches connectivity failures that surface without a
// typed cause, such as TLS handshake and abrupt connection errors.
func isNetworkMessage(err error) bool {
	return common.HasAny(err.Error(),
		"connection refused",
		"connection reset",
		"no such host",
		"network is unreachable",
		"tls:",
		"x509:",
		"EOF",
	)
}
