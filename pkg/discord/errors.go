package discord

import (
	"context"
	"errors"
	"fmt"
	"net"
)

var (
	// ErrUpstreamAuth marks a request Discord rejected or answered with a
	// body we could not make sense of. Surfaced to callers as an
	// authentication failure; never retried here.
	ErrUpstreamAuth = errors.New("discord: upstream rejected request")

	// ErrUpstreamTimeout marks an outbound call that exceeded its bound.
	// Transient; the user-facing action may be retried but this client
	// does not retry internally.
	ErrUpstreamTimeout = errors.New("discord: upstream call timed out")
)

// APIError carries the detail behind one of the sentinel errors above.
// errors.Is(err, ErrUpstreamAuth) and errors.Is(err, ErrUpstreamTimeout)
// both work through it.
type APIError struct {
	Op         string // e.g. "exchange code", "list user guilds"
	StatusCode int    // zero for transport-level failures
	Message    string

	kind error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("discord: %s: status %d: %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("discord: %s: %s", e.Op, e.Message)
}

func (e *APIError) Unwrap() error { return e.kind }

// authError builds an ErrUpstreamAuth-kinded APIError.
func authError(op string, status int, msg string) *APIError {
	return &APIError{Op: op, StatusCode: status, Message: msg, kind: ErrUpstreamAuth}
}

// classifyTransport maps a transport error to the taxonomy: deadline and
// net timeouts become ErrUpstreamTimeout, everything else is treated the
// same as a provider rejection.
func classifyTransport(op string, err error) *APIError {
	kind := ErrUpstreamAuth
	if errors.Is(err, context.DeadlineExceeded) {
		kind = ErrUpstreamTimeout
	} else {
		var netErr net.Error
		if errors.As(err, &netErr) && netErr.Timeout() {
			kind = ErrUpstreamTimeout
		}
	}

	return &APIError{Op: op, Message: err.Error(), kind: kind}
}
