package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized signals an upstream 401: the token is no longer
	// valid and the session must be invalidated.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden signals an upstream 403.
	ErrForbidden = errors.New("access forbidden")
	// ErrSessionRequired is returned when an operation needs a token and
	// the session is anonymous.
	ErrSessionRequired = errors.New("active session required")
	// ErrUpstreamUnavailable classifies transient failures: timeouts,
	// unreachable network, upstream 5xx.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// UpstreamError carries the status and human-readable message of a failed
// remote call. Unwrap maps it onto the sentinel taxonomy so callers can use
// errors.Is for classification.
type UpstreamError struct {
	Status    int
	Message   string
	Transient bool
}

func (e *UpstreamError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("upstream: %s (status %d)", e.Message, e.Status)
	}
	return fmt.Sprintf("upstream: %s", e.Message)
}

func (e *UpstreamError) Unwrap() error {
	switch {
	case e.Status == 401:
		return ErrUnauthorized
	case e.Status == 403:
		return ErrForbidden
	case e.Transient || e.Status >= 500:
		return ErrUpstreamUnavailable
	}
	return nil
}

// IsAuthError reports whether err is fatal to the session (401/403).
func IsAuthError(err error) bool {
	return errors.Is(err, ErrUnauthorized) || errors.Is(err, ErrForbidden)
}

// IsTransient reports whether err may be absorbed with stale or fallback
// data: timeout, network unreachable, or upstream 5xx.
func IsTransient(err error) bool {
	return errors.Is(err, ErrUpstreamUnavailable) ||
		errors.Is(err, context.DeadlineExceeded)
}

// ErrorMessage extracts the upstream-provided message when available,
// falling back to err.Error(). Used to surface login/signup failures
// verbatim to the caller.
func ErrorMessage(err error) string {
	var ue *UpstreamError
	if errors.As(err, &ue) && ue.Message != "" {
		return ue.Message
	}
	return err.Error()
}
