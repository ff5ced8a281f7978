package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind represents a category of failure returned by the model API or the
// surrounding plumbing. Retry decisions are made on the kind, never on the
// message text of a specific error value.
type Kind string

const (
	KindRateLimit  Kind = "rate_limit"
	KindNetwork    Kind = "network"
	KindServer     Kind = "server"
	KindAuth       Kind = "auth"
	KindBadRequest Kind = "bad_request"
	KindNotFound   Kind = "not_found"
	KindCanceled   Kind = "canceled"
	KindUnknown    Kind = "unknown"

	// KindAny matches every failure kind. It is only meaningful inside a
	// retryable-kind set, mirroring catching the base exception class.
	KindAny Kind = "any"
)

// Kinds lists every valid kind, including the KindAny catch-all.
var Kinds = []Kind{
	KindRateLimit,
	KindNetwork,
	KindServer,
	KindAuth,
	KindBadRequest,
	KindNotFound,
	KindCanceled,
	KindUnknown,
	KindAny,
}

// Valid reports whether k is one of the defined kinds.
func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

// Error is a failure with category information attached.
type Error struct {
	Kind    Kind
	Message string
	Code    int   // HTTP status code when the failure came off the wire, 0 otherwise
	Cause   error // underlying error, if any
}

func (e *Error) Error() string {
	if e.Code != 0 {
		return fmt.Sprintf("%s error (code %d): %s", e.Kind, e.Code, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause so errors.Is/As keep working.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a categorized error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind to an existing error, keeping it reachable via Unwrap.
func Wrap(kind Kind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Message: err.Error(), Cause: err}
}

// KindOf classifies an arbitrary error into a Kind. Typed errors win; context
// cancellation is recognized next; after that the message is sniffed for the
// provider's rate-limit signatures, matching the behavior of the reference
// demos which only see stringly-typed SDK errors.
func KindOf(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return KindCanceled
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"), strings.Contains(msg, "rate limit"), strings.Contains(msg, "quota"):
		return KindRateLimit
	case strings.Contains(msg, "connection"), strings.Contains(msg, "timeout"), strings.Contains(msg, "no such host"):
		return KindNetwork
	}

	return KindUnknown
}

// IsRetryable reports whether a kind is transient enough to retry by default.
func IsRetryable(kind Kind) bool {
	switch kind {
	case KindRateLimit, KindNetwork, KindServer:
		return true
	case KindAuth, KindBadRequest, KindNotFound, KindCanceled:
		return false
	default:
		return false
	}
}

// FromStatusCode maps an HTTP status code to a failure kind.
func FromStatusCode(statusCode int) Kind {
	switch {
	case statusCode == 0:
		return KindNetwork
	case statusCode == 429:
		return KindRateLimit
	case statusCode == 401 || statusCode == 403:
		return KindAuth
	case statusCode == 404:
		return KindNotFound
	case statusCode >= 500:
		return KindServer
	case statusCode >= 400:
		return KindBadRequest
	default:
		return KindUnknown
	}
}
