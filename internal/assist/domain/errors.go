package domain

import (
	"net/http"
	"strings"
)

// Kind classifies an assist failure into the error taxonomy. Each kind maps
// to exactly one HTTP status code.
type Kind int

const (
	KindUnknown       Kind = iota // opaque failure
	KindValidation                // bad or oversized input
	KindUpstreamAuth              // hosted-model authentication failure
	KindNotFound                  // unknown model name
	KindRateLimited               // hosted-model rate limit, user may retry
	KindConfiguration             // missing credentials or misconfiguration
)

// Error is an assist failure carrying a machine-readable kind alongside a
// human-readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// NewError creates an assist error with the given kind.
func NewError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError creates an assist error wrapping an underlying cause.
func WrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// HTTPStatus maps a kind to its response status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindUpstreamAuth:
		return http.StatusUnauthorized
	case KindNotFound:
		return http.StatusNotFound
	case KindRateLimited:
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

// messagePatterns is the fallback classification table applied when the
// model client exposes no structured error code. First match wins; patterns
// are matched case-insensitively.
var messagePatterns = []struct {
	substr string
	kind   Kind
}{
	{"api key not valid", KindUpstreamAuth},
	{"api_key_invalid", KindUpstreamAuth},
	{"unauthenticated", KindUpstreamAuth},
	{"permission denied", KindUpstreamAuth},
	{"rate limit", KindRateLimited},
	{"resource_exhausted", KindRateLimited},
	{"quota", KindRateLimited},
	{"429", KindRateLimited},
	{"is not found", KindNotFound},
	{"not_found", KindNotFound},
	{"404", KindNotFound},
	{"invalid argument", KindValidation},
	{"invalid_argument", KindValidation},
	{"400", KindValidation},
}

// ClassifyMessage inspects an error message for known substrings and returns
// the matching kind, or KindUnknown when nothing matches.
func ClassifyMessage(message string) Kind {
	lower := strings.ToLower(message)
	for _, p := range messagePatterns {
		if strings.Contains(lower, p.substr) {
			return p.kind
		}
	}
	return KindUnknown
}
