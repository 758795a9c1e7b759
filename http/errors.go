// Package http provides the shared REST client used by content fetchers
// that talk to repository hosting APIs directly.
package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Status classes an *APIError unwraps to. Callers match them with
// errors.Is instead of comparing status codes.
var (
	ErrNotFound     = errors.New("not found on hosting service")
	ErrUnauthorized = errors.New("hosting service rejected the token")
	ErrForbidden    = errors.New("token cannot access the repository")
	ErrRateLimited  = errors.New("hosting service is throttling requests")
	ErrServerError  = errors.New("hosting service failed")
)

var statusClasses = map[int]error{
	http.StatusUnauthorized:    ErrUnauthorized,
	http.StatusForbidden:       ErrForbidden,
	http.StatusNotFound:        ErrNotFound,
	http.StatusTooManyRequests: ErrRateLimited,
}

// APIError is a non-2xx answer from a hosting API.
type APIError struct {
	Service    string
	StatusCode int
	Endpoint   string
	Message    string

	// RequestID echoes the X-Request-Id response header, when sent.
	RequestID string
}

func (e *APIError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s API error (%d) at %s", e.Service, e.StatusCode, e.Endpoint)
	if e.RequestID != "" {
		fmt.Fprintf(&sb, " [%s]", e.RequestID)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	return sb.String()
}

// Unwrap maps the status code to its class, or nil for codes with none.
func (e *APIError) Unwrap() error {
	if class, ok := statusClasses[e.StatusCode]; ok {
		return class
	}
	if e.StatusCode >= http.StatusInternalServerError {
		return ErrServerError
	}
	return nil
}

// IsNotFound reports whether the file, repository or owner does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

func IsUnauthorized(err error) bool { return errors.Is(err, ErrUnauthorized) }

func IsForbidden(err error) bool { return errors.Is(err, ErrForbidden) }

func IsRateLimited(err error) bool { return errors.Is(err, ErrRateLimited) }

// IsRetryable reports whether err is a failure the client would have
// retried, so repeating the resolution later may succeed.
func IsRetryable(err error) bool {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return retryableStatus(apiErr.StatusCode)
	}
	return errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServerError)
}

func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
