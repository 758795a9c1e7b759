package errors

import (
	"errors"
	"net/http"
	"strings"

	"github.com/google/go-github/v57/github"
	"github.com/xanzy/go-gitlab"

	"github.com/randalmurphal/repoconfig"
	apihttp "github.com/randalmurphal/repoconfig/http"
)

// statusCode extracts the HTTP status from hosting API errors, or 0.
func statusCode(err error) int {
	var apiErr *apihttp.APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}

	var ghErr *github.ErrorResponse
	if errors.As(err, &ghErr) && ghErr.Response != nil {
		return ghErr.Response.StatusCode
	}

	var glErr *gitlab.ErrorResponse
	if errors.As(err, &glErr) && glErr.Response != nil {
		return glErr.Response.StatusCode
	}

	return 0
}

// IsAuthError checks if an error is authentication-related.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrNotAuthenticated) || apihttp.IsUnauthorized(err) ||
		statusCode(err) == http.StatusUnauthorized {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return strings.Contains(errStr, "bad credentials") ||
		strings.Contains(errStr, "token is required")
}

// IsPermissionError checks if an error is permission-related.
func IsPermissionError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrPermissionDenied) || apihttp.IsForbidden(err) ||
		statusCode(err) == http.StatusForbidden
}

// IsRateLimited checks if an error reports throttling.
func IsRateLimited(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrRateLimited) || apihttp.IsRateLimited(err) ||
		statusCode(err) == http.StatusTooManyRequests {
		return true
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	return errors.As(err, &rateErr) || errors.As(err, &abuseErr)
}

// IsServiceUnavailable checks if an error is a server-side failure that
// may clear up on its own.
func IsServiceUnavailable(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrServiceUnavailable) || apihttp.IsRetryable(err) {
		return true
	}
	return statusCode(err) >= http.StatusInternalServerError
}

// IsConnectionError checks if an error is connection-related.
// This includes TLS errors, timeouts, and network connectivity issues.
func IsConnectionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, ErrConnectionFailed) {
		return true
	}

	errStr := strings.ToLower(err.Error())
	return isNetworkError(errStr) ||
		strings.Contains(errStr, "certificate") ||
		strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") ||
		strings.Contains(errStr, "timeout") ||
		strings.Contains(errStr, "deadline exceeded")
}

// IsConfigError checks if an error comes from a malformed configuration
// file or _extends value.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, ErrBadConfig) ||
		errors.Is(err, repoconfig.ErrInvalidReference) ||
		errors.Is(err, repoconfig.ErrDecode)
}
