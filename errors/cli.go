package errors

import (
	"fmt"
	"strings"
)

// CLIError wraps an error with user-friendly context and suggestions.
type CLIError struct {
	// Err is the category sentinel
	Err error

	// Cause is the original error
	Cause error

	// Message is a user-friendly description of what went wrong
	Message string

	// Suggestion is an actionable hint for the user
	Suggestion string

	// Details provides additional context (optional)
	Details string
}

func (e *CLIError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)

	if e.Details != "" {
		sb.WriteString("\n")
		sb.WriteString(e.Details)
	}

	if e.Suggestion != "" {
		sb.WriteString("\n\n")
		sb.WriteString(e.Suggestion)
	}

	return sb.String()
}

// Unwrap exposes both the category sentinel and the original error.
func (e *CLIError) Unwrap() []error {
	errs := []error{e.Err}
	if e.Cause != nil {
		errs = append(errs, e.Cause)
	}
	return errs
}

// ErrorMessenger provides customizable error messages.
// Implement this interface to tailor suggestions for a particular tool.
type ErrorMessenger interface {
	// AuthErrorMessage returns the message and suggestion for rejected tokens.
	AuthErrorMessage() (message, suggestion string)

	// PermissionDeniedMessage returns the message and suggestion for permission errors.
	PermissionDeniedMessage() (message, suggestion string)

	// RateLimitMessage returns the message and suggestion for throttled requests.
	RateLimitMessage() (message, suggestion string)

	// ServiceUnavailableMessage returns the message and suggestion for
	// server-side failures worth retrying.
	ServiceUnavailableMessage(serverURL string) (message, suggestion string)

	// ConnectionErrorMessage returns the message and suggestion for connection errors.
	// The serverURL parameter is the URL that failed to connect.
	ConnectionErrorMessage(serverURL string) (message, suggestion string)

	// TLSErrorMessage returns the message and suggestion for TLS/certificate errors.
	TLSErrorMessage(serverURL string) (message, suggestion string)

	// TimeoutErrorMessage returns the message and suggestion for timeout errors.
	TimeoutErrorMessage(serverURL string) (message, suggestion string)

	// BadConfigMessage returns the message and suggestion for malformed
	// configuration files and _extends values.
	BadConfigMessage() (message, suggestion string)
}

// DefaultMessenger provides default error messages.
type DefaultMessenger struct{}

func (m DefaultMessenger) AuthErrorMessage() (string, string) {
	return "The hosting service rejected the access token.",
		"Set REPOCONFIG_GITHUB_TOKEN, REPOCONFIG_GITLAB_TOKEN or REPOCONFIG_GITEA_TOKEN\n(or GITHUB_TOKEN / GITLAB_TOKEN / GITEA_TOKEN) to a valid token."
}

func (m DefaultMessenger) PermissionDeniedMessage() (string, string) {
	return "The access token cannot read this repository.",
		"Grant the token read access to repository contents."
}

func (m DefaultMessenger) RateLimitMessage() (string, string) {
	return "The hosting service is rate limiting requests.",
		"Wait a moment and try again, or use an authenticated token."
}

func (m DefaultMessenger) ServiceUnavailableMessage(serverURL string) (string, string) {
	return fmt.Sprintf("%s failed to serve the request.", serverURL),
		"This is usually temporary. Try again in a moment."
}

func (m DefaultMessenger) ConnectionErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Cannot connect to %s", serverURL),
		"Check that:\n  - The base URL is correct\n  - Your network connection is working"
}

func (m DefaultMessenger) TLSErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("TLS/certificate error connecting to %s", serverURL),
		"Check that the server certificate is valid."
}

func (m DefaultMessenger) TimeoutErrorMessage(serverURL string) (string, string) {
	return fmt.Sprintf("Connection to %s timed out", serverURL),
		"The server may be overloaded or unreachable.\nTry again in a moment."
}

func (m DefaultMessenger) BadConfigMessage() (string, string) {
	return "A configuration file could not be used.",
		"Check that the file is a YAML mapping and that _extends has the form\n[owner/]repo[:path.yml]."
}

// WrapConfig configures error wrapping behavior.
type WrapConfig struct {
	Messenger ErrorMessenger
	ServerURL string
}

// Option configures WrapConfig.
type Option func(*WrapConfig)

// WithMessenger sets a custom error messenger.
func WithMessenger(m ErrorMessenger) Option {
	return func(c *WrapConfig) {
		c.Messenger = m
	}
}

// WithServerURL names the server in connection error messages.
func WithServerURL(url string) Option {
	return func(c *WrapConfig) {
		c.ServerURL = url
	}
}

func getConfig(opts []Option) *WrapConfig {
	cfg := &WrapConfig{
		Messenger: DefaultMessenger{},
		ServerURL: "the hosting service",
	}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Explain classifies err and returns a CLIError describing it, or err
// unchanged when no category applies.
func Explain(err error, opts ...Option) error {
	if err == nil {
		return nil
	}
	if _, ok := err.(*CLIError); ok {
		return err
	}

	cfg := getConfig(opts)
	m := cfg.Messenger

	var (
		sentinel        error
		msg, suggestion string
		details         string
	)

	switch {
	case IsConfigError(err):
		sentinel = ErrBadConfig
		msg, suggestion = m.BadConfigMessage()
		details = err.Error()
	case IsRateLimited(err):
		sentinel = ErrRateLimited
		msg, suggestion = m.RateLimitMessage()
	case IsAuthError(err):
		sentinel = ErrNotAuthenticated
		msg, suggestion = m.AuthErrorMessage()
	case IsPermissionError(err):
		sentinel = ErrPermissionDenied
		msg, suggestion = m.PermissionDeniedMessage()
	case IsServiceUnavailable(err):
		sentinel = ErrServiceUnavailable
		msg, suggestion = m.ServiceUnavailableMessage(cfg.ServerURL)
		details = err.Error()
	default:
		return WrapConnectionError(err, cfg.ServerURL, opts...)
	}

	return &CLIError{
		Err:        sentinel,
		Cause:      err,
		Message:    msg,
		Suggestion: suggestion,
		Details:    details,
	}
}

// WrapConnectionError wraps connection-related errors with helpful guidance.
func WrapConnectionError(err error, serverURL string, opts ...Option) error {
	if err == nil {
		return nil
	}

	errStr := strings.ToLower(err.Error())
	messenger := getConfig(opts).Messenger

	// Check for TLS/certificate errors
	if strings.Contains(errStr, "certificate") || strings.Contains(errStr, "tls") ||
		strings.Contains(errStr, "x509") {
		msg, suggestion := messenger.TLSErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Cause:      err,
			Message:    msg,
			Details:    err.Error(),
			Suggestion: suggestion,
		}
	}

	// Check for timeout
	if strings.Contains(errStr, "timeout") || strings.Contains(errStr, "deadline exceeded") {
		msg, suggestion := messenger.TimeoutErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Cause:      err,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	// Check for connection refused
	if isNetworkError(errStr) {
		msg, suggestion := messenger.ConnectionErrorMessage(serverURL)
		return &CLIError{
			Err:        ErrConnectionFailed,
			Cause:      err,
			Message:    msg,
			Suggestion: suggestion,
		}
	}

	return err
}

func isNetworkError(errStr string) bool {
	return strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") ||
		strings.Contains(errStr, "network is unreachable") ||
		strings.Contains(errStr, "dial tcp")
}
