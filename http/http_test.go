package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestAPIError(t *testing.T) {
	tests := []struct {
		name       string
		err        *APIError
		wantMsg    string
		wantUnwrap error
	}{
		{
			name: "not found",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 404,
				Message:    "The target couldn't be found.",
				Endpoint:   "/repos/owner/repo/contents/.github/bot.yml",
			},
			wantMsg:    "gitea API error (404) at /repos/owner/repo/contents/.github/bot.yml: The target couldn't be found.",
			wantUnwrap: ErrNotFound,
		},
		{
			name: "with request ID",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 500,
				Message:    "Internal error",
				Endpoint:   "/repos/owner/repo",
				RequestID:  "abc123",
			},
			wantMsg:    "gitea API error (500) at /repos/owner/repo [abc123]: Internal error",
			wantUnwrap: ErrServerError,
		},
		{
			name: "unauthorized",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 401,
				Message:    "token is required",
				Endpoint:   "/user",
			},
			wantMsg:    "gitea API error (401) at /user: token is required",
			wantUnwrap: ErrUnauthorized,
		},
		{
			name: "forbidden",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 403,
				Message:    "Access denied",
				Endpoint:   "/repos/secret/repo",
			},
			wantMsg:    "gitea API error (403) at /repos/secret/repo: Access denied",
			wantUnwrap: ErrForbidden,
		},
		{
			name: "rate limited",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 429,
				Message:    "Too many requests",
				Endpoint:   "/repos/owner/repo",
			},
			wantMsg:    "gitea API error (429) at /repos/owner/repo: Too many requests",
			wantUnwrap: ErrRateLimited,
		},
		{
			name: "bad request has no class",
			err: &APIError{
				Service:    "gitea",
				StatusCode: 400,
				Message:    "ref is invalid",
				Endpoint:   "/repos/owner/repo/contents/.github/bot.yml",
			},
			wantMsg:    "gitea API error (400) at /repos/owner/repo/contents/.github/bot.yml: ref is invalid",
			wantUnwrap: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", got, tt.wantMsg)
			}
			if got := tt.err.Unwrap(); !errors.Is(got, tt.wantUnwrap) {
				t.Errorf("Unwrap() = %v, want %v", got, tt.wantUnwrap)
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "rate limited", err: ErrRateLimited, want: true},
		{name: "server error", err: ErrServerError, want: true},
		{name: "5xx API error", err: &APIError{StatusCode: 503, Service: "test"}, want: true},
		{name: "not found", err: ErrNotFound, want: false},
		{name: "4xx API error", err: &APIError{StatusCode: 400, Service: "test"}, want: false},
		{name: "wrapped 429", err: fmt.Errorf("get file: %w", &APIError{StatusCode: 429}), want: true},
		{name: "wrapped 403", err: fmt.Errorf("get file: %w", &APIError{StatusCode: 403}), want: false},
		{name: "unrelated", err: errors.New("boom"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsRetryable(tt.err); got != tt.want {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestClient(t *testing.T) {
	t.Run("successful GET", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{"name": "test"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "test",
		})

		var result map[string]string
		if err := client.Get(context.Background(), "/test", &result); err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if result["name"] != "test" {
			t.Errorf("got name = %q, want %q", result["name"], "test")
		}
	})

	t.Run("handles 404", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "Not found"})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "test",
		})

		var result map[string]string
		err := client.Get(context.Background(), "/missing", &result)
		if !IsNotFound(err) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
		var apiErr *APIError
		if !errors.As(err, &apiErr) || apiErr.Message != "Not found" {
			t.Errorf("got error %v, want APIError with message", err)
		}
	})

	t.Run("404 is not retried", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			attempts.Add(1)
			w.WriteHeader(http.StatusNotFound)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:    server.URL,
			MaxRetries: 3,
			RetryWait:  time.Millisecond,
		})

		_, err := client.GetRaw(context.Background(), "/missing")
		if !IsNotFound(err) {
			t.Errorf("got error %v, want ErrNotFound", err)
		}
		if got := attempts.Load(); got != 1 {
			t.Errorf("got %d attempts, want 1", got)
		}
	})

	t.Run("applies beforeRequest hook", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]string{})
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "test",
			BeforeRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "token token123")
			},
		})

		_ = client.Get(context.Background(), "/test", nil)
		if gotAuth != "token token123" {
			t.Errorf("got Authorization = %q, want %q", gotAuth, "token token123")
		}
	})

	t.Run("retries on 5xx", func(t *testing.T) {
		var attempts atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			if attempts.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte("ok"))
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:     server.URL,
			ServiceName: "test",
			MaxRetries:  3,
			RetryWait:   time.Millisecond,
		})

		body, err := client.GetRaw(context.Background(), "/test")
		if err != nil {
			t.Fatalf("GetRaw() error = %v", err)
		}
		if string(body) != "ok" {
			t.Errorf("body = %q, want %q", body, "ok")
		}
		if got := attempts.Load(); got != 3 {
			t.Errorf("got %d attempts, want 3", got)
		}
	})

	t.Run("gives up after max retries", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(ClientConfig{
			BaseURL:    server.URL,
			MaxRetries: 2,
			RetryWait:  time.Millisecond,
		})

		_, err := client.GetRaw(context.Background(), "/test")
		if !IsRetryable(err) {
			t.Errorf("got error %v, want retryable server error", err)
		}
	})
}
