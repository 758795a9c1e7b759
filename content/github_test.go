package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/go-github/v57/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestGitHubFetcher creates a GitHubFetcher pointing to a test server.
func newTestGitHubFetcher(t *testing.T, handler http.Handler, opts ...GitHubOption) *GitHubFetcher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := github.NewClient(nil)
	client.BaseURL, _ = client.BaseURL.Parse(server.URL + "/")

	f, err := NewGitHubFetcherFromClient(client, opts...)
	require.NoError(t, err)
	return f
}

func TestNewGitHubFetcher(t *testing.T) {
	t.Run("valid token", func(t *testing.T) {
		f, err := NewGitHubFetcher("token123")
		require.NoError(t, err)
		assert.NotNil(t, f)
	})

	t.Run("missing token", func(t *testing.T) {
		_, err := NewGitHubFetcher("")
		assert.Error(t, err)
	})

	t.Run("enterprise URL", func(t *testing.T) {
		f, err := NewGitHubFetcher("token123", WithGitHubBaseURL("https://github.example.com/api/v3/"))
		require.NoError(t, err)
		assert.Equal(t, "https://github.example.com/api/v3/", f.client.BaseURL.String())
	})

	t.Run("nil client", func(t *testing.T) {
		_, err := NewGitHubFetcherFromClient(nil)
		assert.Error(t, err)
	})
}

func TestGitHubFetcher_GetContent(t *testing.T) {
	t.Run("file", func(t *testing.T) {
		encoded := string(EncodeBase64([]byte("foo: foo\n")))
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/repos/owner/repo/contents/.github/test.yml", r.URL.Path)
			assert.Empty(t, r.URL.Query().Get("ref"))
			_ = json.NewEncoder(w).Encode(&github.RepositoryContent{
				Type:     github.String("file"),
				Path:     github.String(".github/test.yml"),
				SHA:      github.String("abc123"),
				Encoding: github.String("base64"),
				Content:  github.String(encoded),
			})
		})

		f := newTestGitHubFetcher(t, handler)
		file, err := f.GetContent(context.Background(), "owner", "repo", ".github/test.yml")
		require.NoError(t, err)

		assert.Equal(t, EncodingBase64, file.Encoding)
		assert.Equal(t, "abc123", file.SHA)
		data, err := file.Decode()
		require.NoError(t, err)
		assert.Equal(t, "foo: foo\n", string(data))
	})

	t.Run("ref", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "v1", r.URL.Query().Get("ref"))
			_ = json.NewEncoder(w).Encode(&github.RepositoryContent{
				Type:     github.String("file"),
				Encoding: github.String("base64"),
				Content:  github.String(""),
			})
		})

		f := newTestGitHubFetcher(t, handler, WithGitHubRef("v1"))
		_, err := f.GetContent(context.Background(), "owner", "repo", ".github/test.yml")
		require.NoError(t, err)
	})

	t.Run("not found", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		})

		f := newTestGitHubFetcher(t, handler)
		_, err := f.GetContent(context.Background(), "owner", "repo", ".github/test.yml")
		assert.True(t, IsNotFound(err), "got %v", err)
	})

	t.Run("directory", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`[{"type":"file","name":"a.yml","path":".github/a.yml"}]`))
		})

		f := newTestGitHubFetcher(t, handler)
		_, err := f.GetContent(context.Background(), "owner", "repo", ".github")
		assert.ErrorIs(t, err, ErrIsDirectory)
		assert.False(t, IsNotFound(err))
	})

	t.Run("forbidden propagates", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte(`{"message":"Resource not accessible by integration"}`))
		})

		f := newTestGitHubFetcher(t, handler)
		_, err := f.GetContent(context.Background(), "owner", "repo", ".github/test.yml")
		require.Error(t, err)
		assert.False(t, IsNotFound(err))

		var ghErr *github.ErrorResponse
		assert.True(t, errors.As(err, &ghErr))
	})
}
