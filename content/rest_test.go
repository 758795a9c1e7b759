package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apihttp "github.com/randalmurphal/repoconfig/http"
)

func newTestRESTFetcher(t *testing.T, handler http.Handler, ref string) *RESTFetcher {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	f, err := NewRESTFetcher(RESTConfig{
		BaseURL: server.URL + "/api/v1/",
		Token:   "test-token",
		Ref:     ref,
	})
	require.NoError(t, err)
	return f
}

func TestNewRESTFetcher_RequiresBaseURL(t *testing.T) {
	_, err := NewRESTFetcher(RESTConfig{})
	assert.Error(t, err)
}

func TestRESTFetcher_GetContent(t *testing.T) {
	tests := []struct {
		name       string
		ref        string
		status     int
		body       string
		wantErr    error
		wantData   string
		wantQuery  string
		notFound   bool
		propagated bool
	}{
		{
			name:     "file",
			status:   http.StatusOK,
			body:     `{"type":"file","path":".github/test.yml","sha":"abc","encoding":"base64","content":"Zm9vOiBmb28K"}`,
			wantData: "foo: foo\n",
		},
		{
			name:      "ref",
			ref:       "release/1.0",
			status:    http.StatusOK,
			body:      `{"type":"file","encoding":"base64","content":""}`,
			wantQuery: "release/1.0",
		},
		{
			name:     "not found",
			status:   http.StatusNotFound,
			body:     `{"message":"GetContentsOrList"}`,
			notFound: true,
		},
		{
			name:    "directory listing",
			status:  http.StatusOK,
			body:    `[{"type":"file","path":".github/a.yml"}]`,
			wantErr: ErrIsDirectory,
		},
		{
			name:    "symlink",
			status:  http.StatusOK,
			body:    `{"type":"symlink","path":".github/test.yml"}`,
			wantErr: ErrIsDirectory,
		},
		{
			name:       "unauthorized",
			status:     http.StatusUnauthorized,
			body:       `{"message":"token is required"}`,
			wantErr:    apihttp.ErrUnauthorized,
			propagated: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/repos/owner/repo/contents/.github/test.yml", r.URL.Path)
				assert.Equal(t, "token test-token", r.Header.Get("Authorization"))
				assert.Equal(t, tt.wantQuery, r.URL.Query().Get("ref"))
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			f := newTestRESTFetcher(t, handler, tt.ref)
			file, err := f.GetContent(context.Background(), "owner", "repo", ".github/test.yml")

			if tt.notFound {
				assert.True(t, IsNotFound(err), "got %v", err)
				return
			}
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.propagated {
					assert.False(t, IsNotFound(err))
				}
				return
			}

			require.NoError(t, err)
			data, err := file.Decode()
			require.NoError(t, err)
			assert.Equal(t, tt.wantData, string(data))
		})
	}
}

func TestEscapePath(t *testing.T) {
	assert.Equal(t, ".github/my%20config.yml", escapePath("/.github/my config.yml"))
	assert.Equal(t, ".github/a%3Fb.yml", escapePath(".github/a?b.yml"))
}
