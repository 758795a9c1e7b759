package content

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apihttp "github.com/randalmurphal/repoconfig/http"
)

// RESTFetcher implements Fetcher against a Gitea/Forgejo compatible
// contents endpoint: GET {baseURL}/repos/{owner}/{repo}/contents/{path}.
type RESTFetcher struct {
	client *apihttp.Client
	ref    string
}

// RESTConfig configures a RESTFetcher.
type RESTConfig struct {
	// BaseURL is the API root, e.g. "https://gitea.example.com/api/v1".
	BaseURL string

	// Token is sent as "Authorization: token <Token>" when set.
	Token string

	// Ref selects a branch, tag or commit; empty means the default branch.
	Ref string

	// HTTPClient overrides the underlying client (timeouts, transport).
	HTTPClient *http.Client

	// MaxRetries bounds attempts for transient failures.
	MaxRetries int
}

type contentsResponse struct {
	Type     string `json:"type"`
	Path     string `json:"path"`
	SHA      string `json:"sha"`
	Encoding string `json:"encoding"`
	Content  string `json:"content"`
}

// NewRESTFetcher creates a fetcher for a Gitea-style API.
func NewRESTFetcher(cfg RESTConfig) (*RESTFetcher, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	token := cfg.Token
	client := apihttp.NewClient(apihttp.ClientConfig{
		Client:      cfg.HTTPClient,
		BaseURL:     strings.TrimSuffix(cfg.BaseURL, "/"),
		ServiceName: "gitea",
		MaxRetries:  cfg.MaxRetries,
		BeforeRequest: func(req *http.Request) {
			if token != "" {
				req.Header.Set("Authorization", "token "+token)
			}
		},
	})

	return &RESTFetcher{client: client, ref: cfg.Ref}, nil
}

// GetContent implements Fetcher. The base64 payload is passed through.
func (f *RESTFetcher) GetContent(ctx context.Context, owner, repo, path string) (*File, error) {
	endpoint := fmt.Sprintf("/repos/%s/%s/contents/%s",
		url.PathEscape(owner), url.PathEscape(repo), escapePath(path))
	if f.ref != "" {
		endpoint += "?ref=" + url.QueryEscape(f.ref)
	}

	var raw json.RawMessage
	if err := f.client.Get(ctx, endpoint, &raw); err != nil {
		if apihttp.IsNotFound(err) {
			return nil, fmt.Errorf("%w: %s/%s:%s", ErrNotFound, owner, repo, path)
		}
		return nil, fmt.Errorf("get contents %s/%s:%s: %w", owner, repo, path, err)
	}

	// Directories come back as a JSON array of entries.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) > 0 && trimmed[0] == '[' {
		return nil, fmt.Errorf("%w: %s/%s:%s", ErrIsDirectory, owner, repo, path)
	}

	var resp contentsResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode contents %s/%s:%s: %w", owner, repo, path, err)
	}
	if resp.Type != "" && resp.Type != "file" {
		return nil, fmt.Errorf("%w: %s/%s:%s", ErrIsDirectory, owner, repo, path)
	}

	return &File{
		Path:     resp.Path,
		SHA:      resp.SHA,
		Encoding: resp.Encoding,
		Data:     []byte(resp.Content),
	}, nil
}

func escapePath(path string) string {
	segments := strings.Split(strings.TrimPrefix(path, "/"), "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
