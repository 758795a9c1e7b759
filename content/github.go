package content

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubFetcher implements Fetcher using the GitHub contents API.
type GitHubFetcher struct {
	client *github.Client
	ref    string
}

// GitHubOption configures a GitHubFetcher.
type GitHubOption func(*GitHubFetcher) error

// WithGitHubBaseURL points the fetcher at a GitHub Enterprise instance,
// e.g. "https://github.example.com/api/v3/".
func WithGitHubBaseURL(baseURL string) GitHubOption {
	return func(f *GitHubFetcher) error {
		client, err := f.client.WithEnterpriseURLs(baseURL, baseURL)
		if err != nil {
			return fmt.Errorf("set enterprise URL: %w", err)
		}
		f.client = client
		return nil
	}
}

// WithGitHubRef reads files at a branch, tag or commit instead of the
// repository's default branch.
func WithGitHubRef(ref string) GitHubOption {
	return func(f *GitHubFetcher) error {
		f.ref = ref
		return nil
	}
}

// NewGitHubFetcher creates a fetcher authenticated with token.
// token is a personal access token or GitHub App installation token.
func NewGitHubFetcher(token string, opts ...GitHubOption) (*GitHubFetcher, error) {
	if token == "" {
		return nil, fmt.Errorf("GitHub token is required")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)

	return newGitHubFetcher(github.NewClient(tc), opts...)
}

// NewGitHubFetcherFromClient wraps an existing go-github client, for bots
// that already hold an installation-scoped client.
func NewGitHubFetcherFromClient(client *github.Client, opts ...GitHubOption) (*GitHubFetcher, error) {
	if client == nil {
		return nil, fmt.Errorf("GitHub client is required")
	}
	return newGitHubFetcher(client, opts...)
}

func newGitHubFetcher(client *github.Client, opts ...GitHubOption) (*GitHubFetcher, error) {
	f := &GitHubFetcher{client: client}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// GetContent implements Fetcher. The content is returned base64-encoded,
// exactly as the API transmits it.
func (f *GitHubFetcher) GetContent(ctx context.Context, owner, repo, path string) (*File, error) {
	var opts *github.RepositoryContentGetOptions
	if f.ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: f.ref}
	}

	file, dir, resp, err := f.client.Repositories.GetContents(ctx, owner, repo, path, opts)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s/%s:%s", ErrNotFound, owner, repo, path)
		}
		return nil, fmt.Errorf("get contents %s/%s:%s: %w", owner, repo, path, err)
	}
	if file == nil {
		if dir != nil {
			return nil, fmt.Errorf("%w: %s/%s:%s", ErrIsDirectory, owner, repo, path)
		}
		return nil, fmt.Errorf("%w: %s/%s:%s", ErrNotFound, owner, repo, path)
	}

	var raw string
	if file.Content != nil {
		raw = *file.Content
	}

	return &File{
		Path:     file.GetPath(),
		SHA:      file.GetSHA(),
		Encoding: file.GetEncoding(),
		Data:     []byte(raw),
	}, nil
}
