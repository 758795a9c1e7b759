package content

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xanzy/go-gitlab"
)

// GitLabFetcher implements Fetcher using the GitLab repository files API.
// owner/repo map onto the project path "owner/repo".
type GitLabFetcher struct {
	client *gitlab.Client
	ref    string
}

// NewGitLabFetcher creates a new GitLab fetcher.
// token is a personal or project access token.
// baseURL is the GitLab instance URL (empty for gitlab.com).
// ref selects the branch, tag or commit to read; empty means the
// project's default branch.
func NewGitLabFetcher(token, baseURL, ref string) (*GitLabFetcher, error) {
	if token == "" {
		return nil, fmt.Errorf("GitLab token is required")
	}

	var client *gitlab.Client
	var err error

	if baseURL != "" {
		client, err = gitlab.NewClient(token, gitlab.WithBaseURL(baseURL))
	} else {
		client, err = gitlab.NewClient(token)
	}

	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLabFetcher{
		client: client,
		ref:    ref,
	}, nil
}

// GetContent implements Fetcher. GitLab always transmits file content
// base64-encoded and the payload is passed through unchanged.
func (f *GitLabFetcher) GetContent(ctx context.Context, owner, repo, path string) (*File, error) {
	projectID := owner + "/" + repo

	ref := f.ref
	if ref == "" {
		project, resp, err := f.client.Projects.GetProject(projectID, nil, gitlab.WithContext(ctx))
		if err != nil {
			if resp != nil && resp.StatusCode == http.StatusNotFound {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, projectID)
			}
			return nil, fmt.Errorf("get project %s: %w", projectID, err)
		}
		ref = project.DefaultBranch
		if ref == "" {
			// Empty repository: nothing can exist in it.
			return nil, fmt.Errorf("%w: %s has no default branch", ErrNotFound, projectID)
		}
	}

	file, resp, err := f.client.RepositoryFiles.GetFile(projectID, path, &gitlab.GetFileOptions{
		Ref: gitlab.Ptr(ref),
	}, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s:%s", ErrNotFound, projectID, path)
		}
		return nil, fmt.Errorf("get file %s:%s: %w", projectID, path, err)
	}

	return &File{
		Path:     file.FilePath,
		SHA:      file.BlobID,
		Encoding: file.Encoding,
		Data:     []byte(file.Content),
	}, nil
}
