package content

import (
	"fmt"
	"net/url"
	"os"
	"strings"
)

// Provider names returned by DetectProvider.
const (
	ProviderGitHub = "github"
	ProviderGitLab = "gitlab"
	ProviderGitea  = "gitea"
)

// DetectProvider guesses the hosting service from the host of a git
// remote URL. The repository path is never consulted.
func DetectProvider(remoteURL string) (string, error) {
	r, err := splitRemote(remoteURL)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownProvider, remoteURL)
	}
	host := strings.ToLower(r.host)

	switch {
	case strings.Contains(host, "github"):
		return ProviderGitHub, nil
	case strings.Contains(host, "gitlab"):
		return ProviderGitLab, nil
	case strings.Contains(host, "gitea"), strings.Contains(host, "codeberg"),
		strings.Contains(host, "forgejo"):
		return ProviderGitea, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownProvider, remoteURL)
}

// ParseRepoFromURL extracts owner and repo from a git remote URL. The owner
// is everything before the last path segment, so GitLab subgroups such as
// "group/sub" are kept whole.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	r, err := splitRemote(remoteURL)
	if err != nil {
		return "", "", err
	}

	p := strings.Trim(r.path, "/")
	p = strings.TrimSuffix(p, ".git")

	parts := strings.Split(p, "/")
	if len(parts) < 2 {
		return "", "", fmt.Errorf("invalid repository path: %s", remoteURL)
	}
	for _, part := range parts {
		if part == "" {
			return "", "", fmt.Errorf("invalid repository path: %s", remoteURL)
		}
	}

	return strings.Join(parts[:len(parts)-1], "/"), parts[len(parts)-1], nil
}

// HostURL returns the scheme and host of a remote URL, e.g.
// "https://gitlab.example.com". SSH remotes map to https.
func HostURL(remoteURL string) string {
	r, err := splitRemote(remoteURL)
	if err != nil {
		return ""
	}
	scheme := "https"
	if r.scheme == "http" {
		scheme = "http"
	}
	return scheme + "://" + r.host
}

// remote is a git remote URL split into its parts. host keeps any port.
type remote struct {
	scheme string
	host   string
	path   string
}

// splitRemote accepts scheme URLs (https, http, ssh, git) and the scp-like
// form user@host:owner/repo.
func splitRemote(remoteURL string) (remote, error) {
	if !strings.Contains(remoteURL, "://") {
		at := strings.Index(remoteURL, "@")
		colon := strings.Index(remoteURL, ":")
		if colon < 0 || (at >= 0 && at > colon) {
			return remote{}, fmt.Errorf("invalid remote URL: %s", remoteURL)
		}
		host := remoteURL[at+1 : colon]
		if host == "" {
			return remote{}, fmt.Errorf("invalid remote URL: %s", remoteURL)
		}
		return remote{scheme: "ssh", host: host, path: remoteURL[colon+1:]}, nil
	}

	u, err := url.Parse(remoteURL)
	if err != nil {
		return remote{}, fmt.Errorf("invalid remote URL: %w", err)
	}
	if u.Host == "" {
		return remote{}, fmt.Errorf("invalid remote URL: %s", remoteURL)
	}
	return remote{scheme: strings.ToLower(u.Scheme), host: u.Host, path: u.Path}, nil
}

// FetcherFromEnv creates a fetcher for the host of remoteURL using a token
// from the environment.
//
// Environment variables checked:
//   - GITHUB_TOKEN for GitHub
//   - GITLAB_TOKEN for GitLab
//   - GITEA_TOKEN for Gitea/Forgejo
//   - GIT_TOKEN as fallback for any of them
//
// Self-hosted GitLab and Gitea instances are addressed through the remote's
// host; github.com and gitlab.com use the public APIs.
func FetcherFromEnv(remoteURL string) (Fetcher, error) {
	platform, err := DetectProvider(remoteURL)
	if err != nil {
		return nil, err
	}

	envVar := map[string]string{
		ProviderGitHub: "GITHUB_TOKEN",
		ProviderGitLab: "GITLAB_TOKEN",
		ProviderGitea:  "GITEA_TOKEN",
	}[platform]

	token := os.Getenv(envVar)
	if token == "" {
		token = os.Getenv("GIT_TOKEN")
	}
	if token == "" {
		return nil, fmt.Errorf("%s or GIT_TOKEN not set; set one of these environment variables with a valid access token", envVar)
	}

	return FetcherForProvider(platform, token, remoteURL)
}

// FetcherForProvider creates a fetcher for a known provider name.
// remoteURL may be empty for github.com and gitlab.com.
func FetcherForProvider(platform, token, remoteURL string) (Fetcher, error) {
	host := ""
	if remoteURL != "" {
		host = HostURL(remoteURL)
	}

	switch platform {
	case ProviderGitHub:
		if host == "" || strings.Contains(host, "://github.com") {
			return NewGitHubFetcher(token)
		}
		return NewGitHubFetcher(token, WithGitHubBaseURL(host+"/api/v3/"))
	case ProviderGitLab:
		if host == "" || strings.Contains(host, "://gitlab.com") {
			return NewGitLabFetcher(token, "", "")
		}
		return NewGitLabFetcher(token, host+"/api/v4", "")
	case ProviderGitea:
		if host == "" {
			return nil, fmt.Errorf("gitea provider requires a remote or base URL")
		}
		return NewRESTFetcher(RESTConfig{BaseURL: host + "/api/v1", Token: token})
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownProvider, platform)
	}
}
