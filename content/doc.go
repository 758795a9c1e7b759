// Package content retrieves raw file content from hosted repository services.
//
// Core types:
//   - Fetcher: Interface for reading one file from owner/repo at a path
//   - File: Raw file bytes plus the transport encoding they arrived in
//
// Implementations:
//   - GitHubFetcher: GitHub contents API using go-github
//   - GitLabFetcher: GitLab repository files API using go-gitlab
//   - RESTFetcher: Gitea/Forgejo style contents API over the shared http client
//   - GitFetcher: Local repository mirrors read with go-git
//   - MapFetcher: In-memory files, for tests and fixtures
//   - MockFetcher: Function-field mock
//
// Every implementation reports a missing repository or file as ErrNotFound,
// which callers test with IsNotFound. All other failures are returned as-is.
//
// Example usage:
//
//	fetcher, _ := content.NewGitHubFetcher(token)
//	file, err := fetcher.GetContent(ctx, "owner", "repo", ".github/bot.yml")
//	if content.IsNotFound(err) {
//	    // no such file
//	}
package content
