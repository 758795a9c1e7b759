package content

import "context"

// MockFetcher is a mock implementation of Fetcher for testing.
type MockFetcher struct {
	GetContentFunc func(ctx context.Context, owner, repo, path string) (*File, error)
}

// GetContent implements Fetcher. Without GetContentFunc every file is missing.
func (m *MockFetcher) GetContent(ctx context.Context, owner, repo, path string) (*File, error) {
	if m.GetContentFunc != nil {
		return m.GetContentFunc(ctx, owner, repo, path)
	}
	return nil, ErrNotFound
}
