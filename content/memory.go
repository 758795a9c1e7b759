package content

import (
	"context"
	"fmt"
	"sync"
)

// Key identifies a file for MapFetcher.
type Key struct {
	Owner string
	Repo  string
	Path  string
}

// MapFetcher serves files from memory and records every request.
// Unknown keys yield ErrNotFound; keys registered with SetError yield
// that error instead. Safe for concurrent use.
type MapFetcher struct {
	mu     sync.Mutex
	files  map[Key][]byte
	errs   map[Key]error
	calls  []Key
	encode bool
}

// NewMapFetcher creates an empty MapFetcher. When base64 is true, content
// is served base64-encoded the way hosting APIs transmit it.
func NewMapFetcher(base64 bool) *MapFetcher {
	return &MapFetcher{
		files:  make(map[Key][]byte),
		errs:   make(map[Key]error),
		encode: base64,
	}
}

// Set registers the content of owner/repo:path.
func (m *MapFetcher) Set(owner, repo, path, data string) *MapFetcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[Key{owner, repo, path}] = []byte(data)
	return m
}

// SetError makes requests for owner/repo:path fail with err.
func (m *MapFetcher) SetError(owner, repo, path string, err error) *MapFetcher {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[Key{owner, repo, path}] = err
	return m
}

// Calls returns the requests made so far, in order.
func (m *MapFetcher) Calls() []Key {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Key(nil), m.calls...)
}

// GetContent implements Fetcher.
func (m *MapFetcher) GetContent(_ context.Context, owner, repo, path string) (*File, error) {
	key := Key{owner, repo, path}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, key)

	if err, ok := m.errs[key]; ok {
		return nil, err
	}
	data, ok := m.files[key]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s:%s", ErrNotFound, owner, repo, path)
	}

	if m.encode {
		return &File{Path: path, Encoding: EncodingBase64, Data: EncodeBase64(data)}, nil
	}
	return &File{Path: path, Data: append([]byte(nil), data...)}, nil
}
