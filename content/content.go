package content

import (
	"context"
	"errors"

	apihttp "github.com/randalmurphal/repoconfig/http"
)

// Transport encodings a File may carry.
const (
	EncodingNone   = ""
	EncodingBase64 = "base64"
	EncodingUTF8   = "utf-8"
)

// Fetcher reads a single file from a repository.
type Fetcher interface {
	// GetContent returns the file at path in owner/repo. A missing
	// repository or file must be reported as ErrNotFound.
	GetContent(ctx context.Context, owner, repo, path string) (*File, error)
}

// File is the raw content of one file as returned by a Fetcher.
type File struct {
	Path string
	SHA  string

	// Encoding names the transport encoding of Data. Fetchers that hand
	// back the API payload untouched set EncodingBase64; fetchers that
	// already hold plain bytes leave it empty.
	Encoding string
	Data     []byte
}

var (
	// ErrNotFound indicates the repository or file does not exist.
	ErrNotFound = errors.New("content not found")

	// ErrIsDirectory indicates the path names a directory, not a file.
	ErrIsDirectory = errors.New("path is a directory")

	// ErrUnknownProvider indicates the remote URL belongs to no supported host.
	ErrUnknownProvider = errors.New("unknown git provider")
)

// IsNotFound reports whether err means the requested file does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) || apihttp.IsNotFound(err)
}
