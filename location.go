package repoconfig

import "fmt"

// Well-known names used during resolution.
const (
	// ConfigDir is the directory configuration files are read from.
	ConfigDir = ".github"

	// BaseKey is the reserved top-level key naming a base configuration.
	// It never appears in resolved output.
	BaseKey = "_extends"

	// DefaultFallbackRepo is consulted when a repository has no config file.
	DefaultFallbackRepo = ".github"
)

// Repo identifies the repository a bot is acting on.
type Repo struct {
	Owner string
	Name  string
}

// Validate reports whether both owner and name are set.
func (r Repo) Validate() error {
	if r.Owner == "" || r.Name == "" {
		return fmt.Errorf("%w: got %q/%q", ErrInvalidRepo, r.Owner, r.Name)
	}
	return nil
}

// Location identifies a file in a specific repository.
type Location struct {
	Owner string
	Repo  string
	Path  string
}

// String renders the location as owner/repo:path.
func (l Location) String() string {
	return l.Owner + "/" + l.Repo + ":" + l.Path
}
