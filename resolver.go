package repoconfig

import (
	"context"
	"fmt"
	"log/slog"
	"path"
	"strings"

	"github.com/randalmurphal/repoconfig/content"
)

// Resolver loads repository configuration with one level of inheritance.
// A Resolver holds no per-call state and is safe for concurrent use.
type Resolver struct {
	fetcher      content.Fetcher
	logger       *slog.Logger
	configDir    string
	fallbackRepo string
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithLogger sets the logger used for debug output.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConfigDir overrides the directory configuration files live in.
// Defaults to ConfigDir.
func WithConfigDir(dir string) Option {
	return func(r *Resolver) {
		r.configDir = dir
	}
}

// WithFallbackRepo overrides the repository consulted when a repository has
// no configuration file. An empty name disables the fallback.
func WithFallbackRepo(repo string) Option {
	return func(r *Resolver) {
		r.fallbackRepo = repo
	}
}

// NewResolver creates a resolver reading files through fetcher.
func NewResolver(fetcher content.Fetcher, opts ...Option) *Resolver {
	r := &Resolver{
		fetcher:      fetcher,
		logger:       slog.Default(),
		configDir:    ConfigDir,
		fallbackRepo: DefaultFallbackRepo,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve loads fileName from the configuration directory of repo and
// merges, in ascending precedence, defaults, the base configuration and
// the repository's own file.
//
// The base configuration is the one named by the file's "_extends" key, or
// the fallback repository's file of the same name when the repository has
// no file. A base's own "_extends" is never followed. A missing base is
// ignored.
//
// The result is Absent only when neither file exists and defaults is nil.
// A non-nil defaults map is never modified.
func (r *Resolver) Resolve(
	ctx context.Context,
	repo Repo,
	fileName string,
	defaults map[string]any,
	opts *MergeOptions,
) (Config, error) {
	if err := repo.Validate(); err != nil {
		return Absent(), err
	}
	if !validFileName(fileName) {
		return Absent(), fmt.Errorf("%w: %q", ErrInvalidFileName, fileName)
	}

	loader := NewLoader(r.fetcher, r.logger)

	primaryLoc := Location{
		Owner: repo.Owner,
		Repo:  repo.Name,
		Path:  path.Join(r.configDir, fileName),
	}
	primary, err := loader.Load(ctx, primaryLoc)
	if err != nil {
		return Absent(), err
	}

	var baseRef any
	follow, fallback := false, false
	switch {
	case !primary.IsPresent():
		if r.fallbackRepo != "" {
			baseRef, follow, fallback = r.fallbackRepo, true, true
		}
	default:
		if ref, ok := primary.Get(BaseKey); ok {
			primary = primary.without(BaseKey)
			// An explicit null means "no base".
			if ref != nil {
				baseRef, follow = ref, true
			}
		}
	}

	base := Absent()
	if follow {
		baseLoc, err := ParseReference(primaryLoc, baseRef)
		if err != nil {
			if fallback {
				return Absent(), fmt.Errorf("%w: fallback repository %q", ErrInvalidReference, r.fallbackRepo)
			}
			return Absent(), err
		}

		r.logger.DebugContext(ctx, "loading base config",
			"location", primaryLoc.String(), "base", baseLoc.String())

		base, err = loader.Load(ctx, baseLoc)
		if err != nil {
			return Absent(), err
		}
		if _, nested := base.Get(BaseKey); nested {
			r.logger.DebugContext(ctx, "ignoring nested base reference", "base", baseLoc.String())
			base = base.without(BaseKey)
		}
	}

	if !primary.IsPresent() && !base.IsPresent() && defaults == nil {
		return Absent(), nil
	}

	defaultLayer := Absent()
	if defaults != nil {
		defaultLayer = Present(normalize(defaults).(map[string]any))
	}

	return Merge(opts, defaultLayer, base, primary).without(BaseKey), nil
}

// validFileName reports whether name stays inside the configuration
// directory once joined to it.
func validFileName(name string) bool {
	if name == "" || path.IsAbs(name) {
		return false
	}
	clean := path.Clean(name)
	return clean != "." && clean != ".." && !strings.HasPrefix(clean, "../")
}

// Resolve is a convenience wrapper around NewResolver(fetcher).Resolve.
func Resolve(
	ctx context.Context,
	fetcher content.Fetcher,
	repo Repo,
	fileName string,
	defaults map[string]any,
	opts *MergeOptions,
) (Config, error) {
	return NewResolver(fetcher).Resolve(ctx, repo, fileName, defaults, opts)
}
