package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/go-git/go-git/v5"
	"gopkg.in/yaml.v3"
)

// ResolverConfig configures the layered settings resolver.
type ResolverConfig struct {
	// EnvPrefix is prepended to key names for environment variable lookup.
	// With "REPOCONFIG_", key "github_token" maps to REPOCONFIG_GITHUB_TOKEN.
	EnvPrefix string

	// EnvAliases lists additional environment variables per key, checked
	// in order when the prefixed variable is unset.
	EnvAliases map[string][]string

	// GlobalConfigDir is the name of the directory under ~/.config/
	// where the global settings live.
	GlobalConfigDir string

	// GlobalConfigFile is the filename for global settings.
	// Defaults to "config.yaml" if empty.
	GlobalConfigFile string

	// LocalConfigName is the filename for local settings in the git root.
	LocalConfigName string

	// Defaults provides the default values for setting keys.
	Defaults map[string]string

	// ValidGlobalKeys lists keys that can be set in global settings.
	// If nil, all keys are valid.
	ValidGlobalKeys []string

	// ValidLocalKeys lists keys that can be set in local settings.
	// If nil, all keys are valid.
	ValidLocalKeys []string

	// GitRootFinder finds the git root directory.
	// If nil, the enclosing repository is located with go-git.
	GitRootFinder func(startDir string) (string, error)

	// FS is the filesystem settings files are read from and written to.
	// Defaults to the host filesystem.
	FS billy.Filesystem

	// Logger receives warnings. Defaults to slog.Default().
	Logger *slog.Logger
}

func (c ResolverConfig) globalConfigFile() string {
	if c.GlobalConfigFile != "" {
		return c.GlobalConfigFile
	}
	return "config.yaml"
}

// Resolver handles layered settings resolution.
type Resolver struct {
	config     ResolverConfig
	fs         billy.Filesystem
	logger     *slog.Logger
	globalPath string
	localPath  string
	gitRoot    string

	// Warnings collects non-fatal issues during resolution.
	Warnings []string
}

// NewResolver creates a new settings resolver, locating the global file
// under the user's home directory and the local file in the git root of
// the working directory.
func NewResolver(cfg ResolverConfig) *Resolver {
	r := newResolver(cfg)

	finder := cfg.GitRootFinder
	if finder == nil {
		finder = findGitRoot
	}
	if root, err := finder("."); err == nil && root != "" {
		r.gitRoot = root
		if cfg.LocalConfigName != "" {
			r.localPath = filepath.Join(root, cfg.LocalConfigName)
		}
	}

	if cfg.GlobalConfigDir != "" {
		if home, err := os.UserHomeDir(); err == nil {
			r.globalPath = filepath.Join(
				home, ".config", cfg.GlobalConfigDir, cfg.globalConfigFile(),
			)
		}
	}

	return r
}

// NewResolverWithPaths creates a resolver with explicit global and local paths.
// Either may be empty to skip that layer.
func NewResolverWithPaths(cfg ResolverConfig, globalPath, localPath string) *Resolver {
	r := newResolver(cfg)
	r.globalPath = globalPath
	r.localPath = localPath
	if localPath != "" {
		r.gitRoot = filepath.Dir(localPath)
	}
	return r
}

func newResolver(cfg ResolverConfig) *Resolver {
	r := &Resolver{
		config: cfg,
		fs:     cfg.FS,
		logger: cfg.Logger,
	}
	if r.fs == nil {
		r.fs = osfs.Default
	}
	if r.logger == nil {
		r.logger = slog.Default()
	}
	return r
}

// warn records a warning about a settings file and logs it.
func (r *Resolver) warn(path, msg string, args ...any) {
	r.Warnings = append(r.Warnings, path+": "+msg)
	r.logger.Warn(msg, append([]any{"path", path}, args...)...)
}

// Resolved holds the final merged settings.
type Resolved struct {
	values  map[string]string
	sources map[string]Source
}

// Get returns the value for a key, or empty string if not set.
func (c *Resolved) Get(key string) string {
	return c.values[key]
}

// Source returns the source of a key's value.
func (c *Resolved) Source(key string) Source {
	return c.sources[key]
}

// GetWithSource returns both the value and its source.
func (c *Resolved) GetWithSource(key string) (string, Source) {
	return c.values[key], c.sources[key]
}

// All returns a copy of all key-value pairs.
func (c *Resolved) All() map[string]string {
	result := make(map[string]string, len(c.values))
	for k, v := range c.values {
		result[k] = v
	}
	return result
}

// Keys returns all setting keys in sorted order.
func (c *Resolved) Keys() []string {
	keys := make([]string, 0, len(c.values))
	for k := range c.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Resolve builds the final settings by merging all sources.
// Priority (highest to lowest): env > local > global > defaults.
func (r *Resolver) Resolve() *Resolved {
	cfg := &Resolved{
		values:  make(map[string]string),
		sources: make(map[string]Source),
	}

	r.applyDefaults(cfg)
	r.applyFile(cfg, r.globalPath, r.config.ValidGlobalKeys, SourceGlobal)
	r.applyFile(cfg, r.localPath, r.config.ValidLocalKeys, SourceLocal)
	r.applyEnv(cfg)

	return cfg
}

// ResolveWithFlags resolves settings and applies flag overrides.
// Empty flag values are treated as unset.
func (r *Resolver) ResolveWithFlags(flags map[string]string) *Resolved {
	cfg := r.Resolve()

	for key, value := range flags {
		if value != "" {
			cfg.values[key] = value
			cfg.sources[key] = SourceFlag
		}
	}

	return cfg
}

func (r *Resolver) applyDefaults(cfg *Resolved) {
	for key, value := range r.config.Defaults {
		cfg.values[key] = value
		cfg.sources[key] = SourceDefault
	}
}

func (r *Resolver) applyFile(cfg *Resolved, path string, validKeys []string, source Source) {
	if path == "" {
		return
	}

	parsed, err := r.readFile(path)
	if err != nil {
		r.warn(path, "could not read settings file", "error", err)
		return
	}

	for key, value := range parsed {
		if len(validKeys) > 0 && !contains(validKeys, key) {
			r.warn(path, "ignoring unknown settings key "+key)
			continue
		}
		if strVal := toString(value); strVal != "" {
			cfg.values[key] = strVal
			cfg.sources[key] = source
		}
	}
}

// readFile loads a settings file. A missing file yields an empty map.
func (r *Resolver) readFile(path string) (map[string]any, error) {
	data, err := util.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]any{}, nil
		}
		return nil, err
	}

	var parsed map[string]any
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if parsed == nil {
		parsed = map[string]any{}
	}
	return parsed, nil
}

func (r *Resolver) applyEnv(cfg *Resolved) {
	allKeys := make(map[string]bool)
	for k := range r.config.Defaults {
		allKeys[k] = true
	}
	for k := range r.config.EnvAliases {
		allKeys[k] = true
	}
	for k := range cfg.values {
		allKeys[k] = true
	}

	for key := range allKeys {
		names := r.config.EnvAliases[key]
		if r.config.EnvPrefix != "" {
			envKey := r.config.EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, "-", "_"))
			names = append([]string{envKey}, names...)
		}

		for _, name := range names {
			if value := os.Getenv(name); value != "" {
				cfg.values[key] = value
				cfg.sources[key] = SourceEnv
				break
			}
		}
	}
}

// GitRoot returns the detected git root directory.
func (r *Resolver) GitRoot() string {
	return r.gitRoot
}

// GlobalPath returns the path to the global settings file.
func (r *Resolver) GlobalPath() string {
	return r.globalPath
}

// LocalPath returns the path to the local settings file.
func (r *Resolver) LocalPath() string {
	return r.localPath
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

func toString(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	case int, int64, float64:
		return fmt.Sprintf("%v", val)
	default:
		return ""
	}
}

// findGitRoot returns the worktree root of the repository containing
// startDir, or "" when there is none.
func findGitRoot(startDir string) (string, error) {
	repo, err := git.PlainOpenWithOptions(startDir, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return "", nil
		}
		return "", err
	}

	wt, err := repo.Worktree()
	if err != nil {
		// Bare repositories have no worktree to hold a local file.
		return "", nil
	}
	return wt.Filesystem.Root(), nil
}
