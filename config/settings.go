package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/randalmurphal/repoconfig"
	"github.com/randalmurphal/repoconfig/content"
)

// Setting keys.
const (
	KeyProvider     = "provider"
	KeyGitHubToken  = "github_token"
	KeyGitLabToken  = "gitlab_token"
	KeyGiteaToken   = "gitea_token"
	KeyBaseURL      = "base_url"
	KeyRef          = "ref"
	KeyConfigDir    = "config_dir"
	KeyFallbackRepo = "fallback_repo"
	KeyMirrorRoot   = "mirror_root"
	KeyLogLevel     = "log_level"
)

// ProviderGit reads from local mirrors instead of a hosting API.
const ProviderGit = "git"

// NoFallback disables the organization-wide fallback repository when used
// as the fallback_repo value.
const NoFallback = "none"

// AllKeys lists every recognized setting key.
var AllKeys = []string{
	KeyProvider, KeyGitHubToken, KeyGitLabToken, KeyGiteaToken, KeyBaseURL,
	KeyRef, KeyConfigDir, KeyFallbackRepo, KeyMirrorRoot, KeyLogLevel,
}

// LocalKeys lists the keys allowed in the local settings file.
// Tokens are excluded because that file is usually committed.
var LocalKeys = []string{
	KeyProvider, KeyBaseURL, KeyRef, KeyConfigDir, KeyFallbackRepo,
	KeyMirrorRoot, KeyLogLevel,
}

// DefaultResolverConfig returns the settings layout used by repoconfig.
func DefaultResolverConfig() ResolverConfig {
	return ResolverConfig{
		EnvPrefix: "REPOCONFIG_",
		EnvAliases: map[string][]string{
			KeyGitHubToken: {"GITHUB_TOKEN", "GIT_TOKEN"},
			KeyGitLabToken: {"GITLAB_TOKEN", "GIT_TOKEN"},
			KeyGiteaToken:  {"GITEA_TOKEN", "GIT_TOKEN"},
		},
		GlobalConfigDir: "repoconfig",
		LocalConfigName: ".repoconfig.yaml",
		Defaults: map[string]string{
			KeyProvider:     content.ProviderGitHub,
			KeyConfigDir:    repoconfig.ConfigDir,
			KeyFallbackRepo: repoconfig.DefaultFallbackRepo,
			KeyLogLevel:     "info",
		},
		ValidGlobalKeys: AllKeys,
		ValidLocalKeys:  LocalKeys,
	}
}

// Settings is the typed view of resolved settings.
type Settings struct {
	Provider     string
	GitHubToken  string
	GitLabToken  string
	GiteaToken   string
	BaseURL      string
	Ref          string
	ConfigDir    string
	FallbackRepo string
	MirrorRoot   string
	LogLevel     string
}

// Settings returns the typed view of c.
func (c *Resolved) Settings() Settings {
	return Settings{
		Provider:     c.Get(KeyProvider),
		GitHubToken:  c.Get(KeyGitHubToken),
		GitLabToken:  c.Get(KeyGitLabToken),
		GiteaToken:   c.Get(KeyGiteaToken),
		BaseURL:      c.Get(KeyBaseURL),
		Ref:          c.Get(KeyRef),
		ConfigDir:    c.Get(KeyConfigDir),
		FallbackRepo: c.Get(KeyFallbackRepo),
		MirrorRoot:   c.Get(KeyMirrorRoot),
		LogLevel:     c.Get(KeyLogLevel),
	}
}

// Level parses LogLevel ("debug", "info", "warn", "error"); empty is info.
func (s Settings) Level() (slog.Level, error) {
	var level slog.Level
	if s.LogLevel == "" {
		return level, nil
	}
	if err := level.UnmarshalText([]byte(s.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid %s %q: %w", KeyLogLevel, s.LogLevel, err)
	}
	return level, nil
}

// Token returns the credential for the configured provider.
func (s Settings) Token() string {
	switch strings.ToLower(s.Provider) {
	case content.ProviderGitHub:
		return s.GitHubToken
	case content.ProviderGitLab:
		return s.GitLabToken
	case content.ProviderGitea:
		return s.GiteaToken
	default:
		return ""
	}
}

// Fetcher builds the content fetcher the settings describe.
func (s Settings) Fetcher() (content.Fetcher, error) {
	provider := strings.ToLower(s.Provider)

	switch provider {
	case ProviderGit:
		if s.MirrorRoot == "" {
			return nil, fmt.Errorf("%s is required for provider %q", KeyMirrorRoot, ProviderGit)
		}
		return content.NewGitFetcher(s.MirrorRoot, s.Ref)
	case content.ProviderGitHub:
		var opts []content.GitHubOption
		if s.BaseURL != "" {
			opts = append(opts, content.WithGitHubBaseURL(s.BaseURL))
		}
		if s.Ref != "" {
			opts = append(opts, content.WithGitHubRef(s.Ref))
		}
		return content.NewGitHubFetcher(s.GitHubToken, opts...)
	case content.ProviderGitLab:
		return content.NewGitLabFetcher(s.GitLabToken, s.BaseURL, s.Ref)
	case content.ProviderGitea:
		return content.NewRESTFetcher(content.RESTConfig{
			BaseURL: s.BaseURL,
			Token:   s.GiteaToken,
			Ref:     s.Ref,
		})
	default:
		return nil, fmt.Errorf("%w: %s", content.ErrUnknownProvider, s.Provider)
	}
}

// ResolverOptions translates the settings that shape resolution into
// repoconfig options.
func (s Settings) ResolverOptions(logger *slog.Logger) []repoconfig.Option {
	opts := []repoconfig.Option{repoconfig.WithLogger(logger)}
	if s.ConfigDir != "" {
		opts = append(opts, repoconfig.WithConfigDir(s.ConfigDir))
	}
	switch s.FallbackRepo {
	case "":
	case NoFallback:
		opts = append(opts, repoconfig.WithFallbackRepo(""))
	default:
		opts = append(opts, repoconfig.WithFallbackRepo(s.FallbackRepo))
	}
	return opts
}
