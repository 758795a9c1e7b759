// Package config resolves repoconfig's own tool settings: which hosting
// service to read from, credentials, and where the resolver looks.
//
// Settings are layered with clear precedence:
//  1. Command-line flags (highest priority)
//  2. Environment variables (REPOCONFIG_<KEY>, plus conventional token
//     variables such as GITHUB_TOKEN)
//  3. Local config (.repoconfig.yaml in the git root)
//  4. Global config (~/.config/repoconfig/config.yaml)
//  5. Built-in defaults (lowest priority)
//
// # Basic Usage
//
//	resolver := config.NewResolver(config.DefaultResolverConfig())
//	resolved := resolver.ResolveWithFlags(map[string]string{
//	    config.KeyProvider: "github",
//	})
//
//	settings := resolved.Settings()
//	fetcher, err := settings.Fetcher()
//
// # Config Sources
//
// Each resolved value tracks where it came from:
//   - "default": Built-in default value
//   - "global": ~/.config/repoconfig/config.yaml
//   - "local": .repoconfig.yaml in git root
//   - "env": Environment variable
//   - "flag": Command-line flag
//
// Tokens are never read from the local file, which is usually committed.
//
// # Filesystem
//
// Files are read and written through a go-billy filesystem, the host
// filesystem by default. Tests pass an in-memory filesystem.
package config
