// Package repoconfig resolves per-repository bot configuration from a
// hosted repository service.
//
// A bot asks for a file name such as "stale.yml". The resolver reads
// .github/stale.yml from the repository the bot is acting on and merges it
// over an optional base configuration and caller defaults:
//
//   - A top-level "_extends" key points at a base configuration in another
//     repository: "repo", "owner/repo", "repo:path.yml" or
//     "owner/repo:path.yml". Exactly one hop is followed.
//   - When the repository has no file at all, the organization's ".github"
//     repository is consulted instead.
//   - Mappings merge recursively, sequences concatenate with the more
//     specific entries first, scalars are overridden.
//
// Results are a Config, which is either present (possibly empty) or absent.
// Absent means no file exists anywhere in the chain and no defaults were
// given.
//
// Example usage:
//
//	fetcher, _ := content.NewGitHubFetcher(token)
//	resolver := repoconfig.NewResolver(fetcher)
//
//	cfg, err := resolver.Resolve(ctx, repoconfig.Repo{Owner: "acme", Name: "api"},
//	    "stale.yml", map[string]any{"daysUntilStale": 60}, nil)
//	if err != nil {
//	    return err
//	}
//	if !cfg.IsPresent() {
//	    return nil // bot is not configured for this repository
//	}
//
//	var settings StaleSettings
//	if err := cfg.Decode(&settings); err != nil {
//	    return err
//	}
package repoconfig
