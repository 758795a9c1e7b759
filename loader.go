package repoconfig

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/randalmurphal/repoconfig/content"
)

// Loader fetches one configuration file and decodes it.
type Loader struct {
	fetcher content.Fetcher
	logger  *slog.Logger
}

// NewLoader creates a loader. If logger is nil, uses the default slog logger.
func NewLoader(fetcher content.Fetcher, logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{fetcher: fetcher, logger: logger}
}

// Load returns the configuration at loc. A missing file is Absent, not an
// error. Any other fetch failure is returned unchanged; malformed content
// is wrapped with the location.
func (l *Loader) Load(ctx context.Context, loc Location) (Config, error) {
	file, err := l.fetcher.GetContent(ctx, loc.Owner, loc.Repo, loc.Path)
	if err != nil {
		if content.IsNotFound(err) {
			l.logger.DebugContext(ctx, "config file not found", "location", loc.String())
			return Absent(), nil
		}
		return Absent(), err
	}

	if file == nil {
		return Absent(), fmt.Errorf("fetch %s: no content returned", loc)
	}

	data, err := file.Decode()
	if err != nil {
		return Absent(), fmt.Errorf("read %s: %w", loc, err)
	}

	values, err := DecodeYAML(data)
	if err != nil {
		return Absent(), fmt.Errorf("parse %s: %w", loc, err)
	}

	l.logger.DebugContext(ctx, "config file loaded", "location", loc.String(), "keys", len(values))
	return Present(values), nil
}
