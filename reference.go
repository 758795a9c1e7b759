package repoconfig

import (
	"fmt"
	"regexp"
)

// maxOwnerLength is the longest user or organization name GitHub allows.
const maxOwnerLength = 39

// referencePattern matches [owner/]repo[:path]. Owners are alphanumeric
// segments joined by single hyphens; paths must name a YAML file.
var referencePattern = regexp.MustCompile(
	`(?i)^(?:([a-z\d](?:-?[a-z\d])*)/)?([-_.\w]+)(?::([-_./\w]+\.ya?ml))?$`,
)

// ParseReference resolves an "_extends" value against the location of the
// file it was found in. The owner defaults to current.Owner and the path to
// current.Path.
func ParseReference(current Location, ref any) (Location, error) {
	s, ok := ref.(string)
	if !ok {
		return Location{}, fmt.Errorf("%w in key %q", ErrInvalidReference, BaseKey)
	}

	match := referencePattern.FindStringSubmatch(s)
	if match == nil || len(match[1]) > maxOwnerLength {
		return Location{}, fmt.Errorf("%w in key %q: %s", ErrInvalidReference, BaseKey, s)
	}

	loc := Location{
		Owner: current.Owner,
		Repo:  match[2],
		Path:  current.Path,
	}
	if match[1] != "" {
		loc.Owner = match[1]
	}
	if match[3] != "" {
		loc.Path = match[3]
	}
	return loc, nil
}
