package repoconfig

import "errors"

// Resolution errors
var (
	// ErrInvalidReference indicates an "_extends" value or fallback
	// repository that is not a string or does not match [owner/]repo[:path].
	ErrInvalidReference = errors.New("invalid repository reference")

	// ErrDecode indicates a configuration file that is not a YAML mapping.
	ErrDecode = errors.New("invalid configuration document")

	// ErrInvalidFileName indicates an empty or absolute configuration file
	// name, or one that escapes the configuration directory.
	ErrInvalidFileName = errors.New("invalid configuration file name")

	// ErrInvalidRepo indicates a Repo without owner or name.
	ErrInvalidRepo = errors.New("owner and repository name are required")

	// ErrNoConfig is returned when decoding an absent Config.
	ErrNoConfig = errors.New("no configuration found")
)
