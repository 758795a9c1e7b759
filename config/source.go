package config

// Source indicates where a setting's value came from.
type Source string

// Setting source constants.
const (
	// SourceDefault indicates the value is a built-in default.
	SourceDefault Source = "default"

	// SourceGlobal indicates the value came from the global settings file.
	SourceGlobal Source = "global"

	// SourceLocal indicates the value came from .repoconfig.yaml in the
	// git root.
	SourceLocal Source = "local"

	// SourceEnv indicates the value came from an environment variable.
	SourceEnv Source = "env"

	// SourceFlag indicates the value was set via command-line flag.
	SourceFlag Source = "flag"
)
