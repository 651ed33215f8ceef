// Package config handles configuration loading, parsing, and validation
// from defaults, an optional config.yaml and TASKER_ environment variables.
// The resulting Config is built once at startup and passed to constructors.
package config
