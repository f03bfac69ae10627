// Package config loads the rewind CLI configuration: built-in defaults,
// optionally overlaid with a JSON file and REWIND_* environment variables.
package config
