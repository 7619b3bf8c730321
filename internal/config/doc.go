// Package config loads, normalizes, and validates the TOML configuration
// that drives every other package. Paths are expanded to absolute form at
// load time; missing instance credentials are allowed so the daemon can
// start and report the problem through its own logs.
package config
