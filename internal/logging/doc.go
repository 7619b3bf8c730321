// Package logging builds the slog loggers used throughout the daemon and
// CLI. It provides a console handler with compact key=value output, a JSON
// handler for machine-readable logs, and small attr helpers with the shared
// field names.
package logging
