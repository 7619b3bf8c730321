package testsupport

import (
	"path/filepath"
	"testing"

	"perch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Instance.URL = "https://mastodon.test"
	cfg.Instance.AccessToken = "test-token"
	cfg.Paths.SourceDir = filepath.Join(base, "images")
	cfg.Paths.ArchiveDir = filepath.Join(base, "posted")
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Schedule.IntervalMinutes = 1

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithInstance sets the instance URL and token on the test config.
func WithInstance(url, token string) ConfigOption {
	return func(c *config.Config) {
		c.Instance.URL = url
		c.Instance.AccessToken = token
	}
}

// WithCaption sets the post caption on the test config.
func WithCaption(caption string) ConfigOption {
	return func(c *config.Config) {
		c.Post.Caption = caption
	}
}
