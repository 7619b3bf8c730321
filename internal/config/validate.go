package config

import (
	"errors"
	"fmt"
	"strings"
)

var validVisibilities = map[string]struct{}{
	"public":   {},
	"unlisted": {},
	"private":  {},
	"direct":   {},
}

// Validate ensures the configuration is usable. A missing instance URL or
// access token is deliberately not an error here: publish attempts fail at
// the API layer instead, and the preflight checks surface the gap.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validatePost(); err != nil {
		return err
	}
	if err := c.validateSchedule(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.SourceDir) == "" {
		return errors.New("paths.source_dir must be set")
	}
	if strings.TrimSpace(c.Paths.ArchiveDir) == "" {
		return errors.New("paths.archive_dir must be set")
	}
	if c.Paths.SourceDir == c.Paths.ArchiveDir {
		return errors.New("paths.archive_dir must differ from paths.source_dir")
	}
	return nil
}

func (c *Config) validatePost() error {
	if strings.TrimSpace(c.Post.Caption) == "" {
		return errors.New("post.caption must be set")
	}
	visibility := strings.TrimSpace(c.Post.Visibility)
	if visibility == "" {
		return nil
	}
	if _, ok := validVisibilities[visibility]; !ok {
		return fmt.Errorf("post.visibility: unsupported value %q", c.Post.Visibility)
	}
	return nil
}

func (c *Config) validateSchedule() error {
	if c.Schedule.IntervalMinutes < 1 {
		return errors.New("schedule.interval_minutes must be at least 1")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Level)) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level: unsupported value %q", c.Logging.Level)
	}
	return nil
}
